// Package nativewin is the only place the app talks to the platform
// windowing API directly. Every entry point checks its handle and reports
// failure as an error.
package nativewin

import (
	"errors"
	"unsafe"
)

var (
	// ErrNoWindow is returned when the application has no native window yet.
	ErrNoWindow = errors.New("nativewin: no native window")
	// ErrNilHandle is returned when a call receives a zero Handle.
	ErrNilHandle = errors.New("nativewin: nil window handle")
	// ErrUnsupported is returned on platforms without a native backend.
	ErrUnsupported = errors.New("nativewin: not supported on this platform")
)

// Handle wraps a native window pointer (NSWindow* on macOS). It must stay
// alive for the duration of any call it is passed to; the framework owns it.
type Handle struct {
	ptr unsafe.Pointer
}

// IsNil reports whether h refers to no window.
func (h Handle) IsNil() bool {
	return h.ptr == nil
}

// Color is a device RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB8 builds an opaque Color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
		A: 1.0,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamped returns c with every channel limited to [0, 1].
func (c Color) Clamped() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}
