package app

import (
	"context"

	"github.com/zunkelty/type-for-me/internal/nativewin"
)

// Theme applies platform-specific window cosmetics. PlatformTheme returns
// the variant compiled for the target OS.
type Theme interface {
	// Configure adjusts the window options before Build.
	Configure(b *WindowBuilder)
	// Apply runs once the native window exists.
	Apply(ctx context.Context, w *Window) error
}

// BackgroundTint is the off-white painted behind the webview on macOS.
var BackgroundTint = nativewin.RGB8(250, 250, 249)

// Native hooks, swapped in tests.
var (
	lookupNativeWindow  = nativewin.MainWindow
	setNativeBackground = nativewin.SetBackground
)
