package app

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"

	"github.com/zunkelty/type-for-me/internal/nativewin"
)

// TitleBarStyle selects how the native title bar is drawn.
type TitleBarStyle int

const (
	// TitleBarDefault is the platform's regular title bar.
	TitleBarDefault TitleBarStyle = iota
	// TitleBarOverlay draws a transparent title bar over the content area so
	// the web content can render its own.
	TitleBarOverlay
)

func (s TitleBarStyle) String() string {
	switch s {
	case TitleBarOverlay:
		return "overlay"
	default:
		return "default"
	}
}

// Content is the source the webview loads.
type Content struct {
	Assets fs.FS
}

// BundledContent serves the compiled frontend embedded in the binary.
func BundledContent(assets fs.FS) Content {
	return Content{Assets: assets}
}

// ReadyFunc runs once the native window exists, before it is shown.
type ReadyFunc func(ctx context.Context, w *Window) error

// Window is a built window descriptor. The framework owns the native window
// it describes.
type Window struct {
	label     string
	title     string
	width     int
	height    int
	resizable bool
	titleBar   TitleBarStyle
	background *nativewin.Color
	content    Content
	onReady    []ReadyFunc
}

func (w *Window) Label() string           { return w.label }
func (w *Window) Title() string           { return w.title }
func (w *Window) Size() (int, int)        { return w.width, w.height }
func (w *Window) Resizable() bool         { return w.resizable }
func (w *Window) TitleBar() TitleBarStyle { return w.titleBar }
func (w *Window) Content() Content        { return w.content }

// Background returns the color the window is created with, if one was set.
func (w *Window) Background() (nativewin.Color, bool) {
	if w.background == nil {
		return nativewin.Color{}, false
	}
	return *w.background, true
}

// OnReady registers fn to run when the native window exists.
func (w *Window) OnReady(fn ReadyFunc) {
	w.onReady = append(w.onReady, fn)
}

func (w *Window) ready(ctx context.Context) error {
	for _, fn := range w.onReady {
		if err := fn(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

// windowSpec is the validated shape of a window descriptor.
type windowSpec struct {
	Label  string `validate:"required"`
	Width  int    `validate:"gt=0,lte=16384"`
	Height int    `validate:"gt=0,lte=16384"`
}

var validate = validator.New()

// WindowBuilder collects window options. Obtain one from Setup.NewWindow.
type WindowBuilder struct {
	setup      *Setup
	label      string
	title      string
	width      int
	height     int
	resizable  bool
	titleBar   TitleBarStyle
	background *nativewin.Color
	content    Content
}

func (b *WindowBuilder) Title(title string) *WindowBuilder {
	b.title = title
	return b
}

// InnerSize sets the logical content size.
func (b *WindowBuilder) InnerSize(width, height int) *WindowBuilder {
	b.width = width
	b.height = height
	return b
}

func (b *WindowBuilder) Resizable(resizable bool) *WindowBuilder {
	b.resizable = resizable
	return b
}

func (b *WindowBuilder) TitleBarStyle(style TitleBarStyle) *WindowBuilder {
	b.titleBar = style
	return b
}

// Background sets the color the native window is created with, shown until
// the web content paints.
func (b *WindowBuilder) Background(c nativewin.Color) *WindowBuilder {
	c = c.Clamped()
	b.background = &c
	return b
}

// Build validates the options and records the window with the setup. Only
// one window may be built per setup.
func (b *WindowBuilder) Build() (*Window, error) {
	if b.setup.window != nil {
		return nil, fmt.Errorf("%w: window %q already built, cannot build %q",
			ErrWindowConstruction, b.setup.window.label, b.label)
	}

	spec := windowSpec{Label: b.label, Width: b.width, Height: b.height}
	if err := validate.Struct(spec); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrWindowConstruction, b.label, err)
	}
	if b.content.Assets == nil {
		return nil, fmt.Errorf("%w: %q: no content assets", ErrWindowConstruction, b.label)
	}

	w := &Window{
		label:      b.label,
		title:      b.title,
		width:      b.width,
		height:     b.height,
		resizable:  b.resizable,
		titleBar:   b.titleBar,
		background: b.background,
		content:    b.content,
	}
	b.setup.window = w
	return w, nil
}
