// Package app assembles the framework configuration for the desktop shell:
// plugins, the main window, and the platform theme, and hands control to
// the host run loop.
package app

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
)

// SetupFunc is invoked once, before the run loop starts. It must build
// exactly one window through s.
type SetupFunc func(s *Setup) error

// Setup is handed to the SetupFunc.
type Setup struct {
	window *Window
}

// NewWindow starts a window descriptor. Defaults: empty title, 800x600,
// resizable, default title bar.
func (s *Setup) NewWindow(label string, content Content) *WindowBuilder {
	return &WindowBuilder{
		setup:     s,
		label:     label,
		width:     800,
		height:    600,
		resizable: true,
		content:   content,
	}
}

// Window returns the window built during setup, if any.
func (s *Setup) Window() *Window {
	return s.window
}

// Builder collects the application configuration.
type Builder struct {
	plugins   []Plugin
	bind      []interface{}
	setup     SetupFunc
	runtime   Runtime
	logger    logger.Logger
	logLevel  logger.LogLevel
	inspector bool

	mu         sync.Mutex
	startupErr error
}

// NewBuilder returns a builder with the production runtime and INFO logging.
func NewBuilder() *Builder {
	return &Builder{
		runtime:  WailsRuntime{},
		logLevel: logger.INFO,
	}
}

// Plugin registers p. Registration order is startup order.
func (b *Builder) Plugin(p Plugin) *Builder {
	b.plugins = append(b.plugins, p)
	return b
}

// Plugins returns the registered plugins.
func (b *Builder) Plugins() []Plugin {
	return b.plugins
}

// Bind exposes additional objects to the web content.
func (b *Builder) Bind(objs ...interface{}) *Builder {
	b.bind = append(b.bind, objs...)
	return b
}

func (b *Builder) Setup(fn SetupFunc) *Builder {
	b.setup = fn
	return b
}

// Runtime replaces the framework runtime used during startup.
func (b *Builder) Runtime(rt Runtime) *Builder {
	b.runtime = rt
	return b
}

// Logger sets the framework logger and level. A nil logger keeps the
// framework default.
func (b *Builder) Logger(l logger.Logger, level logger.LogLevel) *Builder {
	b.logger = l
	b.logLevel = level
	return b
}

// Inspector opens the web inspector on startup.
func (b *Builder) Inspector(open bool) *Builder {
	b.inspector = open
	return b
}

// Run performs setup and enters the host's blocking run loop. It returns
// when the run loop exits. Errors wrap ErrWindowConstruction or
// ErrRunLoopStart, or carry the failure of a plugin startup or window-ready
// hook; all of them are fatal to the caller.
func (b *Builder) Run(host Host) error {
	seen := make(map[string]bool, len(b.plugins))
	for _, p := range b.plugins {
		if seen[p.Name()] {
			return fmt.Errorf("plugin %q registered twice", p.Name())
		}
		seen[p.Name()] = true
	}

	if b.setup == nil {
		return fmt.Errorf("%w: no setup hook", ErrWindowConstruction)
	}
	s := &Setup{}
	if err := b.setup(s); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	if s.window == nil {
		return fmt.Errorf("%w: setup built no window", ErrWindowConstruction)
	}

	opts := b.options(s.window)
	if err := host.Run(opts); err != nil {
		return fmt.Errorf("%w: %v", ErrRunLoopStart, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.startupErr
}

func (b *Builder) options(w *Window) *options.App {
	bind := make([]interface{}, 0, len(b.plugins)+len(b.bind))
	for _, p := range b.plugins {
		bind = append(bind, p.Bind()...)
	}
	bind = append(bind, b.bind...)

	opts := &options.App{
		Title:         w.title,
		Width:         w.width,
		Height:        w.height,
		DisableResize: !w.resizable,
		// Shown by startup once plugins and ready hooks succeed.
		StartHidden: true,
		AssetServer: &assetserver.Options{
			Assets: w.content.Assets,
		},
		OnStartup: func(ctx context.Context) {
			b.startup(ctx, w)
		},
		OnShutdown:         b.shutdown,
		Bind:               bind,
		Logger:             b.logger,
		LogLevel:           b.logLevel,
		LogLevelProduction: logger.ERROR,
		Debug: options.Debug{
			OpenInspectorOnStartup: b.inspector,
		},
	}
	if c, ok := w.Background(); ok {
		opts.BackgroundColour = &options.RGBA{
			R: channel8(c.R),
			G: channel8(c.G),
			B: channel8(c.B),
			A: channel8(c.A),
		}
	}
	if w.titleBar == TitleBarOverlay {
		opts.Mac = &mac.Options{
			TitleBar: mac.TitleBarHidden(),
		}
	}
	return opts
}

func channel8(v float64) uint8 {
	return uint8(math.Round(v * 255))
}

func (b *Builder) startup(ctx context.Context, w *Window) {
	for _, p := range b.plugins {
		if err := p.Startup(ctx); err != nil {
			b.fail(ctx, fmt.Errorf("plugin %s: %w", p.Name(), err))
			return
		}
	}
	if err := w.ready(ctx); err != nil {
		b.fail(ctx, err)
		return
	}
	b.runtime.WindowShow(ctx)
}

func (b *Builder) fail(ctx context.Context, err error) {
	log.Printf("[app] startup failed: %v", err)
	b.mu.Lock()
	b.startupErr = err
	b.mu.Unlock()
	b.runtime.Quit(ctx)
}

func (b *Builder) shutdown(ctx context.Context) {
	for i := len(b.plugins) - 1; i >= 0; i-- {
		b.plugins[i].Shutdown(ctx)
	}
}
