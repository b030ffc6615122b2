package app

import (
	"context"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// Host runs the framework's blocking run loop with the given options.
type Host interface {
	Run(opts *options.App) error
}

// HostFunc adapts a function to Host.
type HostFunc func(opts *options.App) error

func (f HostFunc) Run(opts *options.App) error {
	return f(opts)
}

// WailsHost is the production host.
var WailsHost Host = HostFunc(wails.Run)

// Runtime is the subset of the framework runtime the app calls while the
// run loop is active. The context must be the one passed to startup.
type Runtime interface {
	WindowShow(ctx context.Context)
	Quit(ctx context.Context)
	EventsEmit(ctx context.Context, name string, data ...interface{})
}

// WailsRuntime forwards to github.com/wailsapp/wails/v2/pkg/runtime.
type WailsRuntime struct{}

func (WailsRuntime) WindowShow(ctx context.Context) {
	wailsRuntime.WindowShow(ctx)
}

func (WailsRuntime) Quit(ctx context.Context) {
	wailsRuntime.Quit(ctx)
}

func (WailsRuntime) EventsEmit(ctx context.Context, name string, data ...interface{}) {
	wailsRuntime.EventsEmit(ctx, name, data...)
}
