package app

import "context"

// Plugin is a native capability exposed to the web content.
//
// Bind returns the objects whose exported methods the frontend may call.
// Startup runs inside the framework's startup hook, before the main window
// is shown; an error aborts the application. Shutdown runs when the run
// loop is tearing down, in reverse registration order.
type Plugin interface {
	Name() string
	Bind() []interface{}
	Startup(ctx context.Context) error
	Shutdown(ctx context.Context)
}
