package shortcut

import (
	"context"
	"log"
)

// PluginName identifies the plugin in the application builder.
const PluginName = "global-shortcut"

// Plugin wires a Manager into the application lifecycle.
type Plugin struct {
	manager *Manager
}

// Option configures a Plugin.
type Option func(*options)

type options struct {
	backend Backend
	emitter Emitter
}

// WithBackend replaces the OS hotkey backend.
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithEmitter replaces the frontend event emitter.
func WithEmitter(e Emitter) Option {
	return func(o *options) { o.emitter = e }
}

// New returns the plugin. Events go to the Wails event bus. Without
// WithBackend every Register fails with ErrNoBackend; the binary passes
// hotkeybackend.New.
func New(opts ...Option) *Plugin {
	o := options{backend: unavailableBackend, emitter: wailsEmitter{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Plugin{manager: newManager(o.backend, o.emitter)}
}

// Manager returns the shortcut manager for Go-side callers.
func (p *Plugin) Manager() *Manager {
	return p.manager
}

// Subscribe calls fn for every shortcut event until the returned cancel
// function is called. fn runs on the hotkey's listener goroutine.
func (p *Plugin) Subscribe(fn func(Event)) (cancel func()) {
	return p.manager.subscribe(fn)
}

func (p *Plugin) Name() string {
	return PluginName
}

func (p *Plugin) Bind() []interface{} {
	return []interface{}{p.manager}
}

func (p *Plugin) Startup(ctx context.Context) error {
	p.manager.setContext(ctx)
	return nil
}

func (p *Plugin) Shutdown(ctx context.Context) {
	if err := p.manager.UnregisterAll(); err != nil {
		log.Printf("[shortcut] shutdown: %v", err)
	}
}
