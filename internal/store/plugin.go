package store

import (
	"context"
	"log"
)

// PluginName identifies the plugin in the application builder.
const PluginName = "store"

// Plugin wires a Manager into the application lifecycle. Unsaved stores are
// written on shutdown.
type Plugin struct {
	manager *Manager
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithDir sets the directory store paths are relative to.
func WithDir(dir string) Option {
	return func(p *Plugin) { p.manager.dir = dir }
}

// New returns the plugin rooted at DefaultDir unless WithDir is given.
func New(opts ...Option) *Plugin {
	p := &Plugin{manager: newManager("")}
	for _, opt := range opts {
		opt(p)
	}
	if p.manager.dir == "" {
		p.manager.dir = DefaultDir()
	}
	return p
}

// Manager returns the bound manager.
func (p *Plugin) Manager() *Manager {
	return p.manager
}

// Open returns the store at path for Go-side callers. It shares the cache
// with frontend Load calls.
func (p *Plugin) Open(path string, defaults map[string]interface{}) (*Store, error) {
	return p.manager.open(path, defaults)
}

func (p *Plugin) Name() string {
	return PluginName
}

func (p *Plugin) Bind() []interface{} {
	return []interface{}{p.manager}
}

func (p *Plugin) Startup(ctx context.Context) error {
	return nil
}

func (p *Plugin) Shutdown(ctx context.Context) {
	if err := p.manager.saveAll(); err != nil {
		log.Printf("[store] shutdown: %v", err)
	}
}
