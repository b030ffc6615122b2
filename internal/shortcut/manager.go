// Package shortcut exposes system-wide keyboard shortcuts to the web
// content. Key presses are delivered as "global-shortcut" events.
package shortcut

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// EventName is the frontend event carrying an Event payload.
const EventName = "global-shortcut"

// Event states.
const (
	Pressed  = "Pressed"
	Released = "Released"
)

var (
	ErrAlreadyRegistered = errors.New("shortcut already registered")
	ErrNotRegistered     = errors.New("shortcut not registered")
)

// ErrNoBackend is returned by Register when the plugin was built without an
// OS hotkey backend.
var ErrNoBackend = errors.New("no global hotkey backend")

// Event is emitted on every press and release of a registered shortcut.
type Event struct {
	Shortcut string `json:"shortcut"`
	State    string `json:"state"`
}

// Hotkey is a single OS-level hotkey. Keydown and Keyup must return the
// same channels for the lifetime of a registration, and Unregister must
// close them.
type Hotkey interface {
	Register() error
	Unregister() error
	Keydown() <-chan struct{}
	Keyup() <-chan struct{}
}

// Backend creates hotkeys. The OS implementation lives in
// internal/shortcut/hotkeybackend.
type Backend func(mods []Modifier, key Key) Hotkey

type unavailableHotkey struct{}

func (unavailableHotkey) Register() error          { return ErrNoBackend }
func (unavailableHotkey) Unregister() error        { return nil }
func (unavailableHotkey) Keydown() <-chan struct{} { return nil }
func (unavailableHotkey) Keyup() <-chan struct{}   { return nil }

func unavailableBackend([]Modifier, Key) Hotkey {
	return unavailableHotkey{}
}

// Emitter delivers events to the frontend.
type Emitter interface {
	EventsEmit(ctx context.Context, name string, data ...interface{})
}

type wailsEmitter struct{}

func (wailsEmitter) EventsEmit(ctx context.Context, name string, data ...interface{}) {
	wailsRuntime.EventsEmit(ctx, name, data...)
}

type registration struct {
	accel    Accelerator
	hk       Hotkey
	released atomic.Bool
}

// Manager owns the registered hotkeys. Its exported methods are bound to
// the frontend and are safe for concurrent use.
type Manager struct {
	backend Backend
	emitter Emitter

	mu         sync.Mutex
	ctx        context.Context
	registered map[string]*registration
	listeners  map[int]func(Event)
	nextID     int
}

func newManager(backend Backend, emitter Emitter) *Manager {
	return &Manager{
		backend:    backend,
		emitter:    emitter,
		registered: make(map[string]*registration),
		listeners:  make(map[int]func(Event)),
	}
}

func (m *Manager) setContext(ctx context.Context) {
	m.mu.Lock()
	m.ctx = ctx
	m.mu.Unlock()
}

// IsRegistered reports whether shortcut is currently registered.
func (m *Manager) IsRegistered(shortcut string) bool {
	a, err := Parse(shortcut)
	if err != nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.registered[a.String()]
	return ok
}

// Register binds shortcut system-wide.
func (m *Manager) Register(shortcut string) error {
	a, err := Parse(shortcut)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := a.String()
	if _, ok := m.registered[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}

	hk := m.backend(a.Modifiers(), a.key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}

	r := &registration{accel: a, hk: hk}
	m.registered[name] = r
	go m.listen(r)

	log.Printf("[shortcut] registered %s", name)
	return nil
}

// RegisterAll registers every shortcut, stopping at the first failure.
func (m *Manager) RegisterAll(shortcuts []string) error {
	for _, s := range shortcuts {
		if err := m.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// Unregister releases shortcut.
func (m *Manager) Unregister(shortcut string) error {
	a, err := Parse(shortcut)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := a.String()
	r, ok := m.registered[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	delete(m.registered, name)
	return m.release(r)
}

// UnregisterAll releases every registered shortcut and returns the first
// error encountered.
func (m *Manager) UnregisterAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var first error
	for name, r := range m.registered {
		delete(m.registered, name)
		if err := m.release(r); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Registered lists the registered shortcuts in canonical form.
func (m *Manager) Registered() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.registered))
	for name := range m.registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) subscribe(fn func(Event)) (cancel func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// release must be called with m.mu held. The listener keeps draining until
// the backend closes the channels so no pending event is left unread.
func (m *Manager) release(r *registration) error {
	r.released.Store(true)
	if err := r.hk.Unregister(); err != nil {
		return fmt.Errorf("unregister %s: %w", r.accel, err)
	}
	log.Printf("[shortcut] unregistered %s", r.accel)
	return nil
}

func (m *Manager) listen(r *registration) {
	keydown, keyup := r.hk.Keydown(), r.hk.Keyup()
	for keydown != nil || keyup != nil {
		select {
		case _, ok := <-keydown:
			if !ok {
				keydown = nil
				continue
			}
			if !r.released.Load() {
				m.dispatch(Event{Shortcut: r.accel.String(), State: Pressed})
			}
		case _, ok := <-keyup:
			if !ok {
				keyup = nil
				continue
			}
			if !r.released.Load() {
				m.dispatch(Event{Shortcut: r.accel.String(), State: Released})
			}
		}
	}
}

func (m *Manager) dispatch(ev Event) {
	m.mu.Lock()
	ctx := m.ctx
	listeners := make([]func(Event), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	if ctx != nil {
		m.emitter.EventsEmit(ctx, EventName, ev)
	}
	for _, fn := range listeners {
		fn(ev)
	}
}
