// Package preferences keeps the transcription shortcut the user picked in
// sync between the settings store and the global shortcut registry.
package preferences

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/zunkelty/type-for-me/internal/keys"
	"github.com/zunkelty/type-for-me/internal/shortcut"
)

// Settings store location and keys.
const (
	SettingsPath  = "settings.json"
	KeySelected   = "transcription.shortcut.selected"
	KeyRegistered = "transcription.shortcut.registered"
)

// SettingsDefaults are applied when settings.json is first created.
func SettingsDefaults() map[string]interface{} {
	return map[string]interface{}{
		KeySelected:   keys.Default(),
		KeyRegistered: nil,
	}
}

// Settings is the persisted key-value store. *store.Store satisfies it.
type Settings interface {
	GetString(key string) (string, bool)
	Set(key string, value interface{}) error
	Save() error
}

// Registry registers global shortcuts. *shortcut.Manager satisfies it.
type Registry interface {
	IsRegistered(shortcut string) bool
	Register(shortcut string) error
	Unregister(shortcut string) error
}

// Events delivers shortcut presses. *shortcut.Plugin satisfies it.
type Events interface {
	Subscribe(fn func(shortcut.Event)) (cancel func())
}

// State is what the settings UI renders.
type State struct {
	SelectedShortcut string `json:"selectedShortcut"`
	// RegisteredShortcut is empty when nothing is registered, which is the
	// case for standalone modifiers.
	RegisteredShortcut string `json:"registeredShortcut"`
	// EventState is the last "Pressed"/"Released" seen for the registered
	// shortcut, empty until the first press.
	EventState    string `json:"eventState"`
	IsInitialized bool   `json:"isInitialized"`
}

// Preferences is bound to the frontend. Initialize and SetShortcut are
// serialized; GetState may be called at any time.
type Preferences struct {
	open     func() (Settings, error)
	registry Registry
	fallback string

	inflight singleflight.Group
	op       sync.Mutex
	settings Settings

	mu    sync.Mutex
	state State
}

// New returns preferences backed by the settings store returned by open,
// which is called on first use.
func New(open func() (Settings, error), registry Registry, events Events) *Preferences {
	p := &Preferences{
		open:     open,
		registry: registry,
		fallback: keys.Default(),
	}
	p.state = State{SelectedShortcut: p.fallback}
	if events != nil {
		events.Subscribe(p.handleEvent)
	}
	return p
}

// GetState returns a snapshot of the current state.
func (p *Preferences) GetState() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// DefaultShortcut returns the platform's default shortcut.
func (p *Preferences) DefaultShortcut() string {
	return p.fallback
}

// Compose turns keys recorded in the settings UI into a shortcut.
func (p *Preferences) Compose(recorded []string) (string, error) {
	return keys.Compose(recorded)
}

// Display returns the labels for each token of shortcut.
func (p *Preferences) Display(shortcut string) []string {
	return keys.Display(shortcut)
}

// Initialize restores the persisted shortcut and registers it. Concurrent
// callers share one run and its error. Once it succeeds later calls return
// immediately; after a failure the next call tries again.
func (p *Preferences) Initialize() error {
	_, err, _ := p.inflight.Do("initialize", func() (interface{}, error) {
		return nil, p.initialize()
	})
	return err
}

func (p *Preferences) initialize() error {
	p.op.Lock()
	defer p.op.Unlock()

	if p.GetState().IsInitialized {
		return nil
	}

	settings, err := p.loadSettings()
	if err != nil {
		return err
	}

	selected := p.fallback
	if v, ok := settings.GetString(KeySelected); ok && strings.TrimSpace(v) != "" {
		selected = v
	}
	if !keys.IsStandaloneModifier(selected) {
		if _, err := shortcut.Parse(selected); err != nil {
			log.Printf("[preferences] warning: persisted shortcut %q unusable, using %q: %v", selected, p.fallback, err)
			selected = p.fallback
		}
	}
	previous := ""
	if v, ok := settings.GetString(KeyRegistered); ok && strings.TrimSpace(v) != "" {
		previous = v
	}

	registered := ""
	if keys.IsStandaloneModifier(selected) {
		if err := p.unregisterIfRegistered(previous); err != nil {
			return err
		}
	} else {
		if err := p.registerIfMissing(selected); err != nil {
			return err
		}
		registered = selected
		if previous != "" && previous != selected {
			if err := p.unregisterIfRegistered(previous); err != nil {
				return err
			}
		}
	}

	if err := persist(settings, selected, registered); err != nil {
		return err
	}

	p.mu.Lock()
	p.state = State{
		SelectedShortcut:   selected,
		RegisteredShortcut: registered,
		IsInitialized:      true,
	}
	p.mu.Unlock()

	log.Printf("[preferences] initialized: selected=%q registered=%q", selected, registered)
	return nil
}

// SetShortcut selects a new shortcut. Standalone modifiers are stored but
// not registered.
func (p *Preferences) SetShortcut(sc string) error {
	sc = strings.TrimSpace(sc)
	if sc == "" {
		return fmt.Errorf("shortcut is empty")
	}

	p.op.Lock()
	defer p.op.Unlock()

	cur := p.GetState()
	shouldRegister := !keys.IsStandaloneModifier(sc)
	next := ""
	if shouldRegister {
		next = sc
	}

	if sc == cur.SelectedShortcut && cur.RegisteredShortcut == next {
		return nil
	}

	settings, err := p.loadSettings()
	if err != nil {
		return err
	}

	if shouldRegister {
		if err := p.registerIfMissing(sc); err != nil {
			return err
		}
	}
	if cur.RegisteredShortcut != "" && cur.RegisteredShortcut != next {
		if err := p.unregisterIfRegistered(cur.RegisteredShortcut); err != nil {
			return err
		}
	}

	if err := persist(settings, sc, next); err != nil {
		return err
	}

	p.mu.Lock()
	p.state.SelectedShortcut = sc
	p.state.RegisteredShortcut = next
	p.state.EventState = ""
	p.mu.Unlock()
	return nil
}

func (p *Preferences) loadSettings() (Settings, error) {
	if p.settings != nil {
		return p.settings, nil
	}
	s, err := p.open()
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	p.settings = s
	return s, nil
}

func (p *Preferences) registerIfMissing(sc string) error {
	if p.registry.IsRegistered(sc) {
		return nil
	}
	err := p.registry.Register(sc)
	// A concurrent registration of the same shortcut is fine.
	if errors.Is(err, shortcut.ErrAlreadyRegistered) {
		return nil
	}
	return err
}

func (p *Preferences) unregisterIfRegistered(sc string) error {
	if sc == "" || !p.registry.IsRegistered(sc) {
		return nil
	}
	return p.registry.Unregister(sc)
}

func (p *Preferences) handleEvent(ev shortcut.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.RegisteredShortcut == "" {
		return
	}
	a, err := shortcut.Parse(p.state.RegisteredShortcut)
	if err != nil || a.String() != ev.Shortcut {
		return
	}
	p.state.EventState = ev.State
}

func persist(settings Settings, selected, registered string) error {
	var reg interface{}
	if registered != "" {
		reg = registered
	}
	if err := settings.Set(KeySelected, selected); err != nil {
		return err
	}
	if err := settings.Set(KeyRegistered, reg); err != nil {
		return err
	}
	if err := settings.Save(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
