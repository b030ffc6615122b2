// Package desktop wires the type-for-me desktop application: the global
// shortcut and store plugins, the shortcut preferences, and the single
// fixed-size main window.
package desktop

import (
	"fmt"
	"io/fs"
	"log"
	"runtime"

	"github.com/zunkelty/type-for-me/internal/app"
	"github.com/zunkelty/type-for-me/internal/config"
	"github.com/zunkelty/type-for-me/internal/preferences"
	"github.com/zunkelty/type-for-me/internal/shortcut"
	"github.com/zunkelty/type-for-me/internal/store"
)

// Version is set at build time via ldflags
var Version = "0.1.0-dev"

// Main window properties.
const (
	MainWindowLabel  = "main"
	MainWindowWidth  = 800
	MainWindowHeight = 600
)

// Options configures Run. Zero values select the production defaults,
// except Shortcuts: a nil plugin has no OS backend, so the binary passes
// one built with hotkeybackend.New.
type Options struct {
	// Assets is the bundled web content. Required.
	Assets fs.FS
	Config *config.Config

	Host      app.Host
	Runtime   app.Runtime
	Theme     app.Theme
	Shortcuts *shortcut.Plugin
	Store     *store.Plugin
}

// App exposes build information to the frontend.
type App struct{}

// GetVersion returns the application version
func (a *App) GetVersion() string {
	return Version
}

// GetPlatform returns the GOOS the binary was built for.
func (a *App) GetPlatform() string {
	return runtime.GOOS
}

// NewBuilder assembles the application without starting it.
func NewBuilder(opts Options) *app.Builder {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := opts.Theme
	if theme == nil {
		theme = app.PlatformTheme()
	}
	shortcuts := opts.Shortcuts
	if shortcuts == nil {
		shortcuts = shortcut.New()
	}
	stores := opts.Store
	if stores == nil {
		var storeOpts []store.Option
		if cfg.Store.Dir != "" {
			storeOpts = append(storeOpts, store.WithDir(cfg.Store.Dir))
		}
		stores = store.New(storeOpts...)
	}

	openSettings := func() (preferences.Settings, error) {
		s, err := stores.Open(preferences.SettingsPath, preferences.SettingsDefaults())
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	prefs := preferences.New(openSettings, shortcuts.Manager(), shortcuts)

	b := app.NewBuilder().
		Plugin(shortcuts).
		Plugin(stores).
		Bind(&App{}, prefs).
		Logger(cfg.Logger(), cfg.LogLevel()).
		Inspector(cfg.Debug.Inspector).
		Setup(func(s *app.Setup) error {
			wb := s.NewWindow(MainWindowLabel, app.BundledContent(opts.Assets)).
				Title("").
				InnerSize(MainWindowWidth, MainWindowHeight).
				Resizable(false)
			theme.Configure(wb)
			w, err := wb.Build()
			if err != nil {
				return err
			}
			w.OnReady(theme.Apply)
			return nil
		})
	if opts.Runtime != nil {
		b.Runtime(opts.Runtime)
	}
	return b
}

// Run builds the application and blocks in the run loop until it exits.
// Any returned error is fatal.
func Run(opts Options) error {
	host := opts.Host
	if host == nil {
		host = app.WailsHost
	}
	log.Printf("[desktop] starting type-for-me %s", Version)
	if err := NewBuilder(opts).Run(host); err != nil {
		return fmt.Errorf("type-for-me: %w", err)
	}
	return nil
}
