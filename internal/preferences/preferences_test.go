package preferences

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zunkelty/type-for-me/internal/keys"
	"github.com/zunkelty/type-for-me/internal/shortcut"
	"github.com/zunkelty/type-for-me/internal/store"
)

type fakeRegistry struct {
	mu          sync.Mutex
	registered  map[string]bool
	registers   []string
	unregisters []string
	registerErr error

	// gate, when set, holds Register until it is closed.
	gate chan struct{}
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{registered: make(map[string]bool)}
}

func (r *fakeRegistry) IsRegistered(sc string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registered[sc]
}

func (r *fakeRegistry) Register(sc string) error {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registers = append(r.registers, sc)
	if r.registerErr != nil {
		return r.registerErr
	}
	r.registered[sc] = true
	return nil
}

func (r *fakeRegistry) Unregister(sc string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisters = append(r.unregisters, sc)
	delete(r.registered, sc)
	return nil
}

type fakeEvents struct {
	fn func(shortcut.Event)
}

func (e *fakeEvents) Subscribe(fn func(shortcut.Event)) func() {
	e.fn = fn
	return func() { e.fn = nil }
}

type testEnv struct {
	prefs    *Preferences
	registry *fakeRegistry
	events   *fakeEvents
	plugin   *store.Plugin
	dir      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		registry: newFakeRegistry(),
		events:   &fakeEvents{},
		dir:      t.TempDir(),
	}
	env.plugin = store.New(store.WithDir(env.dir))
	env.prefs = New(env.openSettings, env.registry, env.events)
	return env
}

func (env *testEnv) openSettings() (Settings, error) {
	s, err := env.plugin.Open(SettingsPath, SettingsDefaults())
	if err != nil {
		return nil, err
	}
	return s, nil
}

// reopen reads settings.json from disk through a fresh store plugin.
func (env *testEnv) reopen(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(store.WithDir(env.dir)).Open(SettingsPath, nil)
	require.NoError(t, err)
	return s
}

// seed writes values into settings.json before the preferences open it.
func (env *testEnv) seed(t *testing.T, values map[string]interface{}) {
	t.Helper()
	s, err := store.New(store.WithDir(env.dir)).Open(SettingsPath, nil)
	require.NoError(t, err)
	for k, v := range values {
		require.NoError(t, s.Set(k, v))
	}
	require.NoError(t, s.Save())
}

func TestInitialStateBeforeInitialize(t *testing.T) {
	env := newTestEnv(t)
	state := env.prefs.GetState()
	assert.False(t, state.IsInitialized)
	assert.Equal(t, keys.Default(), state.SelectedShortcut)
	assert.Empty(t, state.RegisteredShortcut)
	assert.Equal(t, keys.Default(), env.prefs.DefaultShortcut())
}

func TestInitializeRegistersDefault(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.prefs.Initialize())

	state := env.prefs.GetState()
	assert.True(t, state.IsInitialized)
	assert.Equal(t, keys.Default(), state.SelectedShortcut)
	assert.Equal(t, keys.Default(), state.RegisteredShortcut)
	assert.True(t, env.registry.IsRegistered(keys.Default()))

	onDisk := env.reopen(t)
	got, _ := onDisk.GetString(KeySelected)
	assert.Equal(t, keys.Default(), got)
	got, _ = onDisk.GetString(KeyRegistered)
	assert.Equal(t, keys.Default(), got)
}

func TestInitializeRunsOnce(t *testing.T) {
	env := newTestEnv(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, env.prefs.Initialize())
		}()
	}
	wg.Wait()
	require.NoError(t, env.prefs.Initialize())

	assert.Len(t, env.registry.registers, 1)
}

func TestConcurrentInitializeSharesFailure(t *testing.T) {
	env := newTestEnv(t)
	failure := errors.New("taken by another app")
	env.registry.registerErr = failure
	env.registry.gate = make(chan struct{})

	const callers = 8
	var started, done sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		started.Add(1)
		done.Add(1)
		go func(i int) {
			defer done.Done()
			started.Done()
			errs[i] = env.prefs.Initialize()
		}(i)
	}
	started.Wait()
	// Let every caller reach Initialize before the first run finishes.
	time.Sleep(50 * time.Millisecond)
	close(env.registry.gate)
	done.Wait()

	for i, err := range errs {
		assert.ErrorIs(t, err, failure, "caller %d", i)
	}
	assert.Len(t, env.registry.registers, 1)
	assert.False(t, env.prefs.GetState().IsInitialized)

	env.registry.registerErr = nil
	require.NoError(t, env.prefs.Initialize())
	assert.Len(t, env.registry.registers, 2)
	assert.True(t, env.prefs.GetState().IsInitialized)
}

func TestInitializeReplacesUnusablePersistedShortcut(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, map[string]interface{}{KeySelected: "Control+Backspace"})

	require.NoError(t, env.prefs.Initialize())

	state := env.prefs.GetState()
	assert.Equal(t, keys.Default(), state.SelectedShortcut)
	assert.Equal(t, keys.Default(), state.RegisteredShortcut)
	assert.Equal(t, []string{keys.Default()}, env.registry.registers)

	got, _ := env.reopen(t).GetString(KeySelected)
	assert.Equal(t, keys.Default(), got)
}

func TestInitializeRestoresPersistedShortcut(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, map[string]interface{}{
		KeySelected:   "Alt+K",
		KeyRegistered: "Control+J",
	})
	env.registry.registered["Control+J"] = true

	require.NoError(t, env.prefs.Initialize())

	state := env.prefs.GetState()
	assert.Equal(t, "Alt+K", state.SelectedShortcut)
	assert.Equal(t, "Alt+K", state.RegisteredShortcut)
	assert.True(t, env.registry.IsRegistered("Alt+K"))
	assert.False(t, env.registry.IsRegistered("Control+J"))
	assert.Equal(t, []string{"Control+J"}, env.registry.unregisters)
}

func TestInitializeStandaloneModifierIsNotRegistered(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, map[string]interface{}{KeySelected: "Fn"})

	require.NoError(t, env.prefs.Initialize())

	state := env.prefs.GetState()
	assert.Equal(t, "Fn", state.SelectedShortcut)
	assert.Empty(t, state.RegisteredShortcut)
	assert.Empty(t, env.registry.registers)

	onDisk := env.reopen(t)
	v, ok := onDisk.Get(KeyRegistered)
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestInitializeBlankSelectionUsesDefault(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, map[string]interface{}{KeySelected: "   "})

	require.NoError(t, env.prefs.Initialize())
	assert.Equal(t, keys.Default(), env.prefs.GetState().SelectedShortcut)
}

func TestInitializeFailureLeavesStateUninitialized(t *testing.T) {
	env := newTestEnv(t)
	env.registry.registerErr = errors.New("taken by another app")

	err := env.prefs.Initialize()
	assert.Error(t, err)
	assert.False(t, env.prefs.GetState().IsInitialized)

	env.registry.registerErr = nil
	require.NoError(t, env.prefs.Initialize())
	assert.True(t, env.prefs.GetState().IsInitialized)
}

func TestInitializeOpenFailure(t *testing.T) {
	prefs := New(func() (Settings, error) {
		return nil, errors.New("disk gone")
	}, newFakeRegistry(), nil)

	err := prefs.Initialize()
	assert.ErrorContains(t, err, "open settings")
	assert.False(t, prefs.GetState().IsInitialized)
}

func TestSetShortcutSwapsRegistration(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.prefs.Initialize())

	require.NoError(t, env.prefs.SetShortcut("Alt+Space"))

	state := env.prefs.GetState()
	assert.Equal(t, "Alt+Space", state.SelectedShortcut)
	assert.Equal(t, "Alt+Space", state.RegisteredShortcut)
	assert.True(t, env.registry.IsRegistered("Alt+Space"))
	assert.False(t, env.registry.IsRegistered(keys.Default()))

	onDisk := env.reopen(t)
	got, _ := onDisk.GetString(KeySelected)
	assert.Equal(t, "Alt+Space", got)
	got, _ = onDisk.GetString(KeyRegistered)
	assert.Equal(t, "Alt+Space", got)
}

func TestSetShortcutSameValueIsNoop(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.prefs.Initialize())
	before := len(env.registry.registers)

	require.NoError(t, env.prefs.SetShortcut(" "+keys.Default()+" "))
	assert.Len(t, env.registry.registers, before)
	assert.Empty(t, env.registry.unregisters)
}

func TestSetShortcutStandaloneModifierUnregisters(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.prefs.Initialize())

	require.NoError(t, env.prefs.SetShortcut("Shift"))

	state := env.prefs.GetState()
	assert.Equal(t, "Shift", state.SelectedShortcut)
	assert.Empty(t, state.RegisteredShortcut)
	assert.Equal(t, []string{keys.Default()}, env.registry.unregisters)
	assert.False(t, env.registry.IsRegistered("Shift"))
}

func TestSetShortcutToleratesAlreadyRegistered(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.prefs.Initialize())
	env.registry.registerErr = shortcut.ErrAlreadyRegistered

	require.NoError(t, env.prefs.SetShortcut("Alt+J"))
	assert.Equal(t, "Alt+J", env.prefs.GetState().RegisteredShortcut)
}

func TestSetShortcutRegisterFailureKeepsState(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.prefs.Initialize())
	env.registry.registerErr = errors.New("taken")

	assert.Error(t, env.prefs.SetShortcut("Alt+J"))

	state := env.prefs.GetState()
	assert.Equal(t, keys.Default(), state.SelectedShortcut)
	assert.Equal(t, keys.Default(), state.RegisteredShortcut)
	assert.True(t, env.registry.IsRegistered(keys.Default()))
}

func TestSetShortcutRejectsEmpty(t *testing.T) {
	env := newTestEnv(t)
	assert.Error(t, env.prefs.SetShortcut("  "))
	assert.Empty(t, env.registry.registers)
}

func TestEventStateTracksRegisteredShortcut(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.prefs.Initialize())
	require.NoError(t, env.prefs.SetShortcut("shift+alt+k"))
	require.NotNil(t, env.events.fn)

	env.events.fn(shortcut.Event{Shortcut: "Control+X", State: shortcut.Pressed})
	assert.Empty(t, env.prefs.GetState().EventState)

	env.events.fn(shortcut.Event{Shortcut: "Alt+Shift+K", State: shortcut.Pressed})
	assert.Equal(t, shortcut.Pressed, env.prefs.GetState().EventState)

	env.events.fn(shortcut.Event{Shortcut: "Alt+Shift+K", State: shortcut.Released})
	assert.Equal(t, shortcut.Released, env.prefs.GetState().EventState)

	require.NoError(t, env.prefs.SetShortcut("Alt+L"))
	assert.Empty(t, env.prefs.GetState().EventState)
}

func TestComposeAndDisplay(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.prefs.Compose([]string{"Shift", "Control", "k"})
	require.NoError(t, err)
	want, err := keys.Compose([]string{"Shift", "Control", "k"})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Equal(t, keys.Display("Control+Shift+Space"), env.prefs.Display("Control+Shift+Space"))
}
