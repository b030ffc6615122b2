//go:build darwin

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zunkelty/type-for-me/internal/nativewin"
)

func stubNative(t *testing.T, lookupErr error) *[]nativewin.Color {
	t.Helper()
	origLookup, origSet := lookupNativeWindow, setNativeBackground
	t.Cleanup(func() {
		lookupNativeWindow, setNativeBackground = origLookup, origSet
	})

	var painted []nativewin.Color
	lookupNativeWindow = func() (nativewin.Handle, error) {
		return nativewin.Handle{}, lookupErr
	}
	setNativeBackground = func(_ nativewin.Handle, c nativewin.Color) error {
		painted = append(painted, c)
		return nil
	}
	return &painted
}

func TestMacThemeConfiguresOverlayTitleBar(t *testing.T) {
	s := &Setup{}
	b := s.NewWindow("main", BundledContent(testAssets))
	PlatformTheme().Configure(b)
	w, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, TitleBarOverlay, w.TitleBar())

	bg, ok := w.Background()
	require.True(t, ok)
	assert.Equal(t, BackgroundTint, bg)
}

func TestMacThemePaintsBackground(t *testing.T) {
	painted := stubNative(t, nil)
	s := &Setup{}
	w, err := s.NewWindow("main", BundledContent(testAssets)).Build()
	require.NoError(t, err)

	require.NoError(t, PlatformTheme().Apply(context.Background(), w))
	require.Len(t, *painted, 1)

	c := (*painted)[0]
	assert.InDelta(t, 250.0/255.0, c.R, 1e-6)
	assert.InDelta(t, 250.0/255.0, c.G, 1e-6)
	assert.InDelta(t, 249.0/255.0, c.B, 1e-6)
	assert.InDelta(t, 1.0, c.A, 1e-6)
}

func TestMacThemeFailsWithoutNativeWindow(t *testing.T) {
	painted := stubNative(t, nativewin.ErrNoWindow)
	s := &Setup{}
	w, err := s.NewWindow("main", BundledContent(testAssets)).Build()
	require.NoError(t, err)

	err = PlatformTheme().Apply(context.Background(), w)
	assert.ErrorIs(t, err, nativewin.ErrNoWindow)
	assert.Empty(t, *painted)
}
