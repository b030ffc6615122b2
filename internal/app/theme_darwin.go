//go:build darwin

package app

import (
	"context"
	"fmt"
)

type macTheme struct{}

// PlatformTheme uses an overlay title bar and tints the native background.
func PlatformTheme() Theme {
	return macTheme{}
}

func (macTheme) Configure(b *WindowBuilder) {
	b.TitleBarStyle(TitleBarOverlay).Background(BackgroundTint)
}

func (macTheme) Apply(ctx context.Context, w *Window) error {
	h, err := lookupNativeWindow()
	if err != nil {
		return fmt.Errorf("native handle for window %q: %w", w.Label(), err)
	}
	if err := setNativeBackground(h, BackgroundTint); err != nil {
		return fmt.Errorf("set background of window %q: %w", w.Label(), err)
	}
	return nil
}
