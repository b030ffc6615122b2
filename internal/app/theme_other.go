//go:build !darwin

package app

import "context"

type defaultTheme struct{}

// PlatformTheme keeps the platform's default window chrome.
func PlatformTheme() Theme {
	return defaultTheme{}
}

func (defaultTheme) Configure(*WindowBuilder) {}

func (defaultTheme) Apply(context.Context, *Window) error {
	return nil
}
