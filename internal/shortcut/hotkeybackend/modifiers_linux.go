//go:build linux

package hotkeybackend

import (
	"golang.design/x/hotkey"

	"github.com/zunkelty/type-for-me/internal/shortcut"
)

// X11 maps Alt to Mod1 and Super to Mod4.
var platformModifiers = map[shortcut.Modifier]hotkey.Modifier{
	shortcut.ModControl: hotkey.ModCtrl,
	shortcut.ModAlt:     hotkey.Mod1,
	shortcut.ModShift:   hotkey.ModShift,
	shortcut.ModCommand: hotkey.Mod4,
}
