//go:build darwin

package hotkeybackend

import (
	"golang.design/x/hotkey"

	"github.com/zunkelty/type-for-me/internal/shortcut"
)

var platformModifiers = map[shortcut.Modifier]hotkey.Modifier{
	shortcut.ModControl: hotkey.ModCtrl,
	shortcut.ModAlt:     hotkey.ModOption,
	shortcut.ModShift:   hotkey.ModShift,
	shortcut.ModCommand: hotkey.ModCmd,
}
