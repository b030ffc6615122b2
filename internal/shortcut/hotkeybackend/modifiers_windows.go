//go:build windows

package hotkeybackend

import (
	"golang.design/x/hotkey"

	"github.com/zunkelty/type-for-me/internal/shortcut"
)

var platformModifiers = map[shortcut.Modifier]hotkey.Modifier{
	shortcut.ModControl: hotkey.ModCtrl,
	shortcut.ModAlt:     hotkey.ModAlt,
	shortcut.ModShift:   hotkey.ModShift,
	shortcut.ModCommand: hotkey.ModWin,
}
