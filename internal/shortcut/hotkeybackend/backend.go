// Package hotkeybackend binds shortcut hotkeys to the operating system
// through golang.design/x/hotkey. On Linux, linking this package opens the
// X11 display at init, so only the binary imports it; tests use fakes.
package hotkeybackend

import (
	"fmt"

	"golang.design/x/hotkey"

	"github.com/zunkelty/type-for-me/internal/shortcut"
)

var keyCodes = map[shortcut.Key]hotkey.Key{
	"A": hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD,
	"E": hotkey.KeyE, "F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH,
	"I": hotkey.KeyI, "J": hotkey.KeyJ, "K": hotkey.KeyK, "L": hotkey.KeyL,
	"M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO, "P": hotkey.KeyP,
	"Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
	"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX,
	"Y": hotkey.KeyY, "Z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"F1": hotkey.KeyF1, "F2": hotkey.KeyF2, "F3": hotkey.KeyF3, "F4": hotkey.KeyF4,
	"F5": hotkey.KeyF5, "F6": hotkey.KeyF6, "F7": hotkey.KeyF7, "F8": hotkey.KeyF8,
	"F9": hotkey.KeyF9, "F10": hotkey.KeyF10, "F11": hotkey.KeyF11, "F12": hotkey.KeyF12,
	"F13": hotkey.KeyF13, "F14": hotkey.KeyF14, "F15": hotkey.KeyF15, "F16": hotkey.KeyF16,
	"F17": hotkey.KeyF17, "F18": hotkey.KeyF18, "F19": hotkey.KeyF19, "F20": hotkey.KeyF20,
	"Space":  hotkey.KeySpace,
	"Enter":  hotkey.KeyReturn,
	"Escape": hotkey.KeyEscape,
	"Delete": hotkey.KeyDelete,
	"Tab":    hotkey.KeyTab,
	"Left":   hotkey.KeyLeft,
	"Right":  hotkey.KeyRight,
	"Up":     hotkey.KeyUp,
	"Down":   hotkey.KeyDown,
}

// New is a shortcut.Backend.
func New(mods []shortcut.Modifier, key shortcut.Key) shortcut.Hotkey {
	h := &osHotkey{}
	code, ok := keyCodes[key]
	if !ok {
		h.err = fmt.Errorf("%w: no key code for %q", shortcut.ErrInvalidShortcut, key)
		return h
	}
	codes := make([]hotkey.Modifier, 0, len(mods))
	for _, m := range mods {
		c, ok := platformModifiers[m]
		if !ok {
			h.err = fmt.Errorf("%w: no modifier code for %q", shortcut.ErrInvalidShortcut, m)
			return h
		}
		codes = append(codes, c)
	}
	h.hk = hotkey.New(codes, code)
	return h
}

// osHotkey adapts *hotkey.Hotkey. The channels are captured at Register
// because the library swaps them on Unregister.
type osHotkey struct {
	hk       *hotkey.Hotkey
	err      error
	down, up <-chan struct{}
}

func (h *osHotkey) Register() error {
	if h.err != nil {
		return h.err
	}
	if err := h.hk.Register(); err != nil {
		return err
	}
	h.down = forward(h.hk.Keydown())
	h.up = forward(h.hk.Keyup())
	return nil
}

func (h *osHotkey) Unregister() error {
	if h.hk == nil {
		return nil
	}
	return h.hk.Unregister()
}

func (h *osHotkey) Keydown() <-chan struct{} { return h.down }
func (h *osHotkey) Keyup() <-chan struct{}   { return h.up }

// forward relays events until the library closes in.
func forward(in <-chan hotkey.Event) <-chan struct{} {
	out := make(chan struct{})
	go func() {
		defer close(out)
		for range in {
			out <- struct{}{}
		}
	}()
	return out
}
