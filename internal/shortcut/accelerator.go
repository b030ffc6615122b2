package shortcut

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/zunkelty/type-for-me/internal/keys"
)

// ErrInvalidShortcut is returned for accelerators that cannot be bound to a
// global hotkey.
var ErrInvalidShortcut = errors.New("invalid shortcut")

// Modifier is a platform-neutral modifier: one of keys.Control, keys.Alt,
// keys.Shift or keys.Command. Backends map it to the OS modifier.
type Modifier string

// Key is a bindable key token as accepted by keys.IsBindable.
type Key string

const (
	ModControl Modifier = keys.Control
	ModAlt     Modifier = keys.Alt
	ModShift   Modifier = keys.Shift
	ModCommand Modifier = keys.Command
)

// commandOrControl resolves to Command on macOS and Control elsewhere.
const commandOrControl = "CommandOrControl"

// modifierOrder fixes the canonical order of modifiers in String.
var modifierOrder = []Modifier{ModControl, ModAlt, ModShift, ModCommand}

// modifierAliases maps lower-cased accelerator modifiers to canonical names.
var modifierAliases = map[string]Modifier{
	"control":          ModControl,
	"ctrl":             ModControl,
	"alt":              ModAlt,
	"option":           ModAlt,
	"shift":            ModShift,
	"command":          ModCommand,
	"cmd":              ModCommand,
	"super":            ModCommand,
	"meta":             ModCommand,
	"commandorcontrol": commandOrControl,
	"cmdorctrl":        commandOrControl,
}

// Accelerator is a parsed shortcut.
type Accelerator struct {
	mods []Modifier
	key  Key
}

// Modifiers returns the modifiers in canonical order.
func (a Accelerator) Modifiers() []Modifier {
	return append([]Modifier(nil), a.mods...)
}

func (a Accelerator) Key() Key {
	return a.key
}

// String returns the canonical form, e.g. "Control+Shift+Space".
func (a Accelerator) String() string {
	parts := make([]string, 0, len(a.mods)+1)
	for _, m := range a.mods {
		parts = append(parts, string(m))
	}
	return strings.Join(append(parts, string(a.key)), "+")
}

// Parse parses an accelerator such as "CommandOrControl+Shift+Space".
// Modifier and key names are case-insensitive; exactly one bindable key is
// required.
func Parse(shortcut string) (Accelerator, error) {
	tokens := keys.Tokenize(shortcut)
	if len(tokens) == 0 {
		return Accelerator{}, fmt.Errorf("%w: empty", ErrInvalidShortcut)
	}

	present := make(map[Modifier]bool)
	var key Key
	for _, tok := range tokens {
		if m, ok := modifierAliases[strings.ToLower(tok)]; ok {
			if m == commandOrControl {
				m = commandOrControlFor(runtime.GOOS)
			}
			present[m] = true
			continue
		}
		if key != "" {
			return Accelerator{}, fmt.Errorf("%w: %q has more than one key", ErrInvalidShortcut, shortcut)
		}
		k, ok := keyName(tok)
		if !ok {
			return Accelerator{}, fmt.Errorf("%w: unknown key %q", ErrInvalidShortcut, tok)
		}
		key = k
	}
	if key == "" {
		return Accelerator{}, fmt.Errorf("%w: %q has no key", ErrInvalidShortcut, shortcut)
	}

	a := Accelerator{key: key}
	for _, m := range modifierOrder {
		if present[m] {
			a.mods = append(a.mods, m)
		}
	}
	return a, nil
}

func keyName(tok string) (Key, bool) {
	token, ok := keys.PrimaryKey(tok)
	if !ok || !keys.IsBindable(token) {
		return "", false
	}
	return Key(token), true
}

func commandOrControlFor(goos string) Modifier {
	if goos == "darwin" {
		return ModCommand
	}
	return ModControl
}
