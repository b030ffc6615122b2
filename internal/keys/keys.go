// Package keys implements the accelerator grammar shared by the shortcut
// plugin and the preference UI: "Modifier+...+Key" strings such as
// "Control+Shift+Space".
package keys

import (
	"fmt"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// Canonical modifier tokens, in the order Compose emits them.
const (
	Control = "Control"
	Alt     = "Alt"
	Shift   = "Shift"
	Command = "Command"
)

// modifierKeys are the recorder key names that count as modifiers.
var modifierKeys = map[string]bool{
	"ctrl":    true,
	"control": true,
	"alt":     true,
	"shift":   true,
	"meta":    true,
}

// standaloneModifiers may be selected on their own. They are never
// registered as global hotkeys.
var standaloneModifiers = map[string]bool{
	Control: true,
	Alt:     true,
	Shift:   true,
	Command: true,
	"Fn":    true,
}

// keyMap translates recorder key names to accelerator key tokens.
var keyMap = map[string]string{
	"space":      "Space",
	"enter":      "Enter",
	"return":     "Enter",
	"escape":     "Escape",
	"esc":        "Escape",
	"tab":        "Tab",
	"delete":     "Delete",
	"up":         "Up",
	"down":       "Down",
	"left":       "Left",
	"right":      "Right",
	"arrowup":    "Up",
	"arrowdown":  "Down",
	"arrowleft":  "Left",
	"arrowright": "Right",
}

// namedKeys are the bindable keys that are neither alphanumeric nor
// function keys.
var namedKeys = []string{"Space", "Enter", "Escape", "Delete", "Tab", "Up", "Down", "Left", "Right"}

// MaxFunctionKey is the highest function key a global hotkey can bind.
const MaxFunctionKey = 20

// displayMap holds the label shown for tokens that should not be printed
// verbatim.
var displayMap = map[string]string{
	Command: "⌘",
	Control: "Ctrl",
	Alt:     "Alt",
	Shift:   "Shift",
	"Space": "Space",
	"Enter": "↵",
	"Up":    "↑",
	"Down":  "↓",
	"Left":  "←",
	"Right": "→",
}

var functionKey = regexp.MustCompile(`^[fF]([1-9]\d?)$`)

// IsModifierKey reports whether a recorder key name is a modifier.
func IsModifierKey(key string) bool {
	return modifierKeys[strings.ToLower(strings.TrimSpace(key))]
}

// PrimaryKey converts a recorder key name ("a", "f5", "space") into its
// accelerator token ("A", "F5", "Space"). ok is false for keys a global
// hotkey cannot bind.
func PrimaryKey(key string) (token string, ok bool) {
	k := strings.ToLower(strings.TrimSpace(key))

	if len(k) == 1 {
		c := k[0]
		switch {
		case c >= 'a' && c <= 'z':
			return strings.ToUpper(k), true
		case c >= '0' && c <= '9':
			return k, true
		}
	}

	if isFunctionKey(k) {
		return strings.ToUpper(k), true
	}

	token, ok = keyMap[k]
	return token, ok
}

// IsBindable reports whether token is an accelerator key token that a
// global hotkey can bind. Tokens are case-sensitive: "A", "F5", "Space".
func IsBindable(token string) bool {
	if len(token) == 1 {
		c := token[0]
		return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
	}
	if token != "" && token[0] == 'F' && isFunctionKey(token) {
		return true
	}
	for _, k := range namedKeys {
		if k == token {
			return true
		}
	}
	return false
}

// Bindable lists every key token IsBindable accepts.
func Bindable() []string {
	tokens := make([]string, 0, 36+MaxFunctionKey+len(namedKeys))
	for c := 'A'; c <= 'Z'; c++ {
		tokens = append(tokens, string(c))
	}
	for c := '0'; c <= '9'; c++ {
		tokens = append(tokens, string(c))
	}
	for n := 1; n <= MaxFunctionKey; n++ {
		tokens = append(tokens, "F"+strconv.Itoa(n))
	}
	return append(tokens, namedKeys...)
}

func isFunctionKey(k string) bool {
	m := functionKey.FindStringSubmatch(k)
	if m == nil {
		return false
	}
	n, err := strconv.Atoi(m[1])
	return err == nil && n >= 1 && n <= MaxFunctionKey
}

// Compose builds an accelerator from a set of recorded key names. A set
// holding exactly one modifier and no other key yields that modifier alone.
func Compose(recorded []string) (string, error) {
	seen := make(map[string]bool, len(recorded))
	var primary string
	for _, key := range recorded {
		k := strings.ToLower(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		seen[k] = true
		if !modifierKeys[k] && primary == "" {
			primary = k
		}
	}

	var mods []string
	if seen["ctrl"] || seen["control"] {
		mods = append(mods, Control)
	}
	if seen["alt"] {
		mods = append(mods, Alt)
	}
	if seen["shift"] {
		mods = append(mods, Shift)
	}
	if seen["meta"] {
		mods = append(mods, Command)
	}

	if primary == "" {
		if len(mods) == 1 {
			return mods[0], nil
		}
		return "", fmt.Errorf("shortcut needs a key or a single modifier")
	}

	token, ok := PrimaryKey(primary)
	if !ok {
		return "", fmt.Errorf("unsupported key %q", primary)
	}
	return strings.Join(append(mods, token), "+"), nil
}

// Tokenize splits an accelerator on "+" and drops empty parts.
func Tokenize(shortcut string) []string {
	var tokens []string
	for _, part := range strings.Split(shortcut, "+") {
		if p := strings.TrimSpace(part); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// IsStandaloneModifier reports whether shortcut is a single modifier such
// as "Shift" or "Fn".
func IsStandaloneModifier(shortcut string) bool {
	tokens := Tokenize(shortcut)
	return len(tokens) == 1 && standaloneModifiers[tokens[0]]
}

// FormatToken returns the display label for one accelerator token.
func FormatToken(token string) string {
	if label, ok := displayMap[token]; ok {
		return label
	}
	if len(token) == 1 {
		return strings.ToUpper(token)
	}
	return token
}

// Display returns the display labels for every token of shortcut.
func Display(shortcut string) []string {
	tokens := Tokenize(shortcut)
	labels := make([]string, 0, len(tokens))
	for _, t := range tokens {
		labels = append(labels, FormatToken(t))
	}
	return labels
}

// Default returns the shortcut used before the user picks one.
func Default() string {
	return defaultFor(runtime.GOOS)
}

func defaultFor(goos string) string {
	if goos == "darwin" {
		return "Command+Shift+Space"
	}
	return "Control+Shift+Space"
}
