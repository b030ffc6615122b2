//go:build darwin || windows

package hotkeybackend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zunkelty/type-for-me/internal/keys"
	"github.com/zunkelty/type-for-me/internal/shortcut"
)

func TestEveryBindableKeyHasACode(t *testing.T) {
	for _, tok := range keys.Bindable() {
		_, ok := keyCodes[shortcut.Key(tok)]
		assert.True(t, ok, tok)
	}
	assert.Len(t, keyCodes, len(keys.Bindable()))
}

func TestEveryModifierHasACode(t *testing.T) {
	for _, m := range []shortcut.Modifier{shortcut.ModControl, shortcut.ModAlt, shortcut.ModShift, shortcut.ModCommand} {
		_, ok := platformModifiers[m]
		assert.True(t, ok, string(m))
	}
}

func TestUnknownKeyFailsOnRegister(t *testing.T) {
	h := New([]shortcut.Modifier{shortcut.ModControl}, "Backspace")
	assert.ErrorIs(t, h.Register(), shortcut.ErrInvalidShortcut)
	assert.NoError(t, h.Unregister())
	assert.Nil(t, h.Keydown())
}
