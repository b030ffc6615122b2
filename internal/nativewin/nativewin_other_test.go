//go:build !darwin

package nativewin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMainWindowUnsupported(t *testing.T) {
	h, err := MainWindow()
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.True(t, h.IsNil())
}
