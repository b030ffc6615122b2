//go:build !darwin

package nativewin

// MainWindow is unavailable off macOS.
func MainWindow() (Handle, error) {
	return Handle{}, ErrUnsupported
}

// SetBackground is unavailable off macOS.
func SetBackground(h Handle, c Color) error {
	if h.IsNil() {
		return ErrNilHandle
	}
	return ErrUnsupported
}
