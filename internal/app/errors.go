package app

import "errors"

// Both errors are fatal: the entry point aborts the process when Run
// returns either of them.
var (
	// ErrWindowConstruction means the window descriptor could not be realized.
	ErrWindowConstruction = errors.New("window construction failed")
	// ErrRunLoopStart means the host framework failed to start its run loop.
	ErrRunLoopStart = errors.New("run loop failed to start")
)
