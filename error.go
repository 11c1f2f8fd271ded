package chime

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all backends.
var (
	// ErrUnsupported reports an operation the selected backend cannot
	// perform at all (as opposed to a no-op on idle state).
	ErrUnsupported = errors.New("operation not supported by this backend")

	// ErrUnsupportedPlatform reports that no backend exists for the
	// detected operating system.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrBackendUnavailable reports a backend that exists but was not
	// compiled for the running operating system.
	ErrBackendUnavailable = errors.New("playback backend not available")
)

// PlaybackError is the error surfaced for native subsystem failures. When the
// failure came from a submitted command it carries the native error code and
// the literal command text alongside the native description.
type PlaybackError struct {
	Code    uint32 // native error code, 0 when not applicable
	Command string // literal command text, empty when not applicable
	Message string // native error description
}

func (e *PlaybackError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("playback error %d for command %q: %s", e.Code, e.Command, e.Message)
	}
	return "playback error: " + e.Message
}
