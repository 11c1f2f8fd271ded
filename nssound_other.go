//go:build !darwin

package chime

import "fmt"

func newNSSoundBackend() (Backend, error) {
	return nil, fmt.Errorf("%w: the native sound object backend requires darwin", ErrBackendUnavailable)
}
