//go:build !windows

package chime

import "fmt"

func newMCIBackend() (Backend, error) {
	return nil, fmt.Errorf("%w: the multimedia command interface requires windows", ErrBackendUnavailable)
}
