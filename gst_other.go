//go:build !linux

package chime

import "fmt"

func newPipelineBackend() (Backend, error) {
	return nil, fmt.Errorf("%w: the media pipeline backend requires linux", ErrBackendUnavailable)
}
