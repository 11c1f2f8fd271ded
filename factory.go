package chime

import (
	"fmt"
	"log/slog"
	"runtime"
)

// New selects the playback backend for the running operating system. The
// result is one of three concrete backends: the MCI command backend on
// Windows, the NSSound backend on macOS, or the GStreamer pipeline backend on
// Linux. Any other operating system fails fast with ErrUnsupportedPlatform.
func New() (Backend, error) {
	return newBackend(runtime.GOOS)
}

// newBackend maps an operating system identifier to a backend. Split out from
// New so selection is testable for foreign identifiers.
func newBackend(goos string) (Backend, error) {
	slog.Debug("selecting playback backend", "goos", goos)

	switch goos {
	case "windows":
		return newMCIBackend()
	case "darwin":
		return newNSSoundBackend()
	case "linux":
		return newPipelineBackend()
	default:
		slog.Error("no playback backend for platform", "goos", goos)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}
