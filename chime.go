// Package chime plays audio files and URLs through the operating system's
// native sound facility: the MCI command interface on Windows, AppKit's
// NSSound on macOS and a GStreamer playbin pipeline on Linux.
//
// The package-level functions drive one process-wide backend selected once
// for the running operating system. For independent playback sessions create
// backends explicitly with New.
package chime

import (
	"context"
	"sync"
)

// defaultBackend resolves the process-wide backend exactly once.
var defaultBackend = sync.OnceValues(New)

// Play plays source and blocks until playback finishes, is stopped, or ctx
// is done.
func Play(ctx context.Context, source string) error {
	backend, err := defaultBackend()
	if err != nil {
		return err
	}
	return backend.Play(ctx, source, true)
}

// Start begins playing source without blocking. The pipeline backend does
// not support non-blocking initiation and returns ErrUnsupported.
func Start(source string) error {
	backend, err := defaultBackend()
	if err != nil {
		return err
	}
	return backend.Play(context.Background(), source, false)
}

// Stop requests termination of the current playback on the process-wide
// backend.
func Stop() error {
	backend, err := defaultBackend()
	if err != nil {
		return err
	}
	return backend.Stop()
}

// Pause requests the current playback be paused.
func Pause() error {
	backend, err := defaultBackend()
	if err != nil {
		return err
	}
	return backend.Pause()
}

// Resume resumes a paused playback, blocking until it ends when block is
// true.
func Resume(ctx context.Context, block bool) error {
	backend, err := defaultBackend()
	if err != nil {
		return err
	}
	return backend.Resume(ctx, block)
}
