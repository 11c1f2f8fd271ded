package chime

import "context"

// Backend is the playback capability contract implemented by every platform
// backend. A backend instance drives at most one native playback session at a
// time; starting a new sound supersedes the previous one.
//
// Backend instances are not synchronized internally. Calls on one instance
// from multiple goroutines must be serialized by the caller.
type Backend interface {
	// Play begins playback of source, a file path or an http://, https://
	// or file:// URL. When block is true the call does not return until
	// playback reaches a terminal state or ctx is done. When block is
	// false it returns once playback has been initiated.
	Play(ctx context.Context, source string, block bool) error

	// Stop requests playback termination. It is a no-op when nothing is
	// playing. Backends without stop support return ErrUnsupported.
	Stop() error

	// Pause requests playback be paused. It is a no-op when nothing is
	// playing. Backends without pause support return ErrUnsupported.
	Pause() error

	// Resume resumes a paused playback and is a no-op otherwise. Blocking
	// semantics mirror Play.
	Resume(ctx context.Context, block bool) error
}
