package chime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Sound is one native sound object. Methods mirror the native API and report
// nothing; construction is where failures surface.
type Sound interface {
	Play()
	Stop()
	Pause()
	Resume()
	Duration() time.Duration
}

// SoundLoader constructs a native sound object from a fully qualified URL.
type SoundLoader interface {
	Load(url string) (Sound, error)
}

// nsSoundBackend wraps one native sound object per playback. Blocking is a
// fixed sleep for the object's reported duration.
type nsSoundBackend struct {
	loader  SoundLoader
	sound   Sound
	playing bool
	paused  bool

	getwd func() (string, error)
	sleep func(ctx context.Context, d time.Duration) error
}

// soundURL normalizes a source into a fully qualified URL: bare relative
// paths get the working directory prepended, and anything without a scheme
// gets the file scheme prefix.
func soundURL(source, cwd string) string {
	if strings.Contains(source, "://") {
		return source
	}
	if !strings.HasPrefix(source, "/") {
		source = cwd + "/" + source
	}
	return "file://" + source
}

func (b *nsSoundBackend) Play(ctx context.Context, source string, block bool) error {
	cwd, err := b.getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	url := soundURL(source, cwd)

	sound, err := b.loader.Load(url)
	if err != nil {
		return fmt.Errorf("load sound %q: %w", url, err)
	}
	b.sound = sound
	b.playing = true
	b.paused = false

	slog.Debug("sound loaded", "url", url, "duration", sound.Duration())
	sound.Play()

	if block {
		return b.sleep(ctx, sound.Duration())
	}
	return nil
}

func (b *nsSoundBackend) Stop() error {
	if b.sound == nil || !b.playing {
		return nil
	}
	b.playing = false
	b.sound.Stop()
	return nil
}

func (b *nsSoundBackend) Pause() error {
	if b.sound == nil {
		return nil
	}
	b.paused = true
	b.sound.Pause()
	return nil
}

func (b *nsSoundBackend) Resume(ctx context.Context, block bool) error {
	if b.sound == nil || !b.paused {
		return nil
	}
	b.paused = false
	b.sound.Resume()
	if block {
		// The native object reports full duration only; remaining time
		// is not tracked independently.
		return b.sleep(ctx, b.sound.Duration())
	}
	return nil
}

// sleepFor suspends the caller for d or until ctx is done.
func sleepFor(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
