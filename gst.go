package chime

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
)

// PipelineState is the subset of pipeline states the backend drives.
type PipelineState int

const (
	StateNull PipelineState = iota
	StatePlaying
)

// StateChange is the result of a pipeline state-transition request.
type StateChange int

const (
	StateChangeFailure StateChange = iota
	StateChangeSuccess
	StateChangeAsync
	StateChangeNoPreroll
)

func (s StateChange) String() string {
	switch s {
	case StateChangeFailure:
		return "failure"
	case StateChangeSuccess:
		return "success"
	case StateChangeAsync:
		return "async"
	case StateChangeNoPreroll:
		return "no-preroll"
	default:
		return fmt.Sprintf("state-change(%d)", int(s))
	}
}

// Pipeline is one play-only media pipeline.
type Pipeline interface {
	SetURI(uri string) error
	SetState(s PipelineState) StateChange

	// WaitEOS blocks until the pipeline posts end-of-stream. A ctx
	// deadline bounds the wait; otherwise it is indefinite.
	WaitEOS(ctx context.Context) error
}

// PipelineAPI is the streaming-media subsystem the backend builds on.
type PipelineAPI interface {
	Init() error
	NewPlaybin() (Pipeline, error)
}

// pipelineBackend plays through a minimal playbin pipeline. Playback is
// strictly blocking: the backend has no handle on a running pipeline once
// Play returns, so non-blocking initiation, stop, pause and resume are
// unsupported capabilities rather than no-ops.
type pipelineBackend struct {
	api PipelineAPI
}

// fileURI converts a local path into an escaped file-scheme URI.
func fileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: abs}
	return u.String(), nil
}

func (b *pipelineBackend) Play(ctx context.Context, source string, block bool) error {
	if !block {
		return fmt.Errorf("%w: non-blocking playback", ErrUnsupported)
	}

	if err := b.api.Init(); err != nil {
		return &PlaybackError{Message: "pipeline init: " + err.Error()}
	}
	pipeline, err := b.api.NewPlaybin()
	if err != nil {
		return &PlaybackError{Message: "create playbin: " + err.Error()}
	}

	uri := source
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		uri, err = fileURI(source)
		if err != nil {
			return &PlaybackError{Message: "resolve source: " + err.Error()}
		}
	}
	if err := pipeline.SetURI(uri); err != nil {
		return &PlaybackError{Message: "set uri: " + err.Error()}
	}
	slog.Debug("pipeline playing", "uri", uri)

	if ret := pipeline.SetState(StatePlaying); ret != StateChangeAsync {
		return &PlaybackError{Message: fmt.Sprintf("playbin state change returned %v", ret)}
	}

	err = pipeline.WaitEOS(ctx)
	pipeline.SetState(StateNull)
	return err
}

func (b *pipelineBackend) Stop() error {
	return fmt.Errorf("%w: stop", ErrUnsupported)
}

func (b *pipelineBackend) Pause() error {
	return fmt.Errorf("%w: pause", ErrUnsupported)
}

func (b *pipelineBackend) Resume(ctx context.Context, block bool) error {
	return fmt.Errorf("%w: resume", ErrUnsupported)
}
