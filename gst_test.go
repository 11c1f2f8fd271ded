package chime

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

type fakePipeline struct {
	uri      string
	states   []PipelineState
	playRet  StateChange
	eosCalls int
	eosErr   error
}

func (p *fakePipeline) SetURI(uri string) error {
	p.uri = uri
	return nil
}

func (p *fakePipeline) SetState(s PipelineState) StateChange {
	p.states = append(p.states, s)
	if s == StatePlaying {
		return p.playRet
	}
	return StateChangeSuccess
}

func (p *fakePipeline) WaitEOS(ctx context.Context) error {
	p.eosCalls++
	return p.eosErr
}

type fakePipelineAPI struct {
	pipeline     *fakePipeline
	initCalls    int
	playbinCalls int
}

func (a *fakePipelineAPI) Init() error {
	a.initCalls++
	return nil
}

func (a *fakePipelineAPI) NewPlaybin() (Pipeline, error) {
	a.playbinCalls++
	return a.pipeline, nil
}

func newTestPipeline(playRet StateChange) (*pipelineBackend, *fakePipelineAPI) {
	api := &fakePipelineAPI{pipeline: &fakePipeline{playRet: playRet}}
	return &pipelineBackend{api: api}, api
}

func TestPipelineNonBlockingPlayUnsupported(t *testing.T) {
	backend, api := newTestPipeline(StateChangeAsync)

	err := backend.Play(context.Background(), "song.mp3", false)
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for block=false, got: %v", err)
	}
	if api.initCalls != 0 || api.playbinCalls != 0 {
		t.Errorf("non-blocking rejection must not touch the pipeline API, got init=%d playbin=%d",
			api.initCalls, api.playbinCalls)
	}
}

func TestPipelineStateChangeNotAsync(t *testing.T) {
	backend, api := newTestPipeline(StateChangeSuccess)

	err := backend.Play(context.Background(), "song.mp3", true)
	var perr *PlaybackError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PlaybackError, got %T: %v", err, err)
	}
	if !strings.Contains(perr.Message, "success") {
		t.Errorf("expected the unexpected result value in the message, got %q", perr.Message)
	}
	if api.pipeline.eosCalls != 0 {
		t.Errorf("bus must not be polled after a failed state change, got %d polls", api.pipeline.eosCalls)
	}
}

func TestPipelineBlockingPlay(t *testing.T) {
	backend, api := newTestPipeline(StateChangeAsync)

	if err := backend.Play(context.Background(), "my song.mp3", true); err != nil {
		t.Fatalf("blocking play failed: %v", err)
	}

	abs, err := filepath.Abs("my song.mp3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(api.pipeline.uri, "file://") {
		t.Errorf("expected a file uri, got %q", api.pipeline.uri)
	}
	if !strings.Contains(api.pipeline.uri, "my%20song.mp3") {
		t.Errorf("expected an escaped path in uri %q (abs %q)", api.pipeline.uri, abs)
	}
	if api.pipeline.eosCalls != 1 {
		t.Errorf("expected one EOS wait, got %d", api.pipeline.eosCalls)
	}

	wantStates := []PipelineState{StatePlaying, StateNull}
	if len(api.pipeline.states) != len(wantStates) {
		t.Fatalf("expected states %v, got %v", wantStates, api.pipeline.states)
	}
	for i, want := range wantStates {
		if api.pipeline.states[i] != want {
			t.Errorf("state %d: want %v, got %v", i, want, api.pipeline.states[i])
		}
	}
}

func TestPipelineNetworkURIPassthrough(t *testing.T) {
	for _, source := range []string{"http://example.com/song.mp3", "https://example.com/song.mp3"} {
		backend, api := newTestPipeline(StateChangeAsync)
		if err := backend.Play(context.Background(), source, true); err != nil {
			t.Fatalf("blocking play failed: %v", err)
		}
		if api.pipeline.uri != source {
			t.Errorf("network source must pass through verbatim, got %q", api.pipeline.uri)
		}
	}
}

func TestPipelineTransportControlsUnsupported(t *testing.T) {
	backend, _ := newTestPipeline(StateChangeAsync)

	if err := backend.Stop(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported from Stop, got: %v", err)
	}
	if err := backend.Pause(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported from Pause, got: %v", err)
	}
	if err := backend.Resume(context.Background(), true); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported from Resume, got: %v", err)
	}
}

func TestFileURIEscaping(t *testing.T) {
	uri, err := fileURI("/tmp/a b.mp3")
	if err != nil {
		t.Fatal(err)
	}
	if uri != "file:///tmp/a%20b.mp3" {
		t.Errorf("expected escaped file uri, got %q", uri)
	}
}

func TestStateChangeString(t *testing.T) {
	tests := []struct {
		value StateChange
		want  string
	}{
		{StateChangeFailure, "failure"},
		{StateChangeSuccess, "success"},
		{StateChangeAsync, "async"},
		{StateChangeNoPreroll, "no-preroll"},
		{StateChange(9), "state-change(9)"},
	}
	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("StateChange(%d).String() = %q, want %q", int(tt.value), got, tt.want)
		}
	}
}
