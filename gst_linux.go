//go:build linux

package chime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gst/go-gst/gst"
)

// gstAPI binds the pipeline backend to GStreamer.
type gstAPI struct{}

func (gstAPI) Init() error {
	gst.Init(nil)
	return nil
}

func (gstAPI) NewPlaybin() (Pipeline, error) {
	element, err := gst.NewElementWithName("playbin", "playbin")
	if err != nil {
		return nil, err
	}
	return &gstPipeline{element: element}, nil
}

type gstPipeline struct {
	element *gst.Element
}

func (p *gstPipeline) SetURI(uri string) error {
	return p.element.SetProperty("uri", uri)
}

func (p *gstPipeline) SetState(s PipelineState) StateChange {
	target := gst.StateNull
	if s == StatePlaying {
		target = gst.StatePlaying
	}
	// go-gst collapses the native state-change return to an error, so a
	// clean playbin transition reports as async here.
	if err := p.element.SetState(target); err != nil {
		return StateChangeFailure
	}
	return StateChangeAsync
}

func (p *gstPipeline) WaitEOS(ctx context.Context) error {
	bus := p.element.GetBus()
	if bus == nil {
		return errors.New("playbin has no message bus")
	}

	timeout := gst.ClockTimeNone
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return context.DeadlineExceeded
		}
		timeout = gst.ClockTime(remaining.Nanoseconds())
	}

	msg := bus.TimedPopFiltered(timeout, gst.MessageEOS|gst.MessageError)
	if msg == nil {
		return context.DeadlineExceeded
	}
	if msg.Type() == gst.MessageError {
		return fmt.Errorf("pipeline error: %w", msg.ParseError())
	}
	return nil
}

func newPipelineBackend() (Backend, error) {
	return &pipelineBackend{api: gstAPI{}}, nil
}
