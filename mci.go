package chime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// mciErrDuplicateAlias is MCIERR_DUPLICATE_ALIAS. Opening a session under an
// alias that already exists is tolerated, everything else surfaces.
const mciErrDuplicateAlias = 289

// defaultPollInterval is the delay between status queries while a blocking
// call waits for playback to end.
const defaultPollInterval = 100 * time.Millisecond

// CommandRunner submits one textual command to the multimedia control
// interface and returns the response buffer. Native failures are returned as
// *CommandError.
type CommandRunner interface {
	Run(command string) (string, error)
}

// CommandError is a native error code plus its looked-up description, as
// reported by the command-submission primitive.
type CommandError struct {
	Code        uint32
	Description string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("mci error %d: %s", e.Code, e.Description)
}

var aliasSeq atomic.Uint64

func nextAlias() string {
	return fmt.Sprintf("chime_%d", aliasSeq.Add(1))
}

// mciBackend drives playback through textual MCI commands against a named
// session alias, polling session status to implement blocking.
type mciBackend struct {
	runner   CommandRunner
	alias    string
	interval time.Duration
	opened   bool
}

// SetAlias overrides the process-unique session alias. Only meaningful before
// the first Play on this instance.
func (b *mciBackend) SetAlias(alias string) {
	b.alias = alias
}

// run submits a command and translates native failures into *PlaybackError
// carrying the code, the literal command text and the native description.
func (b *mciBackend) run(command string) (string, error) {
	resp, err := b.runner.Run(command)
	if err == nil {
		return resp, nil
	}
	var cerr *CommandError
	if errors.As(err, &cerr) {
		return "", &PlaybackError{Code: cerr.Code, Command: command, Message: cerr.Description}
	}
	return "", &PlaybackError{Command: command, Message: err.Error()}
}

// closeSession tears down any session open under the alias. Best effort:
// closing a session that does not exist is not an error.
func (b *mciBackend) closeSession() {
	if _, err := b.run("close " + b.alias); err != nil {
		slog.Debug("ignoring close failure", "alias", b.alias, "error", err)
	}
}

// status queries the session mode: "playing", "paused" or "stopped".
func (b *mciBackend) status() (string, error) {
	resp, err := b.run(fmt.Sprintf("status %s mode", b.alias))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}

// duration queries the session length. Used for debug logging only; the
// blocking loop is driven by status, not length.
func (b *mciBackend) duration() (string, error) {
	return b.run(fmt.Sprintf("status %s length", b.alias))
}

func (b *mciBackend) Play(ctx context.Context, source string, block bool) error {
	b.closeSession()

	_, err := b.run(fmt.Sprintf(`open "%s" alias %s`, source, b.alias))
	if err != nil {
		var perr *PlaybackError
		if !errors.As(err, &perr) || perr.Code != mciErrDuplicateAlias {
			return err
		}
		slog.Debug("alias already open, reusing", "alias", b.alias)
	}
	b.opened = true

	if length, err := b.duration(); err == nil {
		slog.Debug("session opened", "alias", b.alias, "source", source, "length", strings.TrimSpace(length))
	} else {
		slog.Debug("length query failed", "alias", b.alias, "error", err)
	}

	if _, err := b.run("play " + b.alias); err != nil {
		return err
	}
	if block {
		return b.waitStopped(ctx)
	}
	return nil
}

// waitStopped polls session status until it reads "stopped" or ctx is done.
func (b *mciBackend) waitStopped(ctx context.Context) error {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			mode, err := b.status()
			if err != nil {
				return err
			}
			if mode == "stopped" {
				return nil
			}
		}
	}
}

func (b *mciBackend) Stop() error {
	if !b.opened {
		return nil
	}
	_, err := b.run("stop " + b.alias)
	return err
}

func (b *mciBackend) Pause() error {
	if !b.opened {
		return nil
	}
	_, err := b.run("pause " + b.alias)
	return err
}

func (b *mciBackend) Resume(ctx context.Context, block bool) error {
	if !b.opened {
		return nil
	}
	mode, err := b.status()
	if err != nil {
		return err
	}
	if mode != "paused" {
		return nil
	}
	if _, err := b.run("resume " + b.alias); err != nil {
		return err
	}
	if block {
		return b.waitStopped(ctx)
	}
	return nil
}
