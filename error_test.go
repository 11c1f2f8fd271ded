package chime

import (
	"strings"
	"testing"
)

func TestPlaybackErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *PlaybackError
		want []string
	}{
		{
			name: "with command carries code and command text",
			err:  &PlaybackError{Code: 289, Command: `open "song.mp3" alias chime_1`, Message: "duplicate alias"},
			want: []string{"289", `open \"song.mp3\" alias chime_1`, "duplicate alias"},
		},
		{
			name: "without command is the bare message",
			err:  &PlaybackError{Message: "playbin state change returned success"},
			want: []string{"playbin state change returned success"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.want {
				if !strings.Contains(msg, want) {
					t.Errorf("error %q should contain %q", msg, want)
				}
			}
		})
	}
}

func TestCommandErrorMessage(t *testing.T) {
	err := &CommandError{Code: 275, Description: "cannot find the specified device"}
	if got := err.Error(); got != "mci error 275: cannot find the specified device" {
		t.Errorf("unexpected command error text: %q", got)
	}
}
