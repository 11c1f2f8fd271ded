// Package source inspects playback sources before they are handed to a
// backend: it classifies paths versus URLs, verifies local files exist and
// sniffs their content type.
package source

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// Kind classifies a playback source.
type Kind int

const (
	// KindFile is a local file path.
	KindFile Kind = iota
	// KindURL is a fully qualified http, https or file URL.
	KindURL
)

func (k Kind) String() string {
	if k == KindURL {
		return "url"
	}
	return "file"
}

// Resolved describes an inspected source.
type Resolved struct {
	Kind     Kind
	Location string // absolute path for files, the source verbatim for URLs
	MIME     string // detected content type, empty for URLs
}

// IsAudio reports whether the sniffed content type looks like audio. URLs and
// unsniffed sources report true; the backends decide what they can play.
func (r *Resolved) IsAudio() bool {
	if r.MIME == "" {
		return true
	}
	return strings.HasPrefix(r.MIME, "audio/") || strings.HasPrefix(r.MIME, "video/")
}

// Resolver inspects sources against an injectable filesystem.
type Resolver struct {
	fs afero.Fs
}

// NewResolver creates a resolver over the given filesystem. Pass
// afero.NewOsFs() for real use.
func NewResolver(fs afero.Fs) *Resolver {
	return &Resolver{fs: fs}
}

var urlSchemes = []string{"http://", "https://", "file://"}

// Resolve classifies and verifies a source. URLs pass through untouched;
// local paths must exist and are made absolute and sniffed.
func (r *Resolver) Resolve(raw string) (*Resolved, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty playback source")
	}

	for _, scheme := range urlSchemes {
		if strings.HasPrefix(raw, scheme) {
			slog.Debug("source is a url", "source", raw)
			return &Resolved{Kind: KindURL, Location: raw}, nil
		}
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", raw, err)
	}

	info, err := r.fs.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", abs, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory, not a sound file", abs)
	}

	mime, err := r.sniff(abs)
	if err != nil {
		// Sniffing is advisory; an unreadable header is the backend's
		// problem to report.
		slog.Debug("mime sniff failed", "path", abs, "error", err)
		mime = ""
	}

	slog.Debug("source resolved", "path", abs, "mime", mime, "size", info.Size())
	return &Resolved{Kind: KindFile, Location: abs, MIME: mime}, nil
}

func (r *Resolver) sniff(path string) (string, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	return mt.String(), nil
}
