//go:build darwin

package chime

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"
)

var (
	appKitOnce sync.Once
	appKitErr  error

	classNSString objc.Class
	classNSURL    objc.Class
	classNSSound  objc.Class

	selAlloc           = objc.RegisterName("alloc")
	selUTF8String      = objc.RegisterName("stringWithUTF8String:")
	selURLWithString   = objc.RegisterName("URLWithString:")
	selInitContentsURL = objc.RegisterName("initWithContentsOfURL:byReference:")
	selPlay            = objc.RegisterName("play")
	selStop            = objc.RegisterName("stop")
	selPause           = objc.RegisterName("pause")
	selResume          = objc.RegisterName("resume")
	selDuration        = objc.RegisterName("duration")
)

func loadAppKit() error {
	appKitOnce.Do(func() {
		_, appKitErr = purego.Dlopen(
			"/System/Library/Frameworks/AppKit.framework/AppKit",
			purego.RTLD_LAZY|purego.RTLD_GLOBAL,
		)
		if appKitErr != nil {
			return
		}
		classNSString = objc.GetClass("NSString")
		classNSURL = objc.GetClass("NSURL")
		classNSSound = objc.GetClass("NSSound")
	})
	return appKitErr
}

// nsSound wraps one AppKit NSSound instance.
type nsSound struct {
	id objc.ID
}

func (s nsSound) Play()   { s.id.Send(selPlay) }
func (s nsSound) Stop()   { s.id.Send(selStop) }
func (s nsSound) Pause()  { s.id.Send(selPause) }
func (s nsSound) Resume() { s.id.Send(selResume) }

func (s nsSound) Duration() time.Duration {
	secs := objc.Send[float64](s.id, selDuration)
	return time.Duration(secs * float64(time.Second))
}

// nsSoundLoader constructs NSSound objects from URLs.
type nsSoundLoader struct{}

func (nsSoundLoader) Load(soundURL string) (Sound, error) {
	if err := loadAppKit(); err != nil {
		return nil, err
	}

	str := objc.ID(classNSString).Send(selUTF8String, soundURL)
	url := objc.ID(classNSURL).Send(selURLWithString, str)
	if url == 0 {
		return nil, errors.New("invalid sound URL")
	}

	sound := objc.ID(classNSSound).Send(selAlloc).Send(selInitContentsURL, url, true)
	if sound == 0 {
		return nil, errors.New("unable to load sound")
	}
	return nsSound{id: sound}, nil
}

func newNSSoundBackend() (Backend, error) {
	return &nsSoundBackend{
		loader: nsSoundLoader{},
		getwd:  os.Getwd,
		sleep:  sleepFor,
	}, nil
}
