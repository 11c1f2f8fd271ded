//go:build windows

package chime

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	winmm                 = windows.NewLazySystemDLL("winmm.dll")
	procMciSendString     = winmm.NewProc("mciSendStringW")
	procMciGetErrorString = winmm.NewProc("mciGetErrorStringW")
)

// winmmRunner submits MCI command strings through winmm.dll.
type winmmRunner struct{}

func (winmmRunner) Run(command string) (string, error) {
	cmd, err := windows.UTF16PtrFromString(command)
	if err != nil {
		return "", err
	}

	buf := make([]uint16, 256)
	code, _, _ := procMciSendString.Call(
		uintptr(unsafe.Pointer(cmd)),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)-1),
		0,
	)
	if code != 0 {
		desc := make([]uint16, 256)
		procMciGetErrorString.Call(
			code,
			uintptr(unsafe.Pointer(&desc[0])),
			uintptr(len(desc)-1),
		)
		return "", &CommandError{Code: uint32(code), Description: windows.UTF16ToString(desc)}
	}
	return windows.UTF16ToString(buf), nil
}

func newMCIBackend() (Backend, error) {
	return &mciBackend{
		runner:   winmmRunner{},
		alias:    nextAlias(),
		interval: defaultPollInterval,
	}, nil
}
