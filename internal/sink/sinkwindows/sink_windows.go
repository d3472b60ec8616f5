//go:build windows
// +build windows

package sinkwindows

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/autolyre/midi/internal/keymap"
	"github.com/autolyre/midi/sdk/contracts"
)

const (
	inputKeyboard  = 1
	keyeventfKeyUp = 0x0002
)

// keyboardInput mirrors the KEYBDINPUT structure.
type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// input mirrors the INPUT structure for keyboard events. The trailing pad
// brings the struct up to the size of the union variant on 64-bit Windows.
type input struct {
	inputType uint32
	_         uint32
	ki        keyboardInput
	_         uint64
}

// Load the user32.dll library and required functions
var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

// Sink injects key presses through SendInput.
type Sink struct {
	logger contracts.Logger
}

// New creates the keyboard injection sink for Windows.
func New(logger contracts.Logger) (contracts.Sink, error) {
	logger.Info("keyboard sink created for Windows")
	return &Sink{logger: logger}, nil
}

// Send presses and releases the key mapped to pitch. Pitches outside the
// playable range have no key and are dropped silently.
func (s *Sink) Send(pitch int) error {
	vk, ok := keymap.VirtualKey(pitch)
	if !ok {
		s.logger.Debug("pitch has no key binding", s.logger.Field().Int("pitch", pitch))
		return nil
	}

	inputs := [2]input{
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vk}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vk, dwFlags: keyeventfKeyUp}},
	}
	sent, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(sent) != len(inputs) {
		return fmt.Errorf("SendInput delivered %d of %d events: %v", sent, len(inputs), err)
	}
	return nil
}
