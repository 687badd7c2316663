// Package core describes the narrow surface of the emulation core that the
// display and input layers talk to.
package core

import (
	"image"

	"github.com/user-none/empalm/event"
)

// Button identifies a hardware button on the device.
type Button int

const (
	ButtonPower Button = iota
	ButtonDateBook
	ButtonAddress
	ButtonToDo
	ButtonNotes
	ButtonUp
	ButtonDown
	ButtonCradle
)

var buttonNames = [...]string{
	ButtonPower:    "power",
	ButtonDateBook: "datebook",
	ButtonAddress:  "address",
	ButtonToDo:     "todo",
	ButtonNotes:    "notes",
	ButtonUp:       "up",
	ButtonDown:     "down",
	ButtonCradle:   "cradle",
}

func (b Button) String() string {
	if b >= 0 && int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "unknown"
}

// Mask returns the button's bit in a button bitmask.
func (b Button) Mask() uint32 {
	return 1 << uint(b)
}

// PointerSink receives pen input in device coordinates.
type PointerSink interface {
	HandlePointerMove(x, y int)
	HandlePointerUp()
}

// ButtonSink receives hardware button input.
type ButtonSink interface {
	HandleButtonDown(b Button)
	HandleButtonUp(b Button)
}

// FrameSource publishes frame-ready notifications. The frame passed to a
// handler is only valid for the duration of the call.
type FrameSource interface {
	AddHandler(fn func(frame image.Image)) event.Handle
	RemoveHandler(h event.Handle)
}

var _ FrameSource = (*event.Source[image.Image])(nil)
