// Package input turns mouse and touch events on the display surface into
// the single pen stream the emulation core expects.
package input

import (
	"errors"
	"fmt"

	"github.com/user-none/empalm/core"
	"github.com/user-none/empalm/display"
)

// ErrUnsupportedEvent is returned for events that are neither mouse nor
// touch events.
var ErrUnsupportedEvent = errors.New("input: unsupported event type")

// PrimaryButton is the mouse button mask bit that drives the pen.
const PrimaryButton = 0x01

// MouseKind distinguishes mouse events.
type MouseKind int

const (
	MouseDown MouseKind = iota
	MouseMove
	MouseUp
)

// TouchKind distinguishes touch events.
type TouchKind int

const (
	TouchStart TouchKind = iota
	TouchMove
	TouchEnd
	TouchCancel
)

// Event is either a MouseEvent or a TouchEvent.
type Event any

// MouseEvent is a mouse event in window coordinates. Buttons is the mask of
// buttons held after the event.
type MouseEvent struct {
	Kind    MouseKind
	Buttons uint8
	Client  display.Point
}

// TouchEvent is a touch event. Touches lists the contacts still active
// after the event, oldest first.
type TouchEvent struct {
	Kind    TouchKind
	Touches []display.Point
}

// Disposition tells the caller what to do with the platform event.
type Disposition struct {
	// PreventDefault suppresses the platform's own gesture handling.
	PreventDefault bool
}

// Normalizer forwards pen input to the core. It keeps no state between
// events; whether a move arrives while the pen is up is the core's concern.
type Normalizer struct {
	Sink core.PointerSink

	// Viewport returns the live on-screen rectangle of the display surface.
	// It is called once per event.
	Viewport func() display.ViewportRect
}

// NewNormalizer creates a normalizer forwarding to sink.
func NewNormalizer(sink core.PointerSink, viewport func() display.ViewportRect) *Normalizer {
	return &Normalizer{Sink: sink, Viewport: viewport}
}

// Handle translates one event. Points outside the active region are
// dropped while the pen is down; release always reaches the core.
func (n *Normalizer) Handle(ev Event) (Disposition, error) {
	switch e := ev.(type) {
	case MouseEvent:
		n.handleMouse(e)
		return Disposition{}, nil
	case *MouseEvent:
		n.handleMouse(*e)
		return Disposition{}, nil
	case TouchEvent:
		n.handleTouch(e)
		return Disposition{PreventDefault: true}, nil
	case *TouchEvent:
		n.handleTouch(*e)
		return Disposition{PreventDefault: true}, nil
	}
	return Disposition{}, fmt.Errorf("%w: %T", ErrUnsupportedEvent, ev)
}

func (n *Normalizer) handleMouse(e MouseEvent) {
	if e.Kind == MouseUp || e.Buttons&PrimaryButton == 0 {
		n.Sink.HandlePointerUp()
		return
	}
	n.move(e.Client)
}

func (n *Normalizer) handleTouch(e TouchEvent) {
	if len(e.Touches) == 0 {
		n.Sink.HandlePointerUp()
		return
	}
	n.move(e.Touches[0])
}

func (n *Normalizer) move(p display.Point) {
	if c, ok := display.MapToDeviceCoordinate(n.Viewport(), p); ok {
		n.Sink.HandlePointerMove(c.X, c.Y)
	}
}
