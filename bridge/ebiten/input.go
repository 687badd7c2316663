package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/user-none/empalm/display"
	"github.com/user-none/empalm/input"
)

// Poller converts Ebiten's polled mouse and touch state into discrete
// input events. Positions are in screen pixels, the space Layout defines.
type Poller struct {
	lastMouse   display.Point
	mouseDown   bool
	touches     []ebiten.TouchID // active contacts, oldest first
	touchIDs    []ebiten.TouchID // scratch
	lastTouches []display.Point

	events []input.Event
}

// Poll returns the events since the previous call. The returned slice is
// reused by the next call.
func (p *Poller) Poll() []input.Event {
	p.events = p.events[:0]
	p.pollMouse()
	p.pollTouches()
	return p.events
}

func (p *Poller) pollMouse() {
	x, y := ebiten.CursorPosition()
	pt := display.Point{X: float64(x), Y: float64(y)}
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	var buttons uint8
	if down {
		buttons = input.PrimaryButton
	}

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		p.events = append(p.events, input.MouseEvent{Kind: input.MouseDown, Buttons: buttons, Client: pt})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		p.events = append(p.events, input.MouseEvent{Kind: input.MouseUp, Buttons: buttons, Client: pt})
	case pt != p.lastMouse || down != p.mouseDown:
		p.events = append(p.events, input.MouseEvent{Kind: input.MouseMove, Buttons: buttons, Client: pt})
	}

	p.lastMouse = pt
	p.mouseDown = down
}

func (p *Poller) pollTouches() {
	p.touchIDs = inpututil.AppendJustReleasedTouchIDs(p.touchIDs[:0])
	released := len(p.touchIDs) > 0
	for _, id := range p.touchIDs {
		p.touches = removeTouch(p.touches, id)
	}

	p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
	pressed := len(p.touchIDs) > 0
	p.touches = append(p.touches, p.touchIDs...)

	points := make([]display.Point, 0, len(p.touches))
	for _, id := range p.touches {
		x, y := ebiten.TouchPosition(id)
		points = append(points, display.Point{X: float64(x), Y: float64(y)})
	}

	switch {
	case pressed:
		p.events = append(p.events, input.TouchEvent{Kind: input.TouchStart, Touches: points})
	case released:
		p.events = append(p.events, input.TouchEvent{Kind: input.TouchEnd, Touches: points})
	case len(points) > 0 && !samePoints(points, p.lastTouches):
		p.events = append(p.events, input.TouchEvent{Kind: input.TouchMove, Touches: points})
	}
	p.lastTouches = points
}

func removeTouch(ids []ebiten.TouchID, id ebiten.TouchID) []ebiten.TouchID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func samePoints(a, b []display.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
