package display

import (
	"context"
	"errors"
	"image"
	"log"

	"github.com/user-none/empalm/core"
	"github.com/user-none/empalm/event"
)

// ErrDisposed is returned when attaching a compositor that was disposed.
var ErrDisposed = errors.New("display: compositor disposed")

// ChromeFunc loads the silkscreen image for the static chrome. It runs on
// its own goroutine; the result is applied on the UI thread.
type ChromeFunc func(ctx context.Context) (image.Image, error)

// State is the lifecycle state of a Compositor.
type State int

const (
	StateUninitialized State = iota
	StateChromeDrawn
	StateLive
	StateDetached
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateChromeDrawn:
		return "chrome-drawn"
	case StateLive:
		return "live"
	case StateDetached:
		return "detached"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

type chromeResult struct {
	img image.Image
	err error
}

// Compositor owns a display surface and keeps its two layers consistent:
// the live LCD frame in the top rows and the static chrome below it.
// All methods must be called from the UI thread.
type Compositor struct {
	surface Surface
	frames  core.FrameSource
	chrome  ChromeFunc
	scale   ScaleFactor

	state       State
	attached    bool
	cleared     bool
	chromeDrawn bool
	chromeErr   error

	chromeCh chan chromeResult // non-nil while the chrome load is pending
	cancel   context.CancelFunc

	handle event.Handle
}

// NewCompositor creates a compositor drawing to surface at the given scale.
// chrome may be nil, in which case the silkscreen area shows only its
// backing fill.
func NewCompositor(surface Surface, frames core.FrameSource, chrome ChromeFunc, scale ScaleFactor) *Compositor {
	if surface == nil {
		panic("display: nil surface")
	}
	if frames == nil {
		panic("display: nil frame source")
	}
	return &Compositor{
		surface: surface,
		frames:  frames,
		chrome:  chrome,
		scale:   scale,
	}
}

// State returns the current lifecycle state.
func (c *Compositor) State() State {
	return c.state
}

// Scale returns the compositor's fixed scale factor.
func (c *Compositor) Scale() ScaleFactor {
	return c.scale
}

// ChromeErr returns the silkscreen load failure, if any.
func (c *Compositor) ChromeErr() error {
	return c.chromeErr
}

// Attach subscribes to frame-ready notifications. The first attach clears
// the surface and starts loading the static chrome. Attaching an attached
// compositor does nothing.
func (c *Compositor) Attach() error {
	if c.state == StateDisposed {
		return ErrDisposed
	}
	if c.attached {
		return nil
	}

	c.attached = true
	c.handle = c.frames.AddHandler(c.onFrame)

	if !c.cleared {
		clearLCD(c.surface, c.scale)
		c.cleared = true
	}

	if c.chromeDrawn {
		c.state = StateLive
		return nil
	}
	if c.chromeCh == nil {
		c.startChrome()
	}
	return nil
}

// Detach unsubscribes from frame-ready notifications. No frame is drawn
// after Detach returns.
func (c *Compositor) Detach() {
	if !c.attached {
		return
	}
	c.frames.RemoveHandler(c.handle)
	c.attached = false
	if c.state == StateLive {
		c.state = StateDetached
	}
}

// Dispose detaches and abandons any pending chrome load. A disposed
// compositor cannot be attached again.
func (c *Compositor) Dispose() {
	if c.state == StateDisposed {
		return
	}
	c.Detach()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.chromeCh = nil
	c.state = StateDisposed
}

// Update applies a finished chrome load without blocking. It reports
// whether the chrome was drawn by this call.
func (c *Compositor) Update() bool {
	if c.chromeCh == nil {
		return false
	}
	select {
	case res := <-c.chromeCh:
		c.applyChrome(res)
		return true
	default:
		return false
	}
}

// Settle blocks until a pending chrome load finishes and applies it.
func (c *Compositor) Settle(ctx context.Context) error {
	if c.chromeCh == nil {
		return nil
	}
	select {
	case res := <-c.chromeCh:
		c.applyChrome(res)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Compositor) startChrome() {
	ch := make(chan chromeResult, 1)
	c.chromeCh = ch

	if c.chrome == nil {
		ch <- chromeResult{}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	load := c.chrome
	go func() {
		img, err := load(ctx)
		ch <- chromeResult{img: img, err: err}
	}()
}

func (c *Compositor) applyChrome(res chromeResult) {
	c.chromeCh = nil
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.state == StateDisposed {
		return
	}

	if res.err != nil {
		log.Printf("Warning: silkscreen unavailable: %v", res.err)
		c.chromeErr = res.err
		res.img = nil
	}

	drawSilkscreen(c.surface, c.scale, res.img)
	drawButtonLegends(c.surface, c.scale)
	c.chromeDrawn = true

	c.state = StateChromeDrawn
	if c.attached {
		c.state = StateLive
	}
}

func (c *Compositor) onFrame(frame image.Image) {
	if !c.attached || frame == nil {
		return
	}
	c.surface.Draw(frame, c.scale.LCDRect(), SamplingNearest)
}
