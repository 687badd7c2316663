// Package ui runs the emulation core on its own goroutine and exposes it to
// the UI thread through the narrow core interfaces.
package ui

import (
	"image"
	"sync"
	"time"

	"github.com/user-none/empalm/core"
	"github.com/user-none/empalm/emu"
	"github.com/user-none/empalm/event"
)

// Core is the frame-stepped emulation core driven by a Session.
type Core interface {
	RunFrame()
	Framebuffer() []byte
	Stride() int
	SetPointer(x, y int, down bool)
	SetButtons(mask uint32)
}

// AudioCore is a Core that also produces audio each frame.
type AudioCore interface {
	Core
	AudioSamples() []int16
}

var _ AudioCore = (*emu.Loopback)(nil)

// Option configures a Session.
type Option func(*Session)

// WithAudio sends the core's audio to sink. It has no effect if the core
// produces none.
func WithAudio(sink AudioSink) Option {
	return func(s *Session) {
		s.audio = sink
	}
}

// Compile-time interface checks.
var _ core.PointerSink = (*Session)(nil)
var _ core.ButtonSink = (*Session)(nil)

// Session owns the emulation goroutine. Input methods may be called from
// any goroutine; Poll and the frame handlers run on the UI thread.
type Session struct {
	core  Core
	audio AudioSink

	emuControl        *EmuControl
	sharedInput       *SharedInput
	sharedFramebuffer *SharedFramebuffer
	emuDone           chan struct{}
	closeOnce         sync.Once

	newFrame event.Source[image.Image]
	frame    *image.RGBA
	lastGen  uint64
}

// NewSession starts running c at emu.FPS.
func NewSession(c Core, opts ...Option) *Session {
	s := &Session{
		core:              c,
		emuControl:        NewEmuControl(),
		sharedInput:       &SharedInput{},
		sharedFramebuffer: NewSharedFramebuffer(),
		emuDone:           make(chan struct{}),
		frame:             image.NewRGBA(image.Rect(0, 0, emu.ScreenWidth, emu.ScreenHeight)),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.emulationLoop()

	return s
}

// HandlePointerMove implements core.PointerSink.
func (s *Session) HandlePointerMove(x, y int) {
	s.sharedInput.SetPen(x, y)
}

// HandlePointerUp implements core.PointerSink.
func (s *Session) HandlePointerUp() {
	s.sharedInput.ReleasePen()
}

// HandleButtonDown implements core.ButtonSink.
func (s *Session) HandleButtonDown(b core.Button) {
	s.sharedInput.SetButton(b.Mask(), true)
}

// HandleButtonUp implements core.ButtonSink.
func (s *Session) HandleButtonUp(b core.Button) {
	s.sharedInput.SetButton(b.Mask(), false)
}

// NewFrame is the frame-ready notification source.
func (s *Session) NewFrame() *event.Source[image.Image] {
	return &s.newFrame
}

// Poll publishes the latest frame if the core produced one since the last
// call. It reports whether a frame was published.
func (s *Session) Poll() bool {
	if s.sharedFramebuffer.Generation() == s.lastGen {
		return false
	}

	pixels, stride, height, gen := s.sharedFramebuffer.Read()
	if height == 0 || stride != s.frame.Stride {
		return false
	}
	n := stride * height
	if n > len(s.frame.Pix) {
		n = len(s.frame.Pix)
	}
	copy(s.frame.Pix[:n], pixels[:n])
	s.lastGen = gen

	s.newFrame.Dispatch(s.frame)
	return true
}

// Pause stops the core between frames and blocks until it has stopped.
func (s *Session) Pause() {
	s.emuControl.RequestPause()
}

// Resume restarts a paused core.
func (s *Session) Resume() {
	s.emuControl.RequestResume()
}

// Paused reports whether the core is paused.
func (s *Session) Paused() bool {
	return s.emuControl.IsPaused()
}

// Close stops the emulation goroutine and waits for it to exit.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.emuControl.Stop()
		<-s.emuDone
	})
}

// emulationLoop runs on a dedicated goroutine at a fixed frame rate.
func (s *Session) emulationLoop() {
	defer close(s.emuDone)

	frameTime := time.Second / emu.FPS
	next := time.Now()

	audioCore, _ := s.core.(AudioCore)
	if s.audio == nil {
		audioCore = nil
	}

	for {
		if !s.emuControl.CheckPause() {
			return
		}

		x, y, down, buttons := s.sharedInput.Read()
		s.core.SetPointer(x, y, down)
		s.core.SetButtons(buttons)

		s.core.RunFrame()

		if audioCore != nil {
			s.audio.Queue(audioCore.AudioSamples())
		}

		s.sharedFramebuffer.Update(s.core.Framebuffer(), s.core.Stride(), emu.ScreenHeight)

		next = next.Add(frameTime)
		sleepTime := time.Until(next)
		if sleepTime > time.Millisecond {
			time.Sleep(sleepTime)
		} else if sleepTime < -4*frameTime {
			// Too far behind, typically after a pause; don't burst to catch up
			next = time.Now()
		}
	}
}
