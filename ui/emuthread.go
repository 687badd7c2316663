package ui

import (
	"sync"
	"time"

	"github.com/user-none/empalm/emu"
)

// SharedInput holds pen and button state written by the UI thread
// and read by the emulation goroutine.
type SharedInput struct {
	mu      sync.Mutex
	x, y    int
	penDown bool
	tapped  bool // pen went down since the last Read
	buttons uint32
}

// SetPen records a pen position with the pen down.
func (si *SharedInput) SetPen(x, y int) {
	si.mu.Lock()
	si.x = x
	si.y = y
	si.penDown = true
	si.tapped = true
	si.mu.Unlock()
}

// ReleasePen lifts the pen, keeping its last position.
func (si *SharedInput) ReleasePen() {
	si.mu.Lock()
	si.penDown = false
	si.mu.Unlock()
}

// SetButton sets or clears a button bit.
func (si *SharedInput) SetButton(mask uint32, down bool) {
	si.mu.Lock()
	if down {
		si.buttons |= mask
	} else {
		si.buttons &^= mask
	}
	si.mu.Unlock()
}

// Read returns the current input state. A pen that went down and up
// between two reads is reported down once so short taps are not lost.
func (si *SharedInput) Read() (x, y int, penDown bool, buttons uint32) {
	si.mu.Lock()
	x = si.x
	y = si.y
	penDown = si.penDown || si.tapped
	si.tapped = false
	buttons = si.buttons
	si.mu.Unlock()
	return
}

// SharedFramebuffer holds pixel data written by the emulation goroutine
// and read on the UI thread. Uses separate write and read buffers
// so the emu goroutine can write new data while the UI uses the read copy.
type SharedFramebuffer struct {
	mu          sync.Mutex
	writePixels []byte // Written by emu goroutine under lock
	readPixels  []byte // Snapshot copied on Read for safe external use
	stride      int
	height      int
	generation  uint64
}

// NewSharedFramebuffer creates a pre-allocated framebuffer.
func NewSharedFramebuffer() *SharedFramebuffer {
	return &SharedFramebuffer{
		writePixels: make([]byte, emu.ScreenWidth*emu.ScreenHeight*4),
		readPixels:  make([]byte, emu.ScreenWidth*emu.ScreenHeight*4),
	}
}

// Update copies framebuffer data from the emulation goroutine and bumps
// the generation.
func (sf *SharedFramebuffer) Update(pixels []byte, stride, height int) {
	sf.mu.Lock()
	n := stride * height
	if n > len(sf.writePixels) {
		n = len(sf.writePixels)
	}
	if n > len(pixels) {
		n = len(pixels)
	}
	copy(sf.writePixels[:n], pixels[:n])
	sf.stride = stride
	sf.height = height
	sf.generation++
	sf.mu.Unlock()
}

// Generation returns the number of updates so far.
func (sf *SharedFramebuffer) Generation() uint64 {
	sf.mu.Lock()
	g := sf.generation
	sf.mu.Unlock()
	return g
}

// Read returns a snapshot of the current framebuffer state.
// Copies the write buffer into the read buffer under the lock,
// then returns the read buffer which is safe to use without holding the lock
// until the next Read.
func (sf *SharedFramebuffer) Read() (pixels []byte, stride, height int, generation uint64) {
	sf.mu.Lock()
	stride = sf.stride
	height = sf.height
	generation = sf.generation
	n := stride * height
	if n > len(sf.writePixels) {
		n = len(sf.writePixels)
	}
	if n > 0 {
		copy(sf.readPixels[:n], sf.writePixels[:n])
	}
	pixels = sf.readPixels
	sf.mu.Unlock()
	return
}

// EmuControl manages pause/resume/stop coordination between
// the UI thread and the emulation goroutine.
type EmuControl struct {
	mu       sync.Mutex
	pauseReq bool
	paused   bool
	running  bool
	stopReq  bool
	ackCh    chan struct{}
}

// NewEmuControl creates a new emulation control.
func NewEmuControl() *EmuControl {
	return &EmuControl{
		running: true,
		ackCh:   make(chan struct{}, 1),
	}
}

// RequestPause asks the emulation goroutine to pause and blocks
// until it acknowledges the pause.
func (ec *EmuControl) RequestPause() {
	ec.mu.Lock()
	if ec.paused || ec.pauseReq || !ec.running {
		ec.mu.Unlock()
		return
	}
	ec.pauseReq = true
	ec.mu.Unlock()

	// Wait for emu goroutine to acknowledge
	<-ec.ackCh
}

// RequestResume tells the emulation goroutine to resume.
func (ec *EmuControl) RequestResume() {
	ec.mu.Lock()
	ec.pauseReq = false
	ec.paused = false
	ec.mu.Unlock()
}

// CheckPause is called by the emulation goroutine between frames.
// If a pause has been requested, it sends an acknowledgment and
// spins until resumed or stopped. Returns false if the goroutine
// should exit.
func (ec *EmuControl) CheckPause() bool {
	ec.mu.Lock()
	if !ec.running || ec.stopReq {
		ec.mu.Unlock()
		return false
	}
	if !ec.pauseReq {
		ec.mu.Unlock()
		return true
	}

	// Acknowledge pause request
	ec.paused = true
	ec.mu.Unlock()

	// Non-blocking send of ack (buffer size 1)
	select {
	case ec.ackCh <- struct{}{}:
	default:
	}

	// Spin-wait until resumed or stopped
	for {
		ec.mu.Lock()
		if !ec.running || ec.stopReq {
			ec.mu.Unlock()
			return false
		}
		if !ec.pauseReq {
			ec.paused = false
			ec.mu.Unlock()
			return true
		}
		// Resumed and paused again before this loop saw the resume
		if !ec.paused {
			ec.paused = true
			select {
			case ec.ackCh <- struct{}{}:
			default:
			}
		}
		ec.mu.Unlock()
		time.Sleep(10 * time.Millisecond)
	}
}

// Stop signals the emulation goroutine to exit.
func (ec *EmuControl) Stop() {
	ec.mu.Lock()
	ec.running = false
	ec.stopReq = true
	// Also clear pause so CheckPause unblocks
	ec.pauseReq = false
	ec.mu.Unlock()
}

// IsPaused returns true if the emulation goroutine is currently paused.
func (ec *EmuControl) IsPaused() bool {
	ec.mu.Lock()
	p := ec.paused
	ec.mu.Unlock()
	return p
}
