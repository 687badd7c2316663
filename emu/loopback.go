// Package emu provides a loopback stand-in for the emulation core. It has
// no CPU; it renders the pen trace and button state onto a 160x160 LCD so
// the display surface can be exercised without a device ROM.
package emu

import "github.com/user-none/empalm/core"

const (
	Name    = "empalm-loopback"
	Version = "0.1.0"

	ScreenWidth  = 160
	ScreenHeight = 160
	FPS          = 60
)

// LCD palette
var (
	lcdBackground = [4]byte{0x9c, 0xaa, 0x8c, 0xff}
	lcdInk        = [4]byte{0x1a, 0x22, 0x18, 0xff}
	lcdIndicator  = [4]byte{0x50, 0x5c, 0x46, 0xff}
)

// Button indicator cells along the bottom of the LCD.
const (
	indicatorTop    = 153
	indicatorHeight = 5
	indicatorWidth  = 6
	indicatorPitch  = 8
	indicatorLeft   = 2
)

// Loopback is the stand-in core. It is not safe for concurrent use; the
// session serializes access through its emulation goroutine.
type Loopback struct {
	framebuffer []byte
	ink         []bool

	penX, penY int
	penDown    bool

	// last inked point, valid while the pen stays down
	lastX, lastY int
	hasLast      bool

	buttons     uint32
	prevButtons uint32

	speaker piezo

	frames uint64
}

// NewLoopback creates a loopback core with a blank LCD.
func NewLoopback() *Loopback {
	l := &Loopback{
		framebuffer: make([]byte, ScreenWidth*ScreenHeight*4),
		ink:         make([]bool, ScreenWidth*ScreenHeight),
	}
	l.render()
	return l
}

// SetPointer updates the pen state for the next frame.
func (l *Loopback) SetPointer(x, y int, down bool) {
	l.penX, l.penY, l.penDown = x, y, down
}

// SetButtons sets the held hardware buttons as a core.Button bitmask.
func (l *Loopback) SetButtons(mask uint32) {
	l.buttons = mask
}

// RunFrame advances one frame.
func (l *Loopback) RunFrame() {
	pressed := l.buttons &^ l.prevButtons
	l.prevButtons = l.buttons

	// Button presses and pen taps on the LCD click
	tapped := l.penDown && !l.hasLast && onLCD(l.penX, l.penY)
	if pressed != 0 || tapped {
		l.speaker.click()
	}
	l.speaker.generate()

	if pressed&core.ButtonPower.Mask() != 0 {
		for i := range l.ink {
			l.ink[i] = false
		}
		l.hasLast = false
	}

	if l.penDown && onLCD(l.penX, l.penY) {
		if l.hasLast {
			l.line(l.lastX, l.lastY, l.penX, l.penY)
		} else {
			l.plot(l.penX, l.penY)
		}
		l.lastX, l.lastY = l.penX, l.penY
		l.hasLast = true
	} else {
		l.hasLast = false
	}

	l.render()
	l.frames++
}

// Framebuffer returns the LCD as RGBA pixels.
func (l *Loopback) Framebuffer() []byte {
	return l.framebuffer
}

// AudioSamples returns the interleaved stereo samples of the last frame at
// SampleRate.
func (l *Loopback) AudioSamples() []int16 {
	return l.speaker.samples
}

// Stride returns the bytes per framebuffer row.
func (l *Loopback) Stride() int {
	return ScreenWidth * 4
}

// Frames returns the number of frames run.
func (l *Loopback) Frames() uint64 {
	return l.frames
}

func onLCD(x, y int) bool {
	return x >= 0 && x < ScreenWidth && y >= 0 && y < ScreenHeight
}

func (l *Loopback) plot(x, y int) {
	if onLCD(x, y) {
		l.ink[y*ScreenWidth+x] = true
	}
}

// line inks a Bresenham line between two points.
func (l *Loopback) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		l.plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (l *Loopback) render() {
	for i, inked := range l.ink {
		c := lcdBackground
		if inked {
			c = lcdInk
		}
		copy(l.framebuffer[i*4:i*4+4], c[:])
	}

	for b := core.ButtonPower; b <= core.ButtonCradle; b++ {
		if l.buttons&b.Mask() == 0 {
			continue
		}
		x0 := indicatorLeft + int(b)*indicatorPitch
		for y := indicatorTop; y < indicatorTop+indicatorHeight; y++ {
			for x := x0; x < x0+indicatorWidth; x++ {
				off := (y*ScreenWidth + x) * 4
				copy(l.framebuffer[off:off+4], lcdIndicator[:])
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
