package emu

import (
	"testing"

	"github.com/user-none/empalm/core"
)

func pixel(l *Loopback, x, y int) [4]byte {
	off := (y*ScreenWidth + x) * 4
	var p [4]byte
	copy(p[:], l.Framebuffer()[off:off+4])
	return p
}

func TestLoopback_BlankLCD(t *testing.T) {
	l := NewLoopback()

	if len(l.Framebuffer()) != ScreenWidth*ScreenHeight*4 {
		t.Fatalf("unexpected framebuffer size %d", len(l.Framebuffer()))
	}
	if l.Stride() != ScreenWidth*4 {
		t.Errorf("expected stride %d, got %d", ScreenWidth*4, l.Stride())
	}
	if p := pixel(l, 80, 80); p != lcdBackground {
		t.Errorf("expected background, got %v", p)
	}
}

func TestLoopback_PenStroke(t *testing.T) {
	l := NewLoopback()

	l.SetPointer(10, 10, true)
	l.RunFrame()
	l.SetPointer(20, 10, true)
	l.RunFrame()

	for x := 10; x <= 20; x++ {
		if p := pixel(l, x, 10); p != lcdInk {
			t.Fatalf("expected ink at (%d,10), got %v", x, p)
		}
	}

	// Lifting the pen breaks the stroke
	l.SetPointer(20, 10, false)
	l.RunFrame()
	l.SetPointer(40, 40, true)
	l.RunFrame()
	if p := pixel(l, 30, 25); p != lcdBackground {
		t.Errorf("expected no ink between strokes, got %v", p)
	}
	if p := pixel(l, 40, 40); p != lcdInk {
		t.Errorf("expected ink at the new stroke, got %v", p)
	}
	if l.Frames() != 4 {
		t.Errorf("expected 4 frames, got %d", l.Frames())
	}
}

func TestLoopback_PenOffLCD(t *testing.T) {
	l := NewLoopback()

	// Silkscreen rows are not part of the LCD
	l.SetPointer(50, 200, true)
	l.RunFrame()
	l.SetPointer(50, 150, true)
	l.RunFrame()

	if p := pixel(l, 50, 151); p != lcdBackground {
		t.Errorf("expected no line from the silkscreen area, got %v", p)
	}
	if p := pixel(l, 50, 150); p != lcdInk {
		t.Errorf("expected a dot at (50,150), got %v", p)
	}
}

func TestLoopback_PowerClears(t *testing.T) {
	l := NewLoopback()

	l.SetPointer(5, 5, true)
	l.RunFrame()
	l.SetPointer(5, 5, false)
	l.SetButtons(core.ButtonPower.Mask())
	l.RunFrame()

	if p := pixel(l, 5, 5); p != lcdBackground {
		t.Errorf("expected ink cleared, got %v", p)
	}
}

func TestLoopback_ButtonIndicators(t *testing.T) {
	l := NewLoopback()

	l.SetButtons(core.ButtonToDo.Mask())
	l.RunFrame()

	x := indicatorLeft + int(core.ButtonToDo)*indicatorPitch
	if p := pixel(l, x, indicatorTop); p != lcdIndicator {
		t.Errorf("expected todo indicator, got %v", p)
	}
	x = indicatorLeft + int(core.ButtonNotes)*indicatorPitch
	if p := pixel(l, x, indicatorTop); p != lcdBackground {
		t.Errorf("expected notes indicator off, got %v", p)
	}

	l.SetButtons(0)
	l.RunFrame()
	x = indicatorLeft + int(core.ButtonToDo)*indicatorPitch
	if p := pixel(l, x, indicatorTop); p != lcdBackground {
		t.Errorf("expected todo indicator off after release, got %v", p)
	}
}

func audible(samples []int16) bool {
	for _, s := range samples {
		if s != 0 {
			return true
		}
	}
	return false
}

func TestLoopback_ClickOnPress(t *testing.T) {
	l := NewLoopback()

	l.RunFrame()
	if n := len(l.AudioSamples()); n != samplesPerFrame*2 {
		t.Fatalf("expected %d samples, got %d", samplesPerFrame*2, n)
	}
	if audible(l.AudioSamples()) {
		t.Error("expected silence without input")
	}

	l.SetButtons(core.ButtonToDo.Mask())
	l.RunFrame()
	if !audible(l.AudioSamples()) {
		t.Error("expected a click on button press")
	}

	// Holding the button does not click again once the tone has played
	l.RunFrame()
	l.RunFrame()
	if audible(l.AudioSamples()) {
		t.Error("expected silence while the button is held")
	}
}

func TestLoopback_ClickOnTap(t *testing.T) {
	l := NewLoopback()

	l.SetPointer(50, 50, true)
	l.RunFrame()
	if !audible(l.AudioSamples()) {
		t.Error("expected a click when the pen touches the LCD")
	}

	// Dragging does not click
	l.RunFrame()
	l.SetPointer(60, 50, true)
	l.RunFrame()
	if audible(l.AudioSamples()) {
		t.Error("expected silence while dragging")
	}
}

func TestPiezo_StereoSquare(t *testing.T) {
	var p piezo
	p.click()
	p.generate()

	for i := 0; i < len(p.samples); i += 2 {
		if p.samples[i] != p.samples[i+1] {
			t.Fatalf("expected identical channels at frame %d", i/2)
		}
	}
	if p.samples[0] != clickAmplitude {
		t.Errorf("expected first sample %d, got %d", clickAmplitude, p.samples[0])
	}
	half := SampleRate / clickFrequency / 2
	if p.samples[half*2] != -clickAmplitude {
		t.Errorf("expected negative half cycle at sample %d, got %d", half, p.samples[half*2])
	}

	// The click runs into the next frame
	p.generate()
	rest := clickDuration - samplesPerFrame
	if p.samples[(rest-1)*2] == 0 {
		t.Error("expected the click to continue into the next frame")
	}
	if got := p.samples[rest*2]; got != 0 {
		t.Errorf("expected silence after the click, got %d", got)
	}
}
