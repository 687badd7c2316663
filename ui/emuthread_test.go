package ui

import (
	"testing"
	"time"
)

func TestSharedInput_TapLatched(t *testing.T) {
	var si SharedInput

	si.SetPen(12, 34)
	si.ReleasePen()

	x, y, down, _ := si.Read()
	if !down || x != 12 || y != 34 {
		t.Errorf("expected latched tap at (12,34), got (%d,%d) down=%v", x, y, down)
	}

	_, _, down, _ = si.Read()
	if down {
		t.Error("expected pen up on the following read")
	}
}

func TestSharedInput_Buttons(t *testing.T) {
	var si SharedInput

	si.SetButton(0x01, true)
	si.SetButton(0x04, true)
	si.SetButton(0x01, false)

	if _, _, _, b := si.Read(); b != 0x04 {
		t.Errorf("expected 0x04, got 0x%02X", b)
	}
}

func TestSharedFramebuffer_UpdateRead(t *testing.T) {
	sf := NewSharedFramebuffer()
	if sf.Generation() != 0 {
		t.Fatalf("expected generation 0, got %d", sf.Generation())
	}

	src := make([]byte, 8)
	for i := range src {
		src[i] = byte(i + 1)
	}
	sf.Update(src, 4, 2)

	pixels, stride, height, gen := sf.Read()
	if stride != 4 || height != 2 || gen != 1 {
		t.Errorf("expected stride 4 height 2 gen 1, got %d %d %d", stride, height, gen)
	}
	for i := 0; i < 8; i++ {
		if pixels[i] != byte(i+1) {
			t.Fatalf("pixel byte %d: expected %d, got %d", i, i+1, pixels[i])
		}
	}

	// The snapshot is a copy
	src[0] = 0xFF
	if pixels[0] != 1 {
		t.Error("expected snapshot to be independent of the source")
	}
}

func TestSharedFramebuffer_Oversize(t *testing.T) {
	sf := NewSharedFramebuffer()
	big := make([]byte, len(sf.writePixels)+100)
	sf.Update(big, 1000, 1000)

	if _, _, _, gen := sf.Read(); gen != 1 {
		t.Errorf("expected generation 1, got %d", gen)
	}
}

func TestEmuControl_PauseAck(t *testing.T) {
	ec := NewEmuControl()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for ec.CheckPause() {
			time.Sleep(time.Millisecond)
		}
	}()

	ec.RequestPause()
	if !ec.IsPaused() {
		t.Error("expected paused after acknowledgment")
	}
	ec.RequestResume()
	ec.RequestPause()
	ec.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected loop to exit after stop")
	}
}
