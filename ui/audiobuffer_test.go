package ui

import (
	"bytes"
	"io"
	"testing"
	"time"
)

func TestPCMRing_WrapAround(t *testing.T) {
	r := newPCMRing(8)

	r.Write([]byte{1, 2, 3, 4, 5, 6})
	p := make([]byte, 4)
	if n, _ := r.Read(p); n != 4 || !bytes.Equal(p, []byte{1, 2, 3, 4}) {
		t.Fatalf("expected [1 2 3 4], got %v (n=%d)", p[:n], n)
	}

	r.Write([]byte{7, 8, 9, 10})
	p = make([]byte, 16)
	n, _ := r.Read(p)
	if !bytes.Equal(p[:n], []byte{5, 6, 7, 8, 9, 10}) {
		t.Errorf("expected [5 6 7 8 9 10], got %v", p[:n])
	}
}

func TestPCMRing_OverflowDropsOldest(t *testing.T) {
	r := newPCMRing(4)

	r.Write([]byte{1, 2, 3})
	r.Write([]byte{4, 5, 6})
	if r.Buffered() != 4 {
		t.Fatalf("expected 4 buffered, got %d", r.Buffered())
	}

	p := make([]byte, 4)
	r.Read(p)
	if !bytes.Equal(p, []byte{3, 4, 5, 6}) {
		t.Errorf("expected [3 4 5 6], got %v", p)
	}

	r.Write([]byte{1, 2, 3, 4, 5, 6, 7})
	r.Read(p)
	if !bytes.Equal(p, []byte{4, 5, 6, 7}) {
		t.Errorf("expected last 4 bytes of an oversize write, got %v", p)
	}
}

func TestPCMRing_CloseUnblocksRead(t *testing.T) {
	r := newPCMRing(4)
	done := make(chan error, 1)

	go func() {
		_, err := r.Read(make([]byte, 2))
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	r.Close()

	select {
	case err := <-done:
		if err != io.EOF {
			t.Errorf("expected io.EOF, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected Read to return after Close")
	}
}

func TestAppendPCM_LittleEndian(t *testing.T) {
	got := appendPCM(nil, []int16{0x0102, -2})
	want := []byte{0x02, 0x01, 0xFE, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
