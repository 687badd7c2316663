package ui

import (
	"io"
	"sync"
)

// pcmRing is a byte ring read by oto's player. Read blocks while empty;
// Write never blocks and overwrites the oldest bytes when full.
type pcmRing struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []byte
	start  int // read position
	size   int // buffered bytes
	closed bool
}

func newPCMRing(capacity int) *pcmRing {
	r := &pcmRing{buf: make([]byte, capacity)}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Write appends p, dropping the oldest data on overflow.
func (r *pcmRing) Write(p []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || len(p) == 0 {
		return
	}
	c := len(r.buf)
	if len(p) > c {
		p = p[len(p)-c:]
	}
	if drop := r.size + len(p) - c; drop > 0 {
		r.start = (r.start + drop) % c
		r.size -= drop
	}

	end := (r.start + r.size) % c
	n := copy(r.buf[end:], p)
	copy(r.buf, p[n:])
	r.size += len(p)

	r.cond.Signal()
}

// Read implements io.Reader. It returns io.EOF once closed and drained.
func (r *pcmRing) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for r.size == 0 {
		if r.closed {
			return 0, io.EOF
		}
		r.cond.Wait()
	}

	want := len(p)
	if want > r.size {
		want = r.size
	}
	n := copy(p[:want], r.buf[r.start:])
	copy(p[n:want], r.buf)

	r.start = (r.start + want) % len(r.buf)
	r.size -= want
	return want, nil
}

// Buffered returns the number of unread bytes.
func (r *pcmRing) Buffered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Close wakes blocked readers.
func (r *pcmRing) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.cond.Broadcast()
}
