package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/user-none/empalm/emu"
)

// ringCapacity is ~170ms at 48kHz stereo 16-bit.
const ringCapacity = 32768

// AudioSink receives interleaved stereo int16 samples from the emulation
// goroutine.
type AudioSink interface {
	Queue(samples []int16)
}

var _ AudioSink = (*Speaker)(nil)

// Speaker plays core audio via oto. Samples are pushed into a ring that
// oto's player pulls from.
type Speaker struct {
	player *oto.Player
	ring   *pcmRing
	bytes  []byte // conversion scratch
}

var (
	otoCtx     *oto.Context
	otoOnce    sync.Once
	otoInitErr error
)

// otoContext initializes the process-wide oto context on first use.
func otoContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   emu.SampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		})
		if otoInitErr != nil {
			return
		}
		<-ready
	})
	return otoCtx, otoInitErr
}

// NewSpeaker starts audio playback at the given volume.
func NewSpeaker(volume float64) (*Speaker, error) {
	ctx, err := otoContext()
	if err != nil {
		return nil, fmt.Errorf("oto audio not available: %w", err)
	}

	ring := newPCMRing(ringCapacity)
	player := ctx.NewPlayer(ring)
	player.SetVolume(volume)
	player.Play()

	return &Speaker{
		player: player,
		ring:   ring,
		bytes:  make([]byte, 0, emu.SampleRate/emu.FPS*4),
	}, nil
}

// Queue implements AudioSink.
func (s *Speaker) Queue(samples []int16) {
	if len(samples) == 0 {
		return
	}
	s.bytes = appendPCM(s.bytes[:0], samples)
	s.ring.Write(s.bytes)
}

// Close stops playback.
func (s *Speaker) Close() {
	s.ring.Close()
	s.player.Close()
}

// appendPCM appends samples as little-endian int16.
func appendPCM(dst []byte, samples []int16) []byte {
	for _, v := range samples {
		dst = append(dst, byte(v), byte(v>>8))
	}
	return dst
}
