package emu

// Audio output format.
const (
	SampleRate      = 48000
	samplesPerFrame = SampleRate / FPS
)

// Click tone of the piezo speaker.
const (
	clickFrequency = 2000
	clickDuration  = SampleRate / 50 // 20ms
	clickAmplitude = 6000
)

// piezo is a square wave speaker that sounds short clicks.
type piezo struct {
	samples []int16 // interleaved stereo, one frame
	left    int     // click samples still to play
	phase   int
}

func (p *piezo) click() {
	p.left = clickDuration
	p.phase = 0
}

// generate fills one frame of samples.
func (p *piezo) generate() {
	if p.samples == nil {
		p.samples = make([]int16, samplesPerFrame*2)
	}

	half := SampleRate / clickFrequency / 2
	for i := 0; i < samplesPerFrame; i++ {
		var v int16
		if p.left > 0 {
			v = clickAmplitude
			if (p.phase/half)%2 == 1 {
				v = -clickAmplitude
			}
			p.phase++
			p.left--
		}
		p.samples[i*2] = v
		p.samples[i*2+1] = v
	}
}
