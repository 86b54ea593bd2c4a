// internal/trainer/sounder.go
package trainer

import "github.com/ColonelBlimp/cwtrainer/internal/audio"

// Sounder is the sidetone surface the screens drive. The keying engine never
// touches it; tone commands from engine output are applied here by the frame
// loop.
type Sounder interface {
	Play()
	Pause()
	SetFrequency(hz float64)
	Frequency() float64
	SetVolume(level float64)
	Volume() float64
}

// silentSounder keeps the frequency/volume controls working in --silent
// mode without an audio device.
type silentSounder struct {
	freq float64
	vol  float64
}

// NewSilentSounder returns a Sounder that produces no audio.
func NewSilentSounder(freq, vol float64) Sounder {
	return &silentSounder{freq: freq, vol: vol}
}

func (s *silentSounder) Play()  {}
func (s *silentSounder) Pause() {}

func (s *silentSounder) SetFrequency(hz float64) {
	if hz < audio.MinFrequency {
		hz = audio.MinFrequency
	}
	if hz > audio.MaxFrequency {
		hz = audio.MaxFrequency
	}
	s.freq = hz
}

func (s *silentSounder) Frequency() float64 { return s.freq }

func (s *silentSounder) SetVolume(level float64) {
	if level < audio.MinVolume {
		level = audio.MinVolume
	}
	if level > audio.MaxVolume {
		level = audio.MaxVolume
	}
	s.vol = level
}

func (s *silentSounder) Volume() float64 { return s.vol }
