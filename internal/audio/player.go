// internal/audio/player.go
// Package audio implements the sidetone player: a continuous sine
// oscillator gated on and off by the keying engine's tone commands.
package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

var (
	ErrNotInitialized = errors.New("audio player not initialized")
	ErrAlreadyRunning = errors.New("audio player already running")
)

// Frequency and volume bounds. Out-of-range values are clamped, never
// rejected; the trainer UI steps through these ranges.
const (
	MinFrequency = 300
	MaxFrequency = 1200
	MinVolume    = 0
	MaxVolume    = 100
)

// rampSeconds is the attack/release envelope length. Gating a sine wave
// instantly produces an audible click; a few milliseconds of ramp removes
// it without softening the element timing.
const rampSeconds = 0.005

// Config holds playback configuration.
type Config struct {
	SampleRate uint32  // e.g., 48000
	BufferSize uint32  // frames per callback
	Frequency  float64 // initial sidetone frequency in Hz
	Volume     float64 // initial volume, 0-100
}

// DefaultConfig returns sensible defaults for sidetone playback.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		BufferSize: 512,
		Frequency:  550,
		Volume:     20,
	}
}

// Player generates a gated sine tone on the default playback device.
// Play, Pause, SetFrequency and SetVolume are safe to call from the frame
// loop while the audio thread is running; they publish through atomics and
// never block.
type Player struct {
	config Config
	ctx    *malgo.AllocatedContext
	device *malgo.Device
	mu     sync.Mutex

	gate     atomic.Bool
	freqBits atomic.Uint64 // math.Float64bits of the frequency in Hz
	volBits  atomic.Uint64 // math.Float64bits of the gain, 0.0-1.0

	// Audio-thread state, touched only inside the data callback.
	phase float64
	env   float64
}

// New creates a player; call Start before gating the tone.
func New(cfg Config) *Player {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	p := &Player{config: cfg}
	p.SetFrequency(cfg.Frequency)
	p.SetVolume(cfg.Volume)
	return p
}

// Start initializes the backend and opens the playback device. The device
// runs continuously; silence is produced while the gate is closed so that
// opening it again has no device-start latency.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.device != nil {
		return ErrAlreadyRunning
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}
	p.ctx = ctx

	deviceConfig := malgo.DeviceConfig{
		DeviceType:         malgo.Playback,
		SampleRate:         p.config.SampleRate,
		PeriodSizeInFrames: p.config.BufferSize,
		Playback: malgo.SubConfig{
			Format:   malgo.FormatF32,
			Channels: 1,
		},
	}

	onSendFrames := func(outputSamples, inputSamples []byte, frameCount uint32) {
		p.fill(outputSamples, frameCount)
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSendFrames,
	})
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		p.ctx = nil
		return fmt.Errorf("init playback device: %w", err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		p.ctx = nil
		return fmt.Errorf("start playback device: %w", err)
	}

	p.device = device
	return nil
}

// Play opens the tone gate.
func (p *Player) Play() { p.gate.Store(true) }

// Pause closes the tone gate.
func (p *Player) Pause() { p.gate.Store(false) }

// SetFrequency changes the sidetone pitch, clamped to the supported range.
func (p *Player) SetFrequency(hz float64) {
	p.freqBits.Store(math.Float64bits(clamp(hz, MinFrequency, MaxFrequency)))
}

// Frequency returns the current sidetone pitch in Hz.
func (p *Player) Frequency() float64 {
	return math.Float64frombits(p.freqBits.Load())
}

// SetVolume changes the output level, clamped to 0-100.
func (p *Player) SetVolume(level float64) {
	p.volBits.Store(math.Float64bits(clamp(level, MinVolume, MaxVolume) / MaxVolume))
}

// Volume returns the current level on the 0-100 scale.
func (p *Player) Volume() float64 {
	return math.Float64frombits(p.volBits.Load()) * MaxVolume
}

// Close stops the device and releases the backend.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.device != nil {
		_ = p.device.Stop()
		p.device.Uninit()
		p.device = nil
	}
	if p.ctx != nil {
		if err := p.ctx.Uninit(); err != nil {
			return fmt.Errorf("uninit context: %w", err)
		}
		p.ctx.Free()
		p.ctx = nil
	}
	return nil
}

// fill renders frameCount mono float32 samples into out. Runs on the audio
// thread; the only shared state it reads is published atomically.
func (p *Player) fill(out []byte, frameCount uint32) {
	freq := math.Float64frombits(p.freqBits.Load())
	gain := math.Float64frombits(p.volBits.Load())
	target := 0.0
	if p.gate.Load() {
		target = 1.0
	}
	step := 1.0 / (rampSeconds * float64(p.config.SampleRate))
	inc := freq / float64(p.config.SampleRate)

	for i := uint32(0); i < frameCount; i++ {
		if p.env < target {
			p.env = math.Min(p.env+step, 1.0)
		} else if p.env > target {
			p.env = math.Max(p.env-step, 0.0)
		}
		sample := float32(math.Sin(2*math.Pi*p.phase) * gain * p.env)
		p.phase += inc
		if p.phase >= 1.0 {
			p.phase -= 1.0
		}
		putFloat32LE(out[i*4:], sample)
	}
}

func putFloat32LE(b []byte, f float32) {
	bits := math.Float32bits(f)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
