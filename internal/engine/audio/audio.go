// Package audio plays the looping ambient track behind the scene.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the mixer output rate.
const DefaultSampleRate = beep.SampleRate(44100)

// DefaultFadeIn is how long a newly started track takes to reach full volume.
const DefaultFadeIn = 2 * time.Second

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager owns the speaker and at most one ambient track.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	track    string

	level  float64 // 0..1
	muted  bool
	fade   float64 // 0..1, progress of the fade-in
	fadeIn time.Duration
}

// New creates a manager with the given volume (0..1).
func New(volume float64) *Manager {
	return &Manager{
		level:  clamp(volume, 0, 1),
		fade:   1,
		fadeIn: DefaultFadeIn,
	}
}

// Init opens the speaker. Calling it again is a no-op.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	m.initialized = true
	return nil
}

// Close stops playback and releases the track.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stop()
	m.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// PlayAmbient decodes a WAV and loops it forever, replacing any current
// track. The track fades in from silence.
func (m *Manager) PlayAmbient(data []byte, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	streamer, source, err := ambientStream(data, name, m.sampleRate)
	if err != nil {
		return err
	}

	m.stop()

	m.streamer = streamer
	m.track = name
	m.ctrl = &beep.Ctrl{Streamer: source}
	m.volume = &effects.Volume{Streamer: m.ctrl, Base: 2}
	m.fade = 0
	m.apply()

	speaker.Play(m.volume)
	return nil
}

// Update advances the fade-in by elapsed.
func (m *Manager) Update(elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fade >= 1 {
		return
	}
	if m.fadeIn <= 0 {
		m.fade = 1
	} else {
		m.fade = clamp(m.fade+float64(elapsed)/float64(m.fadeIn), 0, 1)
	}
	m.apply()
}

// SetVolume sets the track volume (0..1).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = clamp(vol, 0, 1)
	m.apply()
}

// Volume returns the configured volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.level
}

// ToggleMute flips the mute state and returns the new one.
func (m *Manager) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	m.apply()
	return m.muted
}

// Muted reports whether output is muted.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// Track returns the name of the playing track, or "".
func (m *Manager) Track() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.track
}

// gain is the effective 0..1 output level.
func (m *Manager) gain() float64 {
	if m.muted {
		return 0
	}
	return m.level * m.fade
}

// apply pushes the current gain into the volume effect. Callers hold m.mu.
func (m *Manager) apply() {
	if m.volume == nil {
		return
	}
	g := m.gain()
	speaker.Lock()
	m.volume.Silent = g <= 0
	m.volume.Volume = volumeExponent(g)
	speaker.Unlock()
}

// stop clears the speaker and closes the track. Callers hold m.mu.
func (m *Manager) stop() {
	if m.initialized {
		speaker.Clear()
	}
	if m.streamer != nil {
		m.streamer.Close()
	}
	m.streamer = nil
	m.ctrl = nil
	m.volume = nil
	m.track = ""
}

// volumeExponent maps a 0..1 gain to the base-2 exponent effects.Volume
// expects: 1 is unchanged, each halving is one step down.
func volumeExponent(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// memFile lets the wav decoder seek within an in-memory track.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// ambientStream decodes a WAV and returns the decoder plus an endless
// stream of it at rate. Looping happens on the decoded track, before any
// resampling.
func ambientStream(data []byte, name string, rate beep.SampleRate) (beep.StreamSeekCloser, beep.Streamer, error) {
	streamer, format, err := wav.Decode(memFile{bytes.NewReader(data)})
	if err != nil {
		return nil, nil, fmt.Errorf("decode wav %q: %w", name, err)
	}

	looped, err := beep.Loop2(streamer)
	if err != nil {
		streamer.Close()
		return nil, nil, fmt.Errorf("loop wav %q: %w", name, err)
	}
	if format.SampleRate != rate {
		looped = beep.Resample(4, format.SampleRate, rate, looped)
	}
	return streamer, looped, nil
}
