package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"breach-lab/internal/commons/logger_config"
)

const sampleRate = beep.SampleRate(44100)

// Manager synthesizes short feedback tones into a shared mixer. Audio is
// strictly best-effort: if the speaker cannot initialize (headless CI, no
// device) every Play call is a no-op.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewManager() *Manager {
	return &Manager{mixer: &beep.Mixer{}}
}

func (m *Manager) Initialize() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*80)); err != nil {
		logger_config.Logger.Warn("audio disabled", "err", err)
		return
	}
	speaker.Play(m.mixer)
	m.initialized = true
}

func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// PlayHit is a short mid blip for a landed projectile.
func (m *Manager) PlayHit() {
	m.play(newTone(620, 60*time.Millisecond))
}

// PlayLevelUp is a rising two-note chirp.
func (m *Manager) PlayLevelUp() {
	m.play(beep.Seq(
		newTone(440, 90*time.Millisecond),
		newTone(660, 140*time.Millisecond),
	))
}

// PlayMatchEnd marks victory or defeat with a long tone: high for a win, a
// low buzz otherwise.
func (m *Manager) PlayMatchEnd(victory bool) {
	freq := 180.0
	if victory {
		freq = 780.0
	}
	m.play(newTone(freq, 400*time.Millisecond))
}

func (m *Manager) play(s beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// tone is a sine oscillator with a linear fade-out envelope.
type tone struct {
	freq     float64
	phase    float64
	duration int
	position int
}

func newTone(freq float64, d time.Duration) beep.Streamer {
	return &tone{freq: freq, duration: sampleRate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, false
		}

		env := 1 - float64(t.position)/float64(t.duration)
		val := math.Sin(2*math.Pi*t.phase) * 0.25 * env
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
