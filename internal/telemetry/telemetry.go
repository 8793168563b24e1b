package telemetry

import (
	"sync"
	"time"

	"breach-lab/internal/commons/logger_config"
)

// Event is one gameplay observation. Kind selects which payload field is
// meaningful.
type Event struct {
	Kind string
	I    int
	F    float32
	At   time.Time
}

// Batch is the aggregate flushed on every interval.
type Batch struct {
	Kills  int
	Dmg    float32
	XP     float32
	Frames int
	AvgDt  float32
}

// Sink batches events off the simulation goroutine. Senders should drop on a
// full In channel rather than block the fixed-step loop.
type Sink struct {
	In   chan Event
	quit chan struct{}

	closeOnce sync.Once
	flush     func(Batch)
	interval  time.Duration
}

func NewSink() *Sink {
	return newSink(2*time.Second, nil)
}

func newSink(interval time.Duration, flush func(Batch)) *Sink {
	if flush == nil {
		flush = logBatch
	}
	s := &Sink{
		In:       make(chan Event, 256),
		quit:     make(chan struct{}),
		flush:    flush,
		interval: interval,
	}
	go s.loop()

	return s
}

func (s *Sink) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
	})
}

func (s *Sink) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var b Batch
	var dtSum float32

	for {
		select {
		case <-s.quit:
			return

		case ev := <-s.In:
			switch ev.Kind {
			case "kill":
				b.Kills += ev.I
			case "damage":
				b.Dmg += ev.F
			case "xp":
				b.XP += ev.F
			case "frame":
				b.Frames++
				dtSum += ev.F
			}

		case <-ticker.C:
			if b.Frames > 0 {
				b.AvgDt = dtSum / float32(b.Frames)
			}
			s.flush(b)
			b = Batch{}
			dtSum = 0
		}
	}
}

func logBatch(b Batch) {
	if b.Kills == 0 && b.Dmg == 0 && b.XP == 0 && b.Frames == 0 {
		return
	}
	logger_config.Logger.Info("telemetry batch",
		"kills", b.Kills,
		"damage", b.Dmg,
		"xp", b.XP,
		"frames", b.Frames,
		"avg_dt", b.AvgDt,
	)
}
