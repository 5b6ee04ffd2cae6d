package audio

import (
	"sync"
	"time"
)

// Output is the playback sink a Player streams decoded PCM into. The server
// has no speaker of its own, so the default sink paces writes in real time
// and discards the samples; tests and embedders substitute their own.
type Output interface {
	WriteSamples(samples []int16) error
}

var (
	defaultOutputOnce sync.Once
	defaultOutput     Output
)

// DefaultOutput returns the process-wide playback sink. Constructed lazily
// on first use and reused for the rest of the session.
func DefaultOutput(sampleRate int) Output {
	defaultOutputOnce.Do(func() {
		defaultOutput = &pacedSink{sampleRate: sampleRate}
	})
	return defaultOutput
}

// pacedSink simulates a speaker: each write blocks for the wall-clock
// duration the samples would take to play.
type pacedSink struct {
	sampleRate int
}

func (s *pacedSink) WriteSamples(samples []int16) error {
	rate := s.sampleRate
	if rate <= 0 {
		rate = 24000
	}
	time.Sleep(time.Duration(len(samples)) * time.Second / time.Duration(rate))
	return nil
}
