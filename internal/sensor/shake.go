// Package sensor holds the ambient input channels that feed the
// conversation: shake detection, speech capture and haptic feedback. Each
// one degrades to a no-op when the platform capability is absent.
package sensor

import (
	"math"
	"time"
)

// Motion is one acceleration-including-gravity sample from the device.
type Motion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ShakeDetector watches consecutive motion samples and fires when the delta
// on at least one axis pair crosses the threshold. A cooldown window
// debounces the burst of samples a single physical shake produces.
type ShakeDetector struct {
	threshold float64
	cooldown  time.Duration

	last      *Motion
	lastFired time.Time
	now       func() time.Time
}

// NewShakeDetector builds a detector with the given delta threshold and
// debounce window.
func NewShakeDetector(threshold float64, cooldown time.Duration) *ShakeDetector {
	if threshold <= 0 {
		threshold = 15
	}
	return &ShakeDetector{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Feed consumes one sample and reports whether it completes a shake. The
// first sample only primes the detector.
func (d *ShakeDetector) Feed(sample Motion) bool {
	prev := d.last
	d.last = &sample
	if prev == nil {
		return false
	}

	deltaXY := math.Abs(sample.X-prev.X) + math.Abs(sample.Y-prev.Y)
	deltaYZ := math.Abs(sample.Y-prev.Y) + math.Abs(sample.Z-prev.Z)
	if deltaXY < d.threshold && deltaYZ < d.threshold {
		return false
	}

	now := d.now()
	if !d.lastFired.IsZero() && now.Sub(d.lastFired) < d.cooldown {
		return false
	}

	d.lastFired = now
	return true
}
