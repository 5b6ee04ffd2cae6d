package sensor

import (
	"testing"
	"time"
)

func TestShakeDetectorFiresOnLargeDelta(t *testing.T) {
	d := NewShakeDetector(15, time.Second)

	if d.Feed(Motion{X: 0, Y: 0, Z: 9.8}) {
		t.Fatal("first sample should only prime the detector")
	}
	if !d.Feed(Motion{X: 20, Y: 1, Z: 9.8}) {
		t.Fatal("expected shake for large X delta")
	}
}

func TestShakeDetectorIgnoresGentleMotion(t *testing.T) {
	d := NewShakeDetector(15, time.Second)

	d.Feed(Motion{X: 0, Y: 0, Z: 9.8})
	if d.Feed(Motion{X: 2, Y: 1, Z: 9.9}) {
		t.Fatal("gentle motion should not fire")
	}
}

func TestShakeDetectorCooldownDebounces(t *testing.T) {
	d := NewShakeDetector(15, time.Second)
	current := time.Unix(0, 0)
	d.now = func() time.Time { return current }

	d.Feed(Motion{})
	if !d.Feed(Motion{X: 30}) {
		t.Fatal("expected first shake")
	}

	current = current.Add(100 * time.Millisecond)
	if d.Feed(Motion{X: -30}) {
		t.Fatal("shake inside cooldown window should be swallowed")
	}

	current = current.Add(2 * time.Second)
	if !d.Feed(Motion{X: 30}) {
		t.Fatal("expected shake after cooldown expired")
	}
}
