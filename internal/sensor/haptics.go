package sensor

import "log"

// Haptic pulse kinds fired along the conversation pipeline.
const (
	PulseSend  = "send"
	PulseReply = "reply"
	PulsePoke  = "poke"
)

// Haptics delivers advisory vibration pulses. Implementations must be
// non-blocking and must never fail the pipeline.
type Haptics interface {
	Pulse(kind string)
}

// NopHaptics is used when the platform has no vibration capability.
type NopHaptics struct{}

func (NopHaptics) Pulse(string) {}

// LogHaptics records pulses to the log; the default server-side stand-in for
// a client vibration motor.
type LogHaptics struct{}

func (LogHaptics) Pulse(kind string) {
	log.Printf("[haptics] pulse kind=%s", kind)
}
