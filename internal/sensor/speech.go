package sensor

import (
	"log"
	"sync"
)

// Recognizer is the narrow capability interface over platform speech
// recognition. Implementations deliver at most one final transcript per
// Start through the callbacks handed to it.
type Recognizer interface {
	Start(onResult func(text string), onError func(err error)) error
	Stop()
}

// SpeechCapture toggles recognition and routes a final transcript into the
// draft sink. It never auto-sends: the recognized text lands in the input
// buffer and capture exits.
type SpeechCapture struct {
	mu         sync.Mutex
	recognizer Recognizer
	listening  bool
	setDraft   func(text string)
	onState    func(listening bool)
}

// NewSpeechCapture wires a recognizer to a draft sink. onState is invoked on
// every listening-state change (for UI sync) and may be nil.
func NewSpeechCapture(recognizer Recognizer, setDraft func(string), onState func(bool)) *SpeechCapture {
	return &SpeechCapture{recognizer: recognizer, setDraft: setDraft, onState: onState}
}

// Supported reports whether a recognizer capability is present.
func (s *SpeechCapture) Supported() bool {
	return s != nil && s.recognizer != nil
}

// Listening reports whether capture is currently active.
func (s *SpeechCapture) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listening
}

// Toggle starts capture when idle and stops it when listening. Missing
// capability is a silent no-op.
func (s *SpeechCapture) Toggle() {
	if !s.Supported() {
		return
	}

	s.mu.Lock()
	if s.listening {
		s.mu.Unlock()
		s.recognizer.Stop()
		s.setListening(false)
		return
	}
	s.listening = true
	s.mu.Unlock()
	s.notify(true)

	err := s.recognizer.Start(s.handleResult, s.handleError)
	if err != nil {
		log.Printf("[sensor] speech recognition start failed: %v", err)
		s.setListening(false)
	}
}

func (s *SpeechCapture) handleResult(text string) {
	if text != "" && s.setDraft != nil {
		s.setDraft(text)
	}
	s.setListening(false)
}

// Recognition errors and no-match results exit listening with no other side
// effects.
func (s *SpeechCapture) handleError(err error) {
	if err != nil {
		log.Printf("[sensor] speech recognition error: %v", err)
	}
	s.setListening(false)
}

func (s *SpeechCapture) setListening(listening bool) {
	s.mu.Lock()
	changed := s.listening != listening
	s.listening = listening
	s.mu.Unlock()
	if changed {
		s.notify(listening)
	}
}

func (s *SpeechCapture) notify(listening bool) {
	if s.onState != nil {
		s.onState(listening)
	}
}
