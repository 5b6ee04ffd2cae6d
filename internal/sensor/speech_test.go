package sensor

import (
	"errors"
	"testing"
)

type scriptedRecognizer struct {
	started  int
	stopped  int
	onResult func(string)
	onError  func(error)
}

func (r *scriptedRecognizer) Start(onResult func(string), onError func(error)) error {
	r.started++
	r.onResult = onResult
	r.onError = onError
	return nil
}

func (r *scriptedRecognizer) Stop() { r.stopped++ }

func TestSpeechCaptureWritesDraftAndExitsListening(t *testing.T) {
	rec := &scriptedRecognizer{}
	var draft string
	capture := NewSpeechCapture(rec, func(text string) { draft = text }, nil)

	capture.Toggle()
	if !capture.Listening() {
		t.Fatal("expected listening after toggle")
	}

	rec.onResult("roast me harder")
	if draft != "roast me harder" {
		t.Fatalf("draft not written: %q", draft)
	}
	if capture.Listening() {
		t.Fatal("final result should exit listening")
	}
}

func TestSpeechCaptureErrorExitsSilently(t *testing.T) {
	rec := &scriptedRecognizer{}
	var draft string
	capture := NewSpeechCapture(rec, func(text string) { draft = text }, nil)

	capture.Toggle()
	rec.onError(errors.New("no-speech"))

	if capture.Listening() {
		t.Fatal("error should exit listening")
	}
	if draft != "" {
		t.Fatalf("error must not touch the draft, got %q", draft)
	}
}

func TestSpeechCaptureToggleStops(t *testing.T) {
	rec := &scriptedRecognizer{}
	capture := NewSpeechCapture(rec, func(string) {}, nil)

	capture.Toggle()
	capture.Toggle()

	if rec.stopped != 1 {
		t.Fatalf("expected one Stop call, got %d", rec.stopped)
	}
	if capture.Listening() {
		t.Fatal("second toggle should exit listening")
	}
}

func TestSpeechCaptureWithoutCapabilityIsNoop(t *testing.T) {
	capture := NewSpeechCapture(nil, func(string) {}, nil)
	capture.Toggle()
	if capture.Listening() {
		t.Fatal("missing capability must be a silent no-op")
	}
}
