package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/aadinq/catty/backend/internal/model/chat"
	"github.com/aadinq/catty/backend/internal/model/mood"
	conversation "github.com/aadinq/catty/backend/internal/service/conversation"
	"github.com/aadinq/catty/backend/internal/service/roast"
)

type stubRoaster struct {
	result  roast.Result
	started chan struct{}
	release chan struct{}
}

func (s *stubRoaster) Generate(_ context.Context, _ string, _ []chatmodel.Turn) roast.Result {
	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	return s.result
}

func setupRouter(roaster roast.Roaster) (*chi.Mux, *conversation.Service) {
	conv := conversation.NewService(roaster, nil, nil, nil)
	handler := New(conv)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, conv
}

func postJSON(r *chi.Mux, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSendReturnsCatMessage(t *testing.T) {
	r, _ := setupRouter(&stubRoaster{result: roast.Result{Reply: "Nikal chomu", Mood: mood.Angry}})

	resp := postJSON(r, "/messages", map[string]string{"text": "hi"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var msg chatmodel.Message
	if err := json.Unmarshal(resp.Body.Bytes(), &msg); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if msg.Sender != chatmodel.SenderCat {
		t.Fatalf("expected cat sender, got %q", msg.Sender)
	}
	if msg.Text != "Nikal chomu" || msg.Mood != mood.Angry {
		t.Fatalf("unexpected reply: %+v", msg)
	}
}

func TestSendEmptyMessage(t *testing.T) {
	r, _ := setupRouter(&stubRoaster{result: roast.Result{Reply: "x", Mood: mood.Neutral}})

	resp := postJSON(r, "/messages", map[string]string{"text": "   "})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSendInvalidBody(t *testing.T) {
	r, _ := setupRouter(&stubRoaster{result: roast.Result{Reply: "x", Mood: mood.Neutral}})

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSendWhileBusyConflicts(t *testing.T) {
	stub := &stubRoaster{
		result:  roast.Result{Reply: "slow reply", Mood: mood.Bored},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	r, _ := setupRouter(stub)

	firstDone := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		firstDone <- postJSON(r, "/messages", map[string]string{"text": "first"})
	}()

	select {
	case <-stub.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first send never reached the roaster")
	}

	resp := postJSON(r, "/messages", map[string]string{"text": "second"})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 while busy, got %d", resp.Code)
	}

	close(stub.release)
	first := <-firstDone
	if first.Code != http.StatusOK {
		t.Fatalf("expected first send to succeed, got %d", first.Code)
	}
}

func TestPokeAndReset(t *testing.T) {
	r, conv := setupRouter(&stubRoaster{result: roast.Result{Reply: "x", Mood: mood.Neutral}})

	resp := postJSON(r, "/poke", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 from poke, got %d", resp.Code)
	}

	var poke chatmodel.Message
	if err := json.Unmarshal(resp.Body.Bytes(), &poke); err != nil {
		t.Fatalf("failed to decode poke response: %v", err)
	}
	if poke.Mood != mood.Angry {
		t.Fatalf("expected angry poke, got %q", poke.Mood)
	}

	resp = postJSON(r, "/reset", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 from reset, got %d", resp.Code)
	}
	if got := len(conv.Transcript()); got != 1 {
		t.Fatalf("expected transcript collapsed to seed, got %d messages", got)
	}
}

func TestVoiceToggle(t *testing.T) {
	r, conv := setupRouter(&stubRoaster{result: roast.Result{Reply: "x", Mood: mood.Neutral}})

	req := httptest.NewRequest(http.MethodPut, "/voice", bytes.NewReader([]byte(`{"enabled":true}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !conv.State().VoiceEnabled {
		t.Fatal("expected voice enabled in state")
	}
}

func TestTranscriptAndState(t *testing.T) {
	r, _ := setupRouter(&stubRoaster{result: roast.Result{Reply: "x", Mood: mood.Neutral}})

	req := httptest.NewRequest(http.MethodGet, "/transcript", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var transcript []chatmodel.Message
	if err := json.Unmarshal(resp.Body.Bytes(), &transcript); err != nil {
		t.Fatalf("failed to decode transcript: %v", err)
	}
	if len(transcript) != 1 || transcript[0].Sender != chatmodel.SenderCat {
		t.Fatalf("expected single seed message, got %+v", transcript)
	}

	req = httptest.NewRequest(http.MethodGet, "/state", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var state chatmodel.State
	if err := json.Unmarshal(resp.Body.Bytes(), &state); err != nil {
		t.Fatalf("failed to decode state: %v", err)
	}
	if state.Pending {
		t.Fatal("expected idle state")
	}
}
