package sensors

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/aadinq/catty/backend/internal/config"
	chatmodel "github.com/aadinq/catty/backend/internal/model/chat"
	"github.com/aadinq/catty/backend/internal/model/mood"
	conversation "github.com/aadinq/catty/backend/internal/service/conversation"
	"github.com/aadinq/catty/backend/internal/service/roast"
)

type fixedRoaster struct {
	result roast.Result
}

func (f fixedRoaster) Generate(_ context.Context, _ string, _ []chatmodel.Turn) roast.Result {
	return f.result
}

func dialTestServer(t *testing.T) (*websocket.Conn, *conversation.Service, func()) {
	t.Helper()

	conv := conversation.NewService(
		fixedRoaster{result: roast.Result{Reply: "Kya hila raha hai bsdk", Mood: mood.Annoyed}},
		nil, nil, nil,
	)

	r := chi.NewRouter()
	New(conv, config.SensorConfig{ShakeThreshold: 15.0, ShakeCooldownMS: 1500}).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sensors/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("failed to dial websocket: %v", err)
	}

	cleanup := func() {
		conn.Close()
		srv.Close()
	}
	return conn, conv, cleanup
}

func readFrame(t *testing.T, conn *websocket.Conn) serverFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame serverFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("failed to read server frame: %v", err)
	}
	return frame
}

func TestShakeTriggersCannedSend(t *testing.T) {
	conn, conv, cleanup := dialTestServer(t)
	defer cleanup()

	// First sample primes the detector, second crosses the threshold.
	if err := conn.WriteJSON(clientFrame{Type: "motion", X: 0, Y: 0, Z: 0}); err != nil {
		t.Fatalf("failed to write motion frame: %v", err)
	}
	if err := conn.WriteJSON(clientFrame{Type: "motion", X: 30, Y: 30, Z: 0}); err != nil {
		t.Fatalf("failed to write motion frame: %v", err)
	}

	frame := readFrame(t, conn)
	if frame.Type != "shake" || !frame.Triggered {
		t.Fatalf("expected shake frame, got %+v", frame)
	}

	transcript := conv.Transcript()
	if len(transcript) != 3 {
		t.Fatalf("expected seed + shake exchange, got %d messages", len(transcript))
	}
	if transcript[1].Text != conversation.ShakeText {
		t.Fatalf("expected shake message, got %q", transcript[1].Text)
	}
	if transcript[2].Sender != chatmodel.SenderCat {
		t.Fatalf("expected cat reply after shake, got %+v", transcript[2])
	}
}

func TestGentleMotionIgnored(t *testing.T) {
	conn, conv, cleanup := dialTestServer(t)
	defer cleanup()

	for i := 0; i < 5; i++ {
		if err := conn.WriteJSON(clientFrame{Type: "motion", X: 1, Y: 1, Z: 1}); err != nil {
			t.Fatalf("failed to write motion frame: %v", err)
		}
	}

	// Toggle acts as a barrier: its ack proves all motion frames were read.
	if err := conn.WriteJSON(clientFrame{Type: "listen_toggle"}); err != nil {
		t.Fatalf("failed to write toggle frame: %v", err)
	}
	frame := readFrame(t, conn)
	if frame.Type != "listening" {
		t.Fatalf("expected listening frame, got %+v", frame)
	}

	if got := len(conv.Transcript()); got != 1 {
		t.Fatalf("expected untouched transcript, got %d messages", got)
	}
}

func TestSpeechCaptureWritesDraft(t *testing.T) {
	conn, conv, cleanup := dialTestServer(t)
	defer cleanup()

	if err := conn.WriteJSON(clientFrame{Type: "listen_toggle"}); err != nil {
		t.Fatalf("failed to write toggle frame: %v", err)
	}
	frame := readFrame(t, conn)
	if frame.Type != "listening" || !frame.Listening {
		t.Fatalf("expected listening on, got %+v", frame)
	}

	if err := conn.WriteJSON(clientFrame{Type: "speech_final", Text: "sun na"}); err != nil {
		t.Fatalf("failed to write speech frame: %v", err)
	}
	frame = readFrame(t, conn)
	if frame.Type != "listening" || frame.Listening {
		t.Fatalf("expected listening off after final result, got %+v", frame)
	}

	state := conv.State()
	if state.Draft != "sun na" {
		t.Fatalf("expected draft from speech capture, got %q", state.Draft)
	}
	if state.Listening {
		t.Fatal("expected listening cleared in state")
	}
}
