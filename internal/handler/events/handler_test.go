package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

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

func TestStreamRelaysMessageEvents(t *testing.T) {
	conv := conversation.NewService(
		fixedRoaster{result: roast.Result{Reply: "Nikal", Mood: mood.Angry}},
		nil, nil, nil,
	)

	r := chi.NewRouter()
	New(conv).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("failed to open event stream: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("expected event-stream content type, got %q", got)
	}

	// The reader reports back once the message frame for the exchange has
	// arrived; the request stays open until then so nothing races the relay.
	collected := make(chan string, 1)
	go func() {
		buf := make([]byte, 4096)
		var all strings.Builder
		for {
			n, err := resp.Body.Read(buf)
			if n > 0 {
				all.WriteString(string(buf[:n]))
			}
			if strings.Contains(all.String(), "event: message") &&
				strings.Contains(all.String(), "Nikal") {
				break
			}
			if err != nil {
				break
			}
		}
		collected <- all.String()
	}()

	time.Sleep(100 * time.Millisecond)
	if _, err := conv.Send(context.Background(), "hi"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	var stream string
	select {
	case stream = <-collected:
	case <-time.After(3 * time.Second):
		// Unblock the reader so its partial stream shows what arrived.
		cancel()
		stream = <-collected
	}
	cancel()

	if !strings.Contains(stream, "event: mood") {
		t.Fatalf("expected initial mood event in stream:\n%s", stream)
	}
	if !strings.Contains(stream, "event: message") {
		t.Fatalf("expected message event in stream:\n%s", stream)
	}
	if !strings.Contains(stream, "Nikal") {
		t.Fatalf("expected reply text in stream:\n%s", stream)
	}
}
