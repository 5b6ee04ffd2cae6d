// Package events streams conversation updates to the widget over SSE.
package events

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	conversation "github.com/aadinq/catty/backend/internal/service/conversation"
	"github.com/aadinq/catty/backend/pkg/utils"
)

const heartbeatInterval = 15 * time.Second

// Handler fans conversation events out to SSE subscribers.
type Handler struct {
	conv *conversation.Service
}

// New creates the events handler.
func New(conv *conversation.Service) *Handler {
	return &Handler{conv: conv}
}

// RegisterRoutes mounts the event stream endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/events", h.handleStream)
}

// handleStream subscribes the connection to the orchestrator and relays
// message, mood and reset events until the client disconnects. A periodic
// heartbeat keeps intermediaries from closing the idle stream.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)

	events, cancel := h.conv.Subscribe()
	defer cancel()

	// Let the client render the current mood immediately.
	utils.SendSSEEvent(w, flusher, "mood", map[string]string{
		"mood": string(h.conv.CurrentMood()),
	})

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	log.Printf("[events] stream opened from %s", r.RemoteAddr)
	for {
		select {
		case <-r.Context().Done():
			log.Printf("[events] stream closed from %s", r.RemoteAddr)
			return
		case <-ticker.C:
			// Data-only frame: clients ignore it, proxies see traffic.
			utils.SendSSEChunk(w, flusher, map[string]int64{
				"heartbeat": time.Now().Unix(),
			})
		case ev, ok := <-events:
			if !ok {
				return
			}
			h.relay(w, flusher, ev)
		}
	}
}

func (h *Handler) relay(w http.ResponseWriter, flusher http.Flusher, ev conversation.Event) {
	switch ev.Kind {
	case conversation.EventMessage:
		utils.SendSSEEvent(w, flusher, "message", ev.Message)
	case conversation.EventMood:
		utils.SendSSEEvent(w, flusher, "mood", map[string]string{
			"mood": string(ev.Mood),
		})
	case conversation.EventReset:
		utils.SendSSEEvent(w, flusher, "reset", map[string]string{
			"mood": string(ev.Mood),
		})
	}
}
