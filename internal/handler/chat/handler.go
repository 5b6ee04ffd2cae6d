package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	conversation "github.com/aadinq/catty/backend/internal/service/conversation"
	"github.com/aadinq/catty/backend/pkg/utils"
)

// Handler exposes the conversation orchestrator over HTTP.
type Handler struct {
	conv *conversation.Service
}

// New creates the chat handler.
func New(conv *conversation.Service) *Handler {
	return &Handler{conv: conv}
}

// RegisterRoutes mounts the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/messages", h.handleSend)
	r.Post("/poke", h.handlePoke)
	r.Post("/reset", h.handleReset)
	r.Put("/voice", h.handleVoiceToggle)
	r.Put("/draft", h.handleDraft)
	r.Get("/transcript", h.handleTranscript)
	r.Get("/state", h.handleState)
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	catMsg, err := h.conv.Send(r.Context(), payload.Text)
	switch {
	case errors.Is(err, conversation.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, conversation.ErrBusy):
		utils.RespondError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, conversation.ErrStaleReply):
		// The chat was cleared mid-flight and the reply was dropped.
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "dropped"})
		return
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, catMsg)
}

func (h *Handler) handlePoke(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.conv.Poke())
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.conv.Reset())
}

func (h *Handler) handleVoiceToggle(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Enabled bool `json:"enabled"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.conv.SetVoiceEnabled(payload.Enabled)
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"enabled": payload.Enabled})
}

func (h *Handler) handleDraft(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.conv.SetDraft(payload.Text)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "stored"})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.conv.Transcript())
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.conv.State())
}
