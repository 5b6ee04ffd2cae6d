package mood

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	moodModel "github.com/aadinq/catty/backend/internal/model/mood"
	"github.com/aadinq/catty/backend/pkg/utils"
)

// Handler serves the static mood presentation catalog.
type Handler struct{}

// New creates the mood handler.
func New() *Handler {
	return &Handler{}
}

// RegisterRoutes mounts the catalog endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/moods", h.handleCatalog)
	r.Get("/moods/{mood}", h.handleLookup)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, moodModel.Catalog())
}

// handleLookup resolves a single mood. Unknown values resolve to the neutral
// entry rather than 404: the catalog is total by contract.
func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "mood")
	m, _ := moodModel.Parse(raw)
	utils.RespondJSON(w, http.StatusOK, moodModel.Lookup(m))
}
