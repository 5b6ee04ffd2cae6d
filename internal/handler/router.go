package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aadinq/catty/backend/internal/config"
	chatHandler "github.com/aadinq/catty/backend/internal/handler/chat"
	eventsHandler "github.com/aadinq/catty/backend/internal/handler/events"
	moodHandler "github.com/aadinq/catty/backend/internal/handler/mood"
	sensorsHandler "github.com/aadinq/catty/backend/internal/handler/sensors"
	"github.com/aadinq/catty/backend/internal/middleware"
	conversation "github.com/aadinq/catty/backend/internal/service/conversation"
)

// NewRouter assembles the HTTP surface.
func NewRouter(conv *conversation.Service, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(conv).RegisterRoutes(api)
		moodHandler.New().RegisterRoutes(api)
		eventsHandler.New(conv).RegisterRoutes(api)
		sensorsHandler.New(conv, cfg.Sensor).RegisterRoutes(api)
	})

	return r
}
