package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "questforge/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(profileHandler *ProfileHandler, questHandler *QuestHandler, chatHandler *ChatHandler) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Serves the auto-generated Swagger UI for API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// A simple health check endpoint for container orchestration probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON API routes get a request timeout to prevent client
		// connections from hanging indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			// --- Session & Profile ---
			r.Post("/session", profileHandler.HandleStartSession)
			r.Get("/profile", profileHandler.HandleGetProfile)
			r.Put("/profile/name", profileHandler.HandleUpdateDisplayName)

			// --- Quests ---
			r.Get("/quests", questHandler.HandleListQuests)
			r.Post("/quests", questHandler.HandleCreateQuest)
			r.Post("/quests/{questID}/complete", questHandler.HandleCompleteQuest)
			r.Delete("/quests/{questID}", questHandler.HandleDeleteQuest)

			// --- Chat transcript ---
			r.Get("/chat/messages", chatHandler.HandleGetMessages)
		})

		// Streaming endpoints must NOT have a timeout, as they are designed
		// to hold a connection open for an extended period.
		r.Group(func(r chi.Router) {
			r.Post("/chat/messages", chatHandler.HandleStreamMessage)
		})
	})

	return r
}
