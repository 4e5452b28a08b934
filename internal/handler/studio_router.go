package handler

import (
	"net/http"

	"deck-converter/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewStudioRouter builds the deck studio's router.
func NewStudioRouter(deckHandler *DeckHandler, logger domain.Logger) http.Handler {
	router := mux.NewRouter()

	router.Use(RecoverMiddleware(logger))
	router.Use(LoggingMiddleware(logger))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"deck-studio"}`))
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/decks", deckHandler.UploadDeck).Methods("POST")
	api.HandleFunc("/decks/{id}/outline", deckHandler.GetOutline).Methods("GET")
	api.HandleFunc("/decks/{id}/slides", deckHandler.RenderSlides).Methods("POST")
	api.HandleFunc("/decks/{id}/regenerate", deckHandler.RegenerateDeck).Methods("POST")
	api.HandleFunc("/decks/{id}/notes", deckHandler.GenerateNotes).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			"X-Slide-Count",
			"X-Copied-Shapes",
			"X-Skipped-Shapes",
		},
		MaxAge: 300,
	})

	return c.Handler(router)
}
