// Package handler provides the HTTP surface of both services.
package handler

import (
	"net/http"

	"deck-converter/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewConverterRouter builds the conversion service's router.
func NewConverterRouter(convertHandler *ConvertHandler, logger domain.Logger) http.Handler {
	router := mux.NewRouter()

	router.Use(RecoverMiddleware(logger))
	router.Use(LoggingMiddleware(logger))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"deck-converter"}`))
	}).Methods("GET")

	// The original service exposed the conversion at the root path;
	// the /api/v1 alias matches the rest of the surface.
	router.HandleFunc("/convert_document", convertHandler.ConvertDocument).Methods("POST")
	router.PathPrefix("/api/v1").Subrouter().
		HandleFunc("/convert", convertHandler.ConvertDocument).Methods("POST")

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
		MaxAge: 300,
	})

	return c.Handler(router)
}
