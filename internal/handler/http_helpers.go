package handler

import (
	"encoding/json"
	"net/http"

	apperrors "deck-converter/pkg/errors"
)

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	payload, _ := json.Marshal(map[string]string{"error": message})
	w.Write(payload)
}

// writeAppError maps an application error onto its HTTP status and
// JSON body, including the toolchain detail when there is one.
func writeAppError(w http.ResponseWriter, err error) {
	status := apperrors.GetStatusCode(err)
	body := map[string]string{"error": err.Error()}
	if appErr, ok := err.(*apperrors.AppError); ok {
		body["error"] = appErr.Message
		if appErr.Details != "" {
			body["details"] = appErr.Details
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload, _ := json.Marshal(body)
	w.Write(payload)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing else to do.
		return
	}
}
