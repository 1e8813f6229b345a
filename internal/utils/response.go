package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/eshaanmathakari/SimuLad/internal/models"
)

// RespondWithJSON sends a JSON success response.
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

// RespondWithError maps an error onto the APIError envelope and sends it.
// Errors without a code become internal_server_error.
func RespondWithError(w http.ResponseWriter, err error) {
	var apiErr *models.APIError
	if !errors.As(err, &apiErr) {
		apiErr = models.NewAPIError(models.ErrorCodeInternalServerError, err.Error(), nil, http.StatusInternalServerError)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)
	if encodeErr := json.NewEncoder(w).Encode(apiErr); encodeErr != nil {
		log.Printf("Failed to encode error response: %v", encodeErr)
	}
}
