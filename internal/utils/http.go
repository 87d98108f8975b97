package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-image-gateway/models"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, models.HealthResponse{Status: "running"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteDetail writes the {"detail": ...} error body used by every endpoint.
func WriteDetail(w http.ResponseWriter, detail string, statusCode int) (int, error) {
	return WriteJSON(w, models.ErrorResponse{Detail: detail}, statusCode)
}

// WritePNG writes raw image bytes with the image/png media type.
func WritePNG(w http.ResponseWriter, data []byte) (int, error) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)

	return w.Write(data)
}
