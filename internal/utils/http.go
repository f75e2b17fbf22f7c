package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes data to JSON and writes it with statusCode.
// If marshaling fails, it responds with 500 and returns a wrapped error.
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

// ErrorDetail is the error body used by the notes API: {"detail": "..."}.
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// WriteDetail writes an [ErrorDetail] body with statusCode.
func WriteDetail(w http.ResponseWriter, detail string, statusCode int) {
	_, _ = WriteJSON(w, ErrorDetail{Detail: detail}, statusCode)
}
