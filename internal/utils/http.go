package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/worldsync/models"
)

// WriteJSON serializes data and writes it with statusCode and a JSON content
// type. A marshalling failure is answered with 500 and returned wrapped.
//
// Example usage:
//
//	utils.WriteJSON(w, models.RowsResponse{Rows: rows, Seq: seq}, http.StatusOK)
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

// WriteError answers with models.ErrorResponse carrying message.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	_, _ = WriteJSON(w, models.ErrorResponse{Error: message}, statusCode)
}
