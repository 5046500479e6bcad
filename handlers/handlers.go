package handlers

import (
	"encoding/json"
	"net/http"

	"kanban-project/board-service/logging"
	"kanban-project/board-service/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the service error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is a server fault and is logged.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case models.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case models.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case models.IsAuthorization(err):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		logging.Logger.Errorf("Event ID: INTERNAL_ERROR, Description: Unhandled error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
