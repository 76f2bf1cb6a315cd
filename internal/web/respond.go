package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/juridesk/juridesk/internal/board"
	"github.com/juridesk/juridesk/internal/models"
)

// errorResponse is the uniform JSON error body. Field is set for
// validation failures only.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// validationFields maps each validation sentinel to the request field it
// concerns, for 422 responses.
var validationFields = map[error]string{
	board.ErrEmptyName:       "name",
	board.ErrNameTooLong:     "name",
	board.ErrEmptyTitle:      "title",
	board.ErrTitleTooLong:    "title",
	board.ErrInvalidColor:    "color",
	board.ErrInvalidPriority: "priority",
	board.ErrInvalidPosition: "position",
	board.ErrInvalidOrder:    "order",
	board.ErrNoResponsible:   "responsibleId",
	board.ErrEmptyReorder:    "columns",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps service errors onto the HTTP error taxonomy:
// validation 422, not found 404 (cross-unit access included), non-empty
// column deletion 400, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	for sentinel, field := range validationFields {
		if errors.Is(err, sentinel) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: sentinel.Error(), Field: field})
			return
		}
	}
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, models.ErrColumnHasCards):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: models.ErrColumnHasCards.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}
