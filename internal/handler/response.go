package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bmitracker/backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps the error taxonomy onto HTTP statuses: validation
// errors are 400 with the field named, "not applicable" is 422, a missing
// active goal is 409, anything else falls through to the given fallback.
func writeDomainError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	if errors.Is(err, domain.ErrCategoryNotApplicable) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var stateErr *domain.StateError
	if errors.As(err, &stateErr) {
		writeError(w, http.StatusConflict, stateErr.Message)
		return
	}

	writeError(w, http.StatusInternalServerError, fallback)
}
