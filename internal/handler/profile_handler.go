package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bmitracker/backend/internal/domain"
	"github.com/bmitracker/backend/internal/middleware"
	"github.com/bmitracker/backend/internal/repository"
)

type ProfileHandler struct {
	repo *repository.ProfileRepository
}

func NewProfileHandler(repo *repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{repo: repo}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing account")
		return
	}

	profile, err := h.repo.GetByAccountID(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if profile == nil {
		// New account with no calculations yet: preferences at defaults.
		profile = &domain.Profile{
			AccountID:            accountID,
			UnitSystem:           "metric",
			NotificationsEnabled: true,
		}
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing account")
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.repo.UpdateFields(accountID, fields); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	profile, err := h.repo.GetByAccountID(accountID)
	if err != nil || profile == nil {
		writeError(w, http.StatusInternalServerError, "failed to get updated profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
