package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/bmitracker/backend/internal/domain"
	"github.com/bmitracker/backend/internal/middleware"
	"github.com/bmitracker/backend/internal/repository"
	"github.com/bmitracker/backend/internal/service"
)

type GoalHandler struct {
	goals    *repository.GoalRepository
	profiles *repository.ProfileRepository
}

func NewGoalHandler(goals *repository.GoalRepository, profiles *repository.ProfileRepository) *GoalHandler {
	return &GoalHandler{goals: goals, profiles: profiles}
}

type setGoalRequest struct {
	TargetBMI float64 `json:"targetBmi"`
}

// Set creates a new active goal with the profile's latest BMI snapshot as
// baseline. A previous active goal is abandoned first; there is at most one
// active goal per account.
func (h *GoalHandler) Set(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing account")
		return
	}

	var req setGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profiles.GetByAccountID(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil || profile.Height == nil || profile.CurrentWeight == nil {
		writeError(w, http.StatusConflict, "calculate your BMI before setting a goal")
		return
	}

	currentBMI, err := service.ComputeBMI(*profile.CurrentWeight, *profile.Height)
	if err != nil {
		writeError(w, http.StatusConflict, "calculate your BMI before setting a goal")
		return
	}

	goal, err := service.NewGoal(currentBMI, *profile.CurrentWeight, *profile.Height, req.TargetBMI, time.Now())
	if err != nil {
		writeDomainError(w, err, "failed to set goal")
		return
	}
	goal.AccountID = accountID

	if previous, err := h.goals.GetActiveByAccountID(accountID); err == nil && previous != nil {
		if err := h.goals.SetStatus(previous.ID, domain.GoalStatusAbandoned, nil); err != nil {
			log.Printf("[goals] failed to abandon previous goal %d: %v", previous.ID, err)
		}
	}

	id, err := h.goals.Create(goal)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save goal")
		return
	}
	goal.ID = id

	if err := h.profiles.UpdateGoalTarget(accountID, goal.TargetWeight, goal.TargetBMI); err != nil {
		log.Printf("[goals] failed to mirror goal target for account %d: %v", accountID, err)
	}

	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing account")
		return
	}

	goal, err := h.goals.GetLatestByAccountID(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load goal")
		return
	}
	if goal == nil {
		writeError(w, http.StatusNotFound, "no goal set")
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(g *domain.Goal) error {
		return service.CompleteGoal(g, time.Now())
	})
}

func (h *GoalHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, service.AbandonGoal)
}

func (h *GoalHandler) transition(w http.ResponseWriter, r *http.Request, apply func(*domain.Goal) error) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing account")
		return
	}

	goal, err := h.goals.GetActiveByAccountID(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load goal")
		return
	}

	if err := apply(goal); err != nil {
		writeDomainError(w, err, "failed to update goal")
		return
	}

	if err := h.goals.SetStatus(goal.ID, goal.Status, goal.CompletedDate); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update goal")
		return
	}

	writeJSON(w, http.StatusOK, goal)
}
