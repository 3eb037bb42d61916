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
	"github.com/gorilla/mux"
)

type MeasurementHandler struct {
	repo     *repository.MeasurementRepository
	sources  repository.MeasurementSource
	profiles *repository.ProfileRepository
	goals    *repository.GoalRepository
}

func NewMeasurementHandler(
	repo *repository.MeasurementRepository,
	sources repository.MeasurementSource,
	profiles *repository.ProfileRepository,
	goals *repository.GoalRepository,
) *MeasurementHandler {
	return &MeasurementHandler{
		repo:     repo,
		sources:  sources,
		profiles: profiles,
		goals:    goals,
	}
}

type createMeasurementRequest struct {
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Age    int     `json:"age"`
	Gender *string `json:"gender"`
	Note   string  `json:"note"`
}

type createMeasurementResponse struct {
	Measurement  domain.Measurement `json:"measurement"`
	GoalProgress *float64           `json:"goalProgress,omitempty"`
}

// Create validates the raw inputs, computes BMI and category, stores the
// measurement, refreshes the profile snapshot and, when an active goal
// exists, recomputes its progress. Snapshot and goal updates are
// best-effort: the measurement is the record of truth.
func (h *MeasurementHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing account")
		return
	}

	var req createMeasurementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := service.CalculateBMI(req.Weight, req.Height, req.Age)
	if err != nil {
		writeDomainError(w, err, "failed to calculate BMI")
		return
	}

	m := domain.Measurement{
		AccountID: accountID,
		Timestamp: time.Now().UnixMilli(),
		Weight:    req.Weight,
		Height:    req.Height,
		BMI:       result.BMI,
		Category:  result.Category,
		Note:      req.Note,
	}

	if _, err := h.repo.Create(&m); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save measurement")
		return
	}

	if err := h.profiles.UpdateSnapshot(accountID, req.Age, req.Gender, req.Height, req.Weight); err != nil {
		log.Printf("[measurements] snapshot update failed for account %d: %v", accountID, err)
	}

	resp := createMeasurementResponse{Measurement: m}
	if progress, ok := h.refreshGoalProgress(accountID, result.BMI); ok {
		resp.GoalProgress = &progress
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *MeasurementHandler) refreshGoalProgress(accountID int64, currentBMI float64) (float64, bool) {
	goal, err := h.goals.GetActiveByAccountID(accountID)
	if err != nil {
		log.Printf("[measurements] goal lookup failed for account %d: %v", accountID, err)
		return 0, false
	}
	if goal == nil {
		return 0, false
	}
	if err := service.UpdateGoalProgress(goal, currentBMI); err != nil {
		return 0, false
	}
	if err := h.goals.UpdateProgress(goal.ID, goal.Progress); err != nil {
		log.Printf("[measurements] goal progress update failed for account %d: %v", accountID, err)
		return 0, false
	}
	return goal.Progress, true
}

// List serves both views over the same collection. Without parameters it
// returns the reconciled history: one entry per day, newest first. With
// ?range= it returns the chart series: every record in range, oldest first.
func (h *MeasurementHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing account")
		return
	}

	measurements, err := h.sources.ListByAccountID(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load measurements")
		return
	}

	if rangeParam := r.URL.Query().Get("range"); rangeParam != "" {
		timeRange, err := service.ParseTimeRange(rangeParam)
		if err != nil {
			writeDomainError(w, err, "invalid range")
			return
		}
		filtered := service.FilterByRange(measurements, timeRange, time.Now())
		if filtered == nil {
			filtered = []domain.Measurement{}
		}
		writeJSON(w, http.StatusOK, filtered)
		return
	}

	daily := service.FilterToDaily(measurements)
	if daily == nil {
		daily = []domain.Measurement{}
	}
	writeJSON(w, http.StatusOK, daily)
}

type updateMeasurementRequest struct {
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Note   *string `json:"note"`
}

// Update edits weight/height on an existing measurement, recomputes BMI and
// category, and re-persists under the same key.
func (h *MeasurementHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing account")
		return
	}
	id := mux.Vars(r)["id"]

	var req updateMeasurementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.repo.GetByID(accountID, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load measurement")
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "measurement not found")
		return
	}

	bmi, err := service.ComputeBMI(req.Weight, req.Height)
	if err != nil {
		writeDomainError(w, err, "failed to recalculate BMI")
		return
	}

	m.Weight = req.Weight
	m.Height = req.Height
	m.BMI = bmi
	m.Category = service.Classify(bmi)
	if req.Note != nil {
		m.Note = *req.Note
	}

	if err := h.repo.Update(m); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update measurement")
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// Delete removes the addressed measurement along with every other
// measurement recorded on the same local calendar day, matching the
// one-entry-per-day history view.
func (h *MeasurementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing account")
		return
	}
	id := mux.Vars(r)["id"]

	m, err := h.repo.GetByID(accountID, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load measurement")
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "measurement not found")
		return
	}

	all, err := h.repo.ListByAccountID(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load measurements")
		return
	}

	ids := service.SameDayIDs(all, m.Timestamp)
	if err := h.repo.DeleteMany(accountID, ids); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete measurements")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": len(ids)})
}
