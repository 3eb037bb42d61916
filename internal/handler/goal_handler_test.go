package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bmitracker/backend/internal/domain"
	"github.com/bmitracker/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoalHandler(t *testing.T) (*GoalHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewGoalHandler(repository.NewGoalRepository(db), repository.NewProfileRepository(db)), mock
}

func profileRows(heightCm, weight float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"account_id", "age", "gender", "height_cm", "current_weight", "goal_weight",
		"goal_bmi", "unit_system", "dark_mode", "notifications_enabled", "updated_at",
	}).AddRow(1, 30, "male", heightCm, weight, nil, nil, "metric", 0, 1, time.Now())
}

func TestGoalSet(t *testing.T) {
	h, mock := newGoalHandler(t)

	// 92kg at 175cm is BMI ~30.04.
	mock.ExpectQuery(regexp.QuoteMeta(`FROM profiles WHERE account_id = ?`)).
		WillReturnRows(profileRows(175, 92))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM goals WHERE account_id = ? AND status = 'active'`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO goals`)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO profiles`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body, _ := json.Marshal(map[string]float64{"targetBmi": 25.0})

	rec := httptest.NewRecorder()
	h.Set(rec, authedRequest(http.MethodPost, "/api/v1/me/goal", body))

	require.Equal(t, http.StatusCreated, rec.Code)

	var goal domain.Goal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goal))
	assert.Equal(t, int64(42), goal.ID)
	assert.Equal(t, domain.GoalStatusActive, goal.Status)
	assert.InDelta(t, 25.0*1.75*1.75, goal.TargetWeight, 1e-4)
	assert.Equal(t, 92.0, goal.StartWeight)
	assert.Zero(t, goal.Progress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalSetAbandonsPreviousActive(t *testing.T) {
	h, mock := newGoalHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM profiles WHERE account_id = ?`)).
		WillReturnRows(profileRows(175, 92))

	previous := sqlmock.NewRows([]string{
		"id", "account_id", "target_weight", "target_bmi", "start_weight", "start_bmi",
		"start_date_ms", "target_date_ms", "completed_date_ms", "status", "progress",
	}).AddRow(41, 1, 70.0, 22.0, 92.0, 30.0, 1717200000000, 1724976000000, nil, "active", 20.0)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM goals WHERE account_id = ? AND status = 'active'`)).
		WillReturnRows(previous)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE goals SET status = ?`)).
		WithArgs(domain.GoalStatusAbandoned, nil, int64(41)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO goals`)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO profiles`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body, _ := json.Marshal(map[string]float64{"targetBmi": 25.0})

	rec := httptest.NewRecorder()
	h.Set(rec, authedRequest(http.MethodPost, "/api/v1/me/goal", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalSetRejectsUnrealisticTarget(t *testing.T) {
	h, mock := newGoalHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM profiles WHERE account_id = ?`)).
		WillReturnRows(profileRows(175, 92))

	body, _ := json.Marshal(map[string]float64{"targetBmi": 55.0})

	rec := httptest.NewRecorder()
	h.Set(rec, authedRequest(http.MethodPost, "/api/v1/me/goal", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "targetBmi")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalSetRequiresBaseline(t *testing.T) {
	h, mock := newGoalHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM profiles WHERE account_id = ?`)).
		WillReturnRows(sqlmock.NewRows([]string{"account_id"}))

	body, _ := json.Marshal(map[string]float64{"targetBmi": 25.0})

	rec := httptest.NewRecorder()
	h.Set(rec, authedRequest(http.MethodPost, "/api/v1/me/goal", body))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGoalCompleteWithoutActiveGoal(t *testing.T) {
	h, mock := newGoalHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM goals WHERE account_id = ? AND status = 'active'`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := httptest.NewRecorder()
	h.Complete(rec, authedRequest(http.MethodPost, "/api/v1/me/goal/complete", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "no active goal")
}

func TestGoalComplete(t *testing.T) {
	h, mock := newGoalHandler(t)

	active := sqlmock.NewRows([]string{
		"id", "account_id", "target_weight", "target_bmi", "start_weight", "start_bmi",
		"start_date_ms", "target_date_ms", "completed_date_ms", "status", "progress",
	}).AddRow(42, 1, 76.5, 25.0, 92.0, 30.0, 1717200000000, 1724976000000, nil, "active", 100.0)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM goals WHERE account_id = ? AND status = 'active'`)).
		WillReturnRows(active)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE goals SET status = ?`)).
		WithArgs(domain.GoalStatusCompleted, sqlmock.AnyArg(), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := httptest.NewRecorder()
	h.Complete(rec, authedRequest(http.MethodPost, "/api/v1/me/goal/complete", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var goal domain.Goal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goal))
	assert.Equal(t, domain.GoalStatusCompleted, goal.Status)
	require.NotNil(t, goal.CompletedDate)
}
