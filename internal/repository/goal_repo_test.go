package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bmitracker/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGoalRepository(db)

	goal := &domain.Goal{
		AccountID:    1,
		TargetWeight: 76.5,
		TargetBMI:    25.0,
		StartWeight:  92.0,
		StartBMI:     30.0,
		StartDate:    1717200000000,
		TargetDate:   1724976000000,
		Status:       domain.GoalStatusActive,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO goals`)).
		WithArgs(int64(1), 76.5, 25.0, 92.0, 30.0, int64(1717200000000), int64(1724976000000), nil, "active", 0.0).
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := repo.Create(goal)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalRepositoryGetActiveNone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGoalRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM goals WHERE account_id = ? AND status = 'active'`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	goal, err := repo.GetActiveByAccountID(1)
	require.NoError(t, err)
	assert.Nil(t, goal)
}

func TestGoalRepositoryGetActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGoalRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "account_id", "target_weight", "target_bmi", "start_weight", "start_bmi",
		"start_date_ms", "target_date_ms", "completed_date_ms", "status", "progress",
	}).AddRow(42, 1, 76.5, 25.0, 92.0, 30.0, 1717200000000, 1724976000000, nil, "active", 50.0)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM goals WHERE account_id = ? AND status = 'active'`)).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	goal, err := repo.GetActiveByAccountID(1)
	require.NoError(t, err)
	require.NotNil(t, goal)
	assert.Equal(t, int64(42), goal.ID)
	assert.Equal(t, 50.0, goal.Progress)
	assert.Nil(t, goal.CompletedDate)
}

func TestGoalRepositoryUpdateProgress(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGoalRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE goals SET progress = ? WHERE id = ?`)).
		WithArgs(75.0, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateProgress(42, 75.0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalRepositorySetStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGoalRepository(db)

	completed := int64(1725000000000)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE goals SET status = ?, completed_date_ms = ? WHERE id = ?`)).
		WithArgs(domain.GoalStatusCompleted, completed, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetStatus(42, domain.GoalStatusCompleted, &completed))
	assert.NoError(t, mock.ExpectationsWereMet())
}
