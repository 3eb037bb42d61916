package repository

import (
	"database/sql"
	"fmt"

	"github.com/bmitracker/backend/internal/domain"
)

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(g *domain.Goal) (int64, error) {
	result, err := r.db.Exec(
		`INSERT INTO goals (account_id, target_weight, target_bmi, start_weight, start_bmi,
		                    start_date_ms, target_date_ms, completed_date_ms, status, progress)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.AccountID, g.TargetWeight, g.TargetBMI, g.StartWeight, g.StartBMI,
		g.StartDate, g.TargetDate, g.CompletedDate, g.Status, g.Progress,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create goal: %w", err)
	}
	return result.LastInsertId()
}

// GetActiveByAccountID returns the account's active goal, or nil when none.
func (r *GoalRepository) GetActiveByAccountID(accountID int64) (*domain.Goal, error) {
	return r.getByAccountID(accountID, `AND status = 'active'`)
}

// GetLatestByAccountID returns the most recent goal regardless of status.
func (r *GoalRepository) GetLatestByAccountID(accountID int64) (*domain.Goal, error) {
	return r.getByAccountID(accountID, ``)
}

func (r *GoalRepository) getByAccountID(accountID int64, statusClause string) (*domain.Goal, error) {
	var g domain.Goal
	err := r.db.QueryRow(
		`SELECT id, account_id, target_weight, target_bmi, start_weight, start_bmi,
		        start_date_ms, target_date_ms, completed_date_ms, status, progress
		 FROM goals WHERE account_id = ? `+statusClause+`
		 ORDER BY id DESC LIMIT 1`,
		accountID,
	).Scan(&g.ID, &g.AccountID, &g.TargetWeight, &g.TargetBMI, &g.StartWeight, &g.StartBMI,
		&g.StartDate, &g.TargetDate, &g.CompletedDate, &g.Status, &g.Progress)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &g, nil
}

func (r *GoalRepository) UpdateProgress(id int64, progress float64) error {
	_, err := r.db.Exec(
		`UPDATE goals SET progress = ? WHERE id = ?`,
		progress, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal progress: %w", err)
	}
	return nil
}

func (r *GoalRepository) SetStatus(id int64, status string, completedDate *int64) error {
	_, err := r.db.Exec(
		`UPDATE goals SET status = ?, completed_date_ms = ? WHERE id = ?`,
		status, completedDate, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal status: %w", err)
	}
	return nil
}
