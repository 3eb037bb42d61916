package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/bmitracker/backend/internal/domain"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByAccountID(accountID int64) (*domain.Profile, error) {
	var p domain.Profile
	var darkMode, notifications int
	err := r.db.QueryRow(
		`SELECT account_id, age, gender, height_cm, current_weight, goal_weight, goal_bmi,
		        unit_system, dark_mode, notifications_enabled, updated_at
		 FROM profiles WHERE account_id = ?`,
		accountID,
	).Scan(&p.AccountID, &p.Age, &p.Gender, &p.Height, &p.CurrentWeight, &p.GoalWeight,
		&p.GoalBMI, &p.UnitSystem, &darkMode, &notifications, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.DarkMode = darkMode != 0
	p.NotificationsEnabled = notifications != 0
	return &p, nil
}

// UpdateSnapshot overwrites the personal-info part of the profile with the
// values observed on the latest calculation, creating the row when missing.
func (r *ProfileRepository) UpdateSnapshot(accountID int64, age int, gender *string, heightCm, weight float64) error {
	_, err := r.db.Exec(
		`INSERT INTO profiles (account_id, age, gender, height_cm, current_weight)
		 VALUES (?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE age = VALUES(age), gender = COALESCE(VALUES(gender), gender),
		                         height_cm = VALUES(height_cm), current_weight = VALUES(current_weight)`,
		accountID, age, gender, heightCm, weight,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile snapshot: %w", err)
	}
	return nil
}

// UpdateGoalTarget mirrors the current goal's targets onto the profile.
func (r *ProfileRepository) UpdateGoalTarget(accountID int64, goalWeight, goalBMI float64) error {
	_, err := r.db.Exec(
		`INSERT INTO profiles (account_id, goal_weight, goal_bmi) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE goal_weight = VALUES(goal_weight), goal_bmi = VALUES(goal_bmi)`,
		accountID, goalWeight, goalBMI,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile goal target: %w", err)
	}
	return nil
}

// UpdateFields applies a partial edit from the client. Unknown fields are
// ignored rather than rejected.
func (r *ProfileRepository) UpdateFields(accountID int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	allowed := map[string]string{
		"age":                  "age",
		"gender":               "gender",
		"height":               "height_cm",
		"currentWeight":        "current_weight",
		"unitSystem":           "unit_system",
		"darkMode":             "dark_mode",
		"notificationsEnabled": "notifications_enabled",
	}

	var setClauses []string
	var args []interface{}
	for k, v := range fields {
		column, ok := allowed[k]
		if !ok {
			continue
		}
		setClauses = append(setClauses, column+" = ?")
		args = append(args, v)
	}

	if len(setClauses) == 0 {
		return nil
	}

	if _, err := r.db.Exec(`INSERT IGNORE INTO profiles (account_id) VALUES (?)`, accountID); err != nil {
		return fmt.Errorf("failed to ensure profile row: %w", err)
	}

	args = append(args, accountID)
	query := "UPDATE profiles SET " + strings.Join(setClauses, ", ") + " WHERE account_id = ?"
	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
