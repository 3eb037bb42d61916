package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/bmitracker/backend/internal/domain"
	"github.com/google/uuid"
)

type MeasurementRepository struct {
	db *sql.DB
}

func NewMeasurementRepository(db *sql.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

// Create inserts a measurement under a freshly generated uuid key and
// returns the key. Keys are opaque strings assigned by the persistence
// layer, never reused across edits.
func (r *MeasurementRepository) Create(m *domain.Measurement) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(
		`INSERT INTO measurements (id, account_id, timestamp_ms, weight, height_cm, bmi, category, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, m.AccountID, m.Timestamp, m.Weight, m.Height, m.BMI, m.Category, m.Note,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create measurement: %w", err)
	}
	m.ID = id
	return id, nil
}

func (r *MeasurementRepository) GetByID(accountID int64, id string) (*domain.Measurement, error) {
	var m domain.Measurement
	err := r.db.QueryRow(
		`SELECT id, account_id, timestamp_ms, weight, height_cm, bmi, category, note
		 FROM measurements WHERE account_id = ? AND id = ?`,
		accountID, id,
	).Scan(&m.ID, &m.AccountID, &m.Timestamp, &m.Weight, &m.Height, &m.BMI, &m.Category, &m.Note)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get measurement: %w", err)
	}
	return &m, nil
}

func (r *MeasurementRepository) ListByAccountID(accountID int64) ([]domain.Measurement, error) {
	rows, err := r.db.Query(
		`SELECT id, account_id, timestamp_ms, weight, height_cm, bmi, category, note
		 FROM measurements WHERE account_id = ?`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	defer rows.Close()

	var measurements []domain.Measurement
	for rows.Next() {
		var m domain.Measurement
		if err := rows.Scan(&m.ID, &m.AccountID, &m.Timestamp, &m.Weight, &m.Height, &m.BMI, &m.Category, &m.Note); err != nil {
			return nil, fmt.Errorf("failed to scan measurement: %w", err)
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}

// Update re-persists an edited measurement under its existing key.
func (r *MeasurementRepository) Update(m *domain.Measurement) error {
	result, err := r.db.Exec(
		`UPDATE measurements SET weight = ?, height_cm = ?, bmi = ?, category = ?, note = ?
		 WHERE account_id = ? AND id = ?`,
		m.Weight, m.Height, m.BMI, m.Category, m.Note, m.AccountID, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update measurement: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update measurement: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteMany removes the given measurement keys for one account.
func (r *MeasurementRepository) DeleteMany(accountID int64, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, accountID)
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := r.db.Exec(
		`DELETE FROM measurements WHERE account_id = ? AND id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to delete measurements: %w", err)
	}
	return nil
}
