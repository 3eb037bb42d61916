package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bmitracker/backend/internal/domain"
)

// MeasurementSource yields a user's measurement history. The app has shipped
// more than one history schema; readers query a prioritized list of sources
// and take the first that yields rows.
type MeasurementSource interface {
	ListByAccountID(accountID int64) ([]domain.Measurement, error)
}

// MeasurementSourceChain tries each source in order until one returns a
// non-empty result. An error in one source does not stop the chain; the
// last error is returned only when every source came back empty.
type MeasurementSourceChain struct {
	sources []MeasurementSource
}

func NewMeasurementSourceChain(sources ...MeasurementSource) *MeasurementSourceChain {
	return &MeasurementSourceChain{sources: sources}
}

func (c *MeasurementSourceChain) ListByAccountID(accountID int64) ([]domain.Measurement, error) {
	var lastErr error
	for _, src := range c.sources {
		measurements, err := src.ListByAccountID(accountID)
		if err != nil {
			lastErr = err
			continue
		}
		if len(measurements) > 0 {
			return measurements, nil
		}
	}
	return nil, lastErr
}

// LegacyMeasurementRepository reads the retired measurements_legacy table.
// The old schema stored a DATETIME and no category; the category is derived
// from the stored BMI on the way out. Read-only.
type LegacyMeasurementRepository struct {
	db       *sql.DB
	classify func(bmi float64) domain.Category
}

func NewLegacyMeasurementRepository(db *sql.DB, classify func(bmi float64) domain.Category) *LegacyMeasurementRepository {
	return &LegacyMeasurementRepository{db: db, classify: classify}
}

func (r *LegacyMeasurementRepository) ListByAccountID(accountID int64) ([]domain.Measurement, error) {
	rows, err := r.db.Query(
		`SELECT id, account_id, recorded_at, weight, height_cm, bmi
		 FROM measurements_legacy WHERE account_id = ?`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list legacy measurements: %w", err)
	}
	defer rows.Close()

	var measurements []domain.Measurement
	for rows.Next() {
		var (
			m          domain.Measurement
			recordedAt time.Time
		)
		if err := rows.Scan(&m.ID, &m.AccountID, &recordedAt, &m.Weight, &m.Height, &m.BMI); err != nil {
			return nil, fmt.Errorf("failed to scan legacy measurement: %w", err)
		}
		m.Timestamp = recordedAt.UnixMilli()
		m.Category = r.classify(m.BMI)
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}
