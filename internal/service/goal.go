package service

import (
	"math"
	"time"

	"github.com/bmitracker/backend/internal/domain"
)

const (
	minTargetBMI = 10
	maxTargetBMI = 50

	// A goal must differ from the current state by at least this much BMI.
	minGoalDistance = 0.1

	// Default target date when setting a goal, in calendar days.
	goalDurationDays = 90
)

// NewGoal validates the target and builds an active goal with the current
// state as baseline. The target weight is derived from the target BMI at the
// current height.
func NewGoal(currentBMI, currentWeight, heightCm, targetBMI float64, now time.Time) (*domain.Goal, error) {
	if currentBMI <= 0 || heightCm <= 0 {
		return nil, &domain.StateError{Message: "calculate your BMI before setting a goal"}
	}
	if targetBMI < minTargetBMI || targetBMI > maxTargetBMI {
		return nil, domain.NewValidationError("targetBmi", "must be a realistic BMI between 10 and 50")
	}
	if math.Abs(targetBMI-currentBMI) < minGoalDistance {
		return nil, domain.NewValidationError("targetBmi", "must be different from current BMI")
	}

	heightM := heightCm / 100
	return &domain.Goal{
		TargetWeight: targetBMI * heightM * heightM,
		TargetBMI:    targetBMI,
		StartWeight:  currentWeight,
		StartBMI:     currentBMI,
		StartDate:    now.UnixMilli(),
		TargetDate:   now.AddDate(0, 0, goalDurationDays).UnixMilli(),
		Status:       domain.GoalStatusActive,
		Progress:     0,
	}, nil
}

// UpdateGoalProgress recomputes the goal's progress from the distance
// covered between the start and target BMI, clamped to [0,100]. A degenerate
// goal whose target equals its start counts as already met (100) rather than
// dividing by zero. Status is never changed here; completing or abandoning a
// goal is an explicit operation.
func UpdateGoalProgress(g *domain.Goal, currentBMI float64) error {
	if g == nil || g.Status != domain.GoalStatusActive {
		return domain.ErrNoActiveGoal
	}

	total := math.Abs(g.TargetBMI - g.StartBMI)
	if total == 0 {
		g.Progress = 100
		return nil
	}

	covered := math.Abs(currentBMI - g.StartBMI)
	g.Progress = math.Min(100, math.Max(0, covered/total*100))
	return nil
}

// CompleteGoal marks an active goal completed and stamps the completion
// date.
func CompleteGoal(g *domain.Goal, now time.Time) error {
	if g == nil || g.Status != domain.GoalStatusActive {
		return domain.ErrNoActiveGoal
	}
	completed := now.UnixMilli()
	g.Status = domain.GoalStatusCompleted
	g.CompletedDate = &completed
	return nil
}

// AbandonGoal marks an active goal abandoned.
func AbandonGoal(g *domain.Goal) error {
	if g == nil || g.Status != domain.GoalStatusActive {
		return domain.ErrNoActiveGoal
	}
	g.Status = domain.GoalStatusAbandoned
	return nil
}
