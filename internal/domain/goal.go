package domain

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusAbandoned = "abandoned"
)

// Goal tracks a target BMI/weight pair against a start baseline. At most one
// goal per account is active at a time. Progress is always recomputed from
// the baseline and the latest BMI, never incremented.
type Goal struct {
	ID            int64   `json:"id"`
	AccountID     int64   `json:"-"`
	TargetWeight  float64 `json:"targetWeight"`
	TargetBMI     float64 `json:"targetBmi"`
	StartWeight   float64 `json:"startWeight"`
	StartBMI      float64 `json:"startBmi"`
	StartDate     int64   `json:"startDate"`  // milliseconds since epoch
	TargetDate    int64   `json:"targetDate"` // milliseconds since epoch
	CompletedDate *int64  `json:"completedDate"`
	Status        string  `json:"status"`
	Progress      float64 `json:"progress"` // 0-100
}
