package domain

import "time"

// Profile is the latest known snapshot of a user's attributes and
// preferences. A single row per account, overwritten on every BMI
// calculation and on manual edits; not versioned.
type Profile struct {
	AccountID            int64     `json:"-"`
	Age                  *int      `json:"age"`
	Gender               *string   `json:"gender"`
	Height               *float64  `json:"height"` // cm
	CurrentWeight        *float64  `json:"currentWeight"`
	GoalWeight           *float64  `json:"goalWeight"`
	GoalBMI              *float64  `json:"goalBmi"`
	UnitSystem           string    `json:"unitSystem"` // metric or imperial
	DarkMode             bool      `json:"darkMode"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	UpdatedAt            time.Time `json:"updated_at"`
}
