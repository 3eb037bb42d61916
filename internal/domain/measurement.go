package domain

type Category string

const (
	CategoryUnderweight Category = "Underweight"
	CategoryNormal      Category = "Normal"
	CategoryOverweight  Category = "Overweight"
	CategoryObese       Category = "Obese"
)

// Measurement is one recorded weight/height/BMI data point. BMI and Category
// are computed when the measurement is created or edited and stored
// redundantly for display; they are never recomputed at read time.
type Measurement struct {
	ID        string   `json:"id"`
	AccountID int64    `json:"-"`
	Timestamp int64    `json:"timestamp"` // milliseconds since epoch
	Weight    float64  `json:"weight"`    // kg
	Height    float64  `json:"height"`    // cm
	BMI       float64  `json:"bmi"`
	Category  Category `json:"category"`
	Note      string   `json:"note"`
}
