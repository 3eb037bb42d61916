package service

import (
	"github.com/bmitracker/backend/internal/domain"
)

// Minimum age for adult BMI categories. Under this, BMI-for-age percentiles
// apply instead and no category is assigned.
const minCategoryAge = 20

type BMIResult struct {
	BMI      float64
	Category domain.Category
}

// ComputeBMI converts height to meters and computes weight / height^2.
// Inputs are validated; non-positive weight or height is rejected with a
// field-naming error rather than coerced.
func ComputeBMI(weight, heightCm float64) (float64, error) {
	if weight <= 0 {
		return 0, domain.NewValidationError("weight", "must be a positive number of kilograms")
	}
	if heightCm <= 0 {
		return 0, domain.NewValidationError("height", "must be a positive number of centimeters")
	}
	heightM := heightCm / 100
	return weight / (heightM * heightM), nil
}

// Classify maps a BMI value to its adult category. Cutoffs are exclusive on
// the low side: 18.5 is Normal, 24.9 is Overweight, 29.9 is Obese.
func Classify(bmi float64) domain.Category {
	switch {
	case bmi < 18.5:
		return domain.CategoryUnderweight
	case bmi < 24.9:
		return domain.CategoryNormal
	case bmi < 29.9:
		return domain.CategoryOverweight
	default:
		return domain.CategoryObese
	}
}

// CalculateBMI validates the raw inputs, computes BMI and assigns a
// category. Ages under 20 surface domain.ErrCategoryNotApplicable, which is
// a state error, not a validation error: the inputs are fine, adult
// categories just do not apply.
func CalculateBMI(weight, heightCm float64, age int) (BMIResult, error) {
	if age < 1 {
		return BMIResult{}, domain.NewValidationError("age", "must be a positive whole number")
	}

	bmi, err := ComputeBMI(weight, heightCm)
	if err != nil {
		return BMIResult{}, err
	}

	if age < minCategoryAge {
		return BMIResult{}, domain.ErrCategoryNotApplicable
	}

	return BMIResult{BMI: bmi, Category: Classify(bmi)}, nil
}
