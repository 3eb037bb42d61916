package domain

// ValidationError reports malformed or out-of-range input. Field names the
// offending JSON field so clients can attach the message to the right input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StateError reports an operation that requires state not currently present,
// as opposed to bad input. Rendered differently by callers ("not applicable"
// rather than "fix your input").
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

var (
	ErrNoActiveGoal          = &StateError{Message: "no active goal"}
	ErrCategoryNotApplicable = &StateError{Message: "BMI categories are for ages 20 and above only"}
)
