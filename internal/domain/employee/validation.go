package employee

// ValidationError reports missing or malformed request fields.
type ValidationError struct {
	Details map[string]string
}

func NewValidationError(details map[string]string) *ValidationError {
	return &ValidationError{Details: details}
}

func (e *ValidationError) Error() string {
	return "employee request validation failed"
}
