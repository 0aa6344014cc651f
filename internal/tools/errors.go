package tools

import "fmt"

// ValidationError reports input that failed schema validation. The message
// is caller-facing and names the violated constraint; invalid values are
// never silently coerced.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
