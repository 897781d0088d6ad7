package contracts

import (
	"fmt"
)

// ValidationError is the single error kind produced by response validation.
// It carries the subject being validated (a response name or a fixed label
// such as "Request"), the violated rule, and a snapshot of the offending
// data. Validation is fail-fast: the first violated rule aborts the call.
type ValidationError struct {
	Subject string
	Rule    string
	Value   interface{}
}

// NewValidationError creates a violation for the given subject and rule.
func NewValidationError(subject, rule string, value interface{}) *ValidationError {
	return &ValidationError{
		Subject: subject,
		Rule:    rule,
		Value:   value,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s :: %s: %v", e.Subject, e.Rule, e.Value)
}
