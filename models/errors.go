package models

import "fmt"

// ValidationError rejects a malformed or non-whitelisted query payload
// before any SQL text is produced. Always a caller error.
type ValidationError struct {
	Message string
	Token   string
}

func (e *ValidationError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: %q", e.Message, e.Token)
	}
	return e.Message
}

func NewValidationError(message, token string) *ValidationError {
	return &ValidationError{Message: message, Token: token}
}

// UnexpectedColumnError signals whitelist/shape drift: the recordset
// carried a column the target shape knows nothing about. Server error.
type UnexpectedColumnError struct {
	Column   string
	RowIndex int
}

func (e *UnexpectedColumnError) Error() string {
	return fmt.Sprintf("unexpected column %q in row %d", e.Column, e.RowIndex)
}

// DependencyConflictError is the expected, recoverable delete outcome:
// the target still has dependents and the request's cascade flags do not
// allow removing them.
type DependencyConflictError struct {
	Report DependencyReport
}

func (e *DependencyConflictError) Error() string {
	return fmt.Sprintf("dependency conflict: %d hard, %d soft", len(e.Report.Hard), len(e.Report.Soft))
}

// CascadeAvailable reports whether retrying with cascade enabled can
// succeed. Hard dependents always block.
func (e *DependencyConflictError) CascadeAvailable() bool {
	return len(e.Report.Hard) == 0
}

// NotFoundError is returned when the delete or lookup target row is absent.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}
