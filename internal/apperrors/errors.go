// Package apperrors defines the typed errors of the complaint workflow.
// Handlers map them to HTTP statuses with errors.As; services return
// them directly so callers can correct the input.
package apperrors

import (
	"fmt"
	"strings"
)

// ValidationError reports input that fails a length or format
// constraint. Message names the violated constraint verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// NewValidation builds a ValidationError for a field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PermissionError reports an actor whose privilege tier is insufficient
// for the attempted operation.
type PermissionError struct {
	Actor     string
	Role      string
	Operation string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: role %q may not %s", e.Role, e.Operation)
}

// InvalidStateError reports an operation attempted on a record already
// in a terminal or incompatible state.
type InvalidStateError struct {
	Entity    string
	ID        string
	Status    string
	Operation string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: cannot %s %s %s in status %q", e.Operation, e.Entity, e.ID, e.Status)
}

// BlockedError reports a closure attempt on an optimization that still
// has unresolved complaints. OpenComplaints names them so the caller
// knows what to resolve first.
type BlockedError struct {
	OptimizationID string
	OpenComplaints []string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("optimization %s is blocked by unresolved complaints: %s",
		e.OptimizationID, strings.Join(e.OpenComplaints, "; "))
}
