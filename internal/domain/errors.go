package domain

import "fmt"

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

// ErrInvariant rejects a mutation that would break interval well-formedness,
// the single-open-interval rule, or non-overlap.
func ErrInvariant(msg string) *AppError {
	return &AppError{Code: "INVARIANT_VIOLATION", Message: msg, Status: 409}
}

func ErrDuplicateYear(record string, year int) *AppError {
	return &AppError{Code: "DUPLICATE_YEAR", Message: fmt.Sprintf("%s for year %d already recorded", record, year), Status: 409}
}

func ErrOwnershipConflict(msg string) *AppError {
	return &AppError{Code: "OWNERSHIP_CONFLICT", Message: msg, Status: 409}
}

func ErrNoOpTransfer(teamID string) *AppError {
	return &AppError{Code: "NO_OP_TRANSFER", Message: fmt.Sprintf("player already belongs to team %s", teamID), Status: 409}
}

// ErrConcurrentModification is surfaced on a version conflict at commit time.
// It is never retried here: retrying requires re-validating the transfer
// preconditions against the new state, which is the caller's call.
func ErrConcurrentModification(entity, id string) *AppError {
	return &AppError{Code: "CONCURRENT_MODIFICATION", Message: fmt.Sprintf("%s %s was modified concurrently", entity, id), Status: 409}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
