package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrLoanNotFound         = errors.New("loan not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeLoanNotFound         = "LOAN_NOT_FOUND"
	ErrCodeNotificationNotFound = "NOTIFICATION_NOT_FOUND"
	ErrCodeResolutionError      = "RESOLUTION_ERROR"
	ErrCodeGuardReadError       = "GUARD_READ_ERROR"
	ErrCodeWriteError           = "WRITE_ERROR"
	ErrCodeGateError            = "GATE_ERROR"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
)

// Wrap common errors with business context
func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapNotificationNotFound(notificationID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotificationNotFound,
		fmt.Sprintf("Notification %s not found", notificationID),
		ErrNotificationNotFound,
	)
}

// WrapGuardRead marks a failed idempotency read. The affected loan is skipped
// for the run: an unconfirmed cycle must never be paid on the assumption that
// the ledger is empty.
func WrapGuardRead(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeGuardReadError,
		"ledger unreachable while checking idempotency",
		err,
	)
}

// WrapWrite marks a failed ledger or repository write. Surfaced per loan; the
// cycle stays unpaid and becomes eligible again on the next run.
func WrapWrite(step string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeWriteError,
		fmt.Sprintf("ledger write failed at %s", step),
		err,
	)
}

// WrapGate marks a run-gate failure. Never fatal: the gate is a cheap-skip
// optimization, not a correctness source.
func WrapGate(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeGateError,
		"run gate unavailable",
		err,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}
