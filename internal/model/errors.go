package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Concrete errors below wrap exactly one kind, so callers classify
// with errors.Is(err, model.ErrConflict) and friends.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrTransactionFailed = errors.New("transaction failed")
	ErrValidation        = errors.New("validation failed")
	ErrChallenge         = errors.New("verification failed")
)

var (
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)
	ErrRewardNotFound  = fmt.Errorf("reward %w", ErrNotFound)
	ErrPickupNotFound  = fmt.Errorf("pickup %w", ErrNotFound)

	ErrDuplicateAccount    = fmt.Errorf("%w: account already exists", ErrConflict)
	ErrOutOfStock          = fmt.Errorf("%w: reward out of stock", ErrConflict)
	ErrInsufficientPoints  = fmt.Errorf("%w: insufficient points", ErrConflict)
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", ErrConflict)

	ErrNoChallenge      = fmt.Errorf("%w: no code was sent to this email", ErrChallenge)
	ErrChallengeExpired = fmt.Errorf("%w: code expired", ErrChallenge)
	ErrCodeMismatch     = fmt.Errorf("%w: invalid code", ErrChallenge)
	ErrTooManyAttempts  = fmt.Errorf("%w: too many attempts, request a new code", ErrChallenge)
)

// IsRetryable reports whether the operation that returned err may be retried.
// Only transaction failures qualify; every other kind is terminal for the call.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransactionFailed)
}

// TransactionError marks a failed atomic unit. The cause is kept for logging.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrTransactionFailed, e.Err)
}

func (e *TransactionError) Unwrap() []error {
	return []error{ErrTransactionFailed, e.Err}
}

// ValidationError lists the fields rejected before any mutation was attempted.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid fields: %s", ErrValidation, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
