package models

import (
	"errors"
	"fmt"
)

// Validation errors surfaced directly to the caller. All are matchable with
// errors.Is after wrapping.
var (
	ErrInvalidAmount     = errors.New("amount must be a positive finite number")
	ErrInsufficientFunds = errors.New("insufficient bankroll")
	ErrInvalidStake      = errors.New("stake must be positive")
	ErrInvalidField      = errors.New("field cannot be edited")
	ErrInvalidValue      = errors.New("invalid value for field")
	ErrAlreadySettled    = errors.New("bet is already settled")
	ErrAlreadyPending    = errors.New("bet is already pending")
	ErrNotFound          = errors.New("bet not found")
	ErrUnknownOutcome    = errors.New("unknown settlement outcome")
	ErrInvalidOdds       = errors.New("back odds must be greater than 1")
	ErrInvalidReturn     = errors.New("partial-win return must be a non-negative number")
	ErrIDGeneration      = errors.New("could not generate a unique bet id")
)

// PersistenceError wraps a failed write to one of the backing stores.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps err as a persistence failure for op. If err is
// already a PersistenceError it is returned unchanged so the op of the
// original failure is preserved.
func NewPersistenceError(op string, err error) error {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// CriticalInconsistencyError reports that a compensating bankroll adjustment
// itself failed: the bankroll and the bet store have diverged and manual
// reconciliation is required. It must never be swallowed.
type CriticalInconsistencyError struct {
	Op            string
	BetID         string
	Adjustment    float64
	Cause         error // the failure that triggered compensation
	CompensateErr error // the failure of the compensation itself
}

func (e *CriticalInconsistencyError) Error() string {
	return fmt.Sprintf(
		"critical inconsistency during %s for bet %s: compensation of %.2f failed (%v) after original failure (%v); bankroll and bet store have diverged",
		e.Op, e.BetID, e.Adjustment, e.CompensateErr, e.Cause)
}

func (e *CriticalInconsistencyError) Unwrap() error {
	return e.Cause
}
