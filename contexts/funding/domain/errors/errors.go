package errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrDonationNotFound   = errors.New("donation not found")
	ErrRequestNotFound    = errors.New("budget request not found")
	ErrAllocationNotFound = errors.New("allocation not found")
	ErrInvalidAmount      = errors.New("amount must be a positive value")
	ErrInvalidInput       = errors.New("funding input is invalid")
	ErrInsufficientFunds  = errors.New("insufficient funds remaining on donation")
	ErrRequestLocked      = errors.New("only pending requests can be modified")
	ErrInvalidTransition  = errors.New("allocation status transition is not allowed")
	ErrAccessDenied       = errors.New("access denied")
	ErrDuplicate          = errors.New("record already exists")
	ErrStorageFailure     = errors.New("storage unavailable")
)

// InsufficientFundsError carries the figures the caller needs to display.
// It matches ErrInsufficientFunds under errors.Is.
type InsufficientFundsError struct {
	Remaining decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: remaining %s, requested %s",
		e.Remaining.String(), e.Requested.String())
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
