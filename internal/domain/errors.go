package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user with this username or email already exists")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrInvalidCredentials  = errors.New("invalid username or password")

	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrInvalidTransactionType = errors.New("transaction type must be income or expense")
	ErrCategoryRequired       = errors.New("category is required")
	ErrCategoryTooLong        = errors.New("category exceeds maximum length")
	ErrDescriptionTooLong     = errors.New("description exceeds maximum length")
	ErrNameRequired           = errors.New("name is required")
	ErrNameTooLong            = errors.New("name exceeds maximum length")
	ErrInvalidDate            = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidMonth           = errors.New("month must be in YYYY-MM format")
	ErrInvalidTargetAmount    = errors.New("target amount must be positive")
	ErrGoalManagedTransaction = errors.New("transaction is managed by a goal and cannot be deleted directly")

	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientFunds   = errors.New("insufficient funds in savings vault")
	ErrInconsistentLedger  = errors.New("goal ledger inconsistent")
)

// InsufficientBalanceError rejects a goal contribution larger than the
// user's spendable balance. Available is reported back to the caller.
type InsufficientBalanceError struct {
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance, available: %s", e.Available.StringFixed(2))
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// InsufficientFundsError rejects a vault withdrawal larger than the vault.
type InsufficientFundsError struct {
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in savings vault, available: %s", e.Available.StringFixed(2))
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// InconsistentLedgerError means a goal's linked transactions no longer sum
// to its recorded amount. This is a fatal data fault: it is surfaced and
// logged, never repaired silently.
type InconsistentLedgerError struct {
	GoalID     uuid.UUID
	LedgerSum  decimal.Decimal
	GoalAmount decimal.Decimal
}

func (e *InconsistentLedgerError) Error() string {
	return fmt.Sprintf("goal %s ledger inconsistent: linked transactions sum to %s, goal records %s",
		e.GoalID, e.LedgerSum.StringFixed(2), e.GoalAmount.StringFixed(2))
}

func (e *InconsistentLedgerError) Is(target error) bool {
	return target == ErrInconsistentLedger
}
