package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal is a savings target. CurrentAmount only ever changes through the
// goal ledger bridge, and every change is backed by a linked Transaction:
// the sum of goal-linked expenses minus goal-linked incomes must equal
// CurrentAmount at all times.
type Goal struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      string          `json:"deadline"` // calendar date, YYYY-MM-DD
	Currency      string          `json:"currency"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// GoalProgress is the view-time projection of a goal. None of these fields
// are stored; they are derived from the goal and the current date.
type GoalProgress struct {
	Goal                 *Goal           `json:"goal"`
	ProgressPercentage   decimal.Decimal `json:"progressPercentage"`
	Remaining            decimal.Decimal `json:"remaining"`
	DaysRemaining        int             `json:"daysRemaining"`
	DailySavingsRequired decimal.Decimal `json:"dailySavingsRequired"`
}

// GoalDeletionResult reports the outcome of closing a goal. WasComplete is
// the actual completion fact (CurrentAmount >= TargetAmount), independent
// of what the caller claimed; ReturnedAmount is zero unless a refund
// transaction was written.
type GoalDeletionResult struct {
	Message        string          `json:"message"`
	WasComplete    bool            `json:"wasComplete"`
	ReturnedAmount decimal.Decimal `json:"returnedAmount"`
}

type GoalRepository interface {
	Create(goal *Goal) (*Goal, error)
	GetByID(id uuid.UUID) (*Goal, error)
	GetByUser(userID uuid.UUID) ([]*Goal, error)
	// ApplyContribution appends the expense transaction and increments the
	// goal's current amount. Both writes succeed together or not at all.
	ApplyContribution(goalID uuid.UUID, amount decimal.Decimal, tx *Transaction) (*Goal, error)
	// DeleteWithRefund appends the refund transaction and removes the goal.
	// Both writes succeed together or not at all.
	DeleteWithRefund(goalID uuid.UUID, refundTx *Transaction) error
	Delete(id uuid.UUID) error
}
