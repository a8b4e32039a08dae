package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Categories reserved for transactions written by the goal ledger bridge.
const (
	CategorySavings    = "Savings"
	CategoryGoalRefund = "Goal Refund"
)

// Transaction is one row of the append-only ledger. Amount is always in the
// user's home currency; OriginalAmount/OriginalCurrency keep what was
// actually entered when it differed. GoalID is set only on transactions the
// goal ledger bridge created, and links them back to their goal.
type Transaction struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"userId"`
	Type             TransactionType `json:"type"`
	Category         string          `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency"`
	Description      string          `json:"description"`
	Date             string          `json:"date"` // calendar date, YYYY-MM-DD
	GoalID           *uuid.UUID      `json:"goalId,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

const (
	MaxCategoryLength    = 100
	MaxDescriptionLength = 500
)

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(userID, id uuid.UUID) (*Transaction, error)
	GetByUser(userID uuid.UUID) ([]*Transaction, error)
	Delete(userID, id uuid.UUID) error
}
