package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a per-category spending limit for one calendar month. The
// identity key is (UserID, Category, Month): setting a budget for an
// existing key overwrites the amount, no history is kept.
type Budget struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Month     string          `json:"month"` // YYYY-MM
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
}

type BudgetRepository interface {
	// Upsert creates the budget or, when one exists for the same
	// (user, category, month), replaces its amount.
	Upsert(budget *Budget) (*Budget, error)
	GetByUser(userID uuid.UUID, month string) ([]*Budget, error)
	GetByID(userID, id uuid.UUID) (*Budget, error)
	Delete(userID, id uuid.UUID) error
}
