package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is a registered profile. SavingsVault is money set aside outside the
// transaction ledger: vault moves are never reconciled against transactions,
// unlike goal money which lives inside the ledger. That asymmetry is
// deliberate.
type User struct {
	ID           uuid.UUID       `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	FullName     string          `json:"fullName"`
	PasswordHash string          `json:"-"`
	Currency     string          `json:"currency"`
	SavingsVault decimal.Decimal `json:"savingsVault"`
	CreatedAt    time.Time       `json:"createdAt"`
}

const (
	MaxUsernameLength = 50
	MaxFullNameLength = 255
)

type UserRepository interface {
	Create(user *User) (*User, error)
	GetByID(id uuid.UUID) (*User, error)
	GetByUsername(username string) (*User, error)
	UpdateFullName(id uuid.UUID, fullName string) (*User, error)
	UpdatePasswordHash(id uuid.UUID, passwordHash string) error
	UpdateCurrency(id uuid.UUID, currency string) (*User, error)
	UpdateSavingsVault(id uuid.UUID, savingsVault decimal.Decimal) (*User, error)
}
