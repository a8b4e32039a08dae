package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/currency"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/util"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	userRepo        domain.UserRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, userRepo domain.UserRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Type        domain.TransactionType
	Category    string
	Amount      decimal.Decimal
	Description string
	Date        string
	Currency    string
}

// CreateTransaction appends a user-entered transaction to the ledger.
// Amounts entered in a foreign currency are converted to the user's home
// currency at the current table rate; the entered amount and currency are
// kept alongside.
func (s *TransactionService) CreateTransaction(userID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, error) {
	if input.Type != domain.TransactionTypeIncome && input.Type != domain.TransactionTypeExpense {
		return nil, domain.ErrInvalidTransactionType
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domain.ErrCategoryRequired
	}
	if len(category) > domain.MaxCategoryLength {
		return nil, domain.ErrCategoryTooLong
	}

	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	description := strings.TrimSpace(input.Description)
	if len(description) > domain.MaxDescriptionLength {
		return nil, domain.ErrDescriptionTooLong
	}

	date := input.Date
	if date == "" {
		date = util.Today()
	} else if !util.ValidDate(date) {
		return nil, domain.ErrInvalidDate
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	enteredCurrency := input.Currency
	if enteredCurrency == "" {
		enteredCurrency = user.Currency
	}

	amount := input.Amount
	if !strings.EqualFold(enteredCurrency, user.Currency) {
		amount, err = currency.Convert(input.Amount, enteredCurrency, user.Currency)
		if err != nil {
			return nil, err
		}
	}

	return s.transactionRepo.Create(&domain.Transaction{
		ID:               uuid.New(),
		UserID:           userID,
		Type:             input.Type,
		Category:         category,
		Amount:           amount,
		OriginalAmount:   input.Amount,
		OriginalCurrency: strings.ToUpper(enteredCurrency),
		Description:      description,
		Date:             date,
	})
}

// GetTransactions lists a user's transactions, newest date first.
func (s *TransactionService) GetTransactions(userID uuid.UUID) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUser(userID)
}

// DeleteTransaction removes a user-entered transaction. Goal-linked
// synthetic transactions are refused: deleting one would break the
// goal/ledger reconciliation invariant, so they only ever leave the ledger
// through the goal bridge.
func (s *TransactionService) DeleteTransaction(userID, id uuid.UUID) error {
	tx, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if tx.GoalID != nil {
		return domain.ErrGoalManagedTransaction
	}
	return s.transactionRepo.Delete(userID, id)
}
