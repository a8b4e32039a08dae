package service

import (
	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// SavingsService manages the savings vault: a scalar kept on the profile,
// deliberately outside the transaction ledger. Vault moves never write
// ledger rows and are never reconciled against it.
type SavingsService struct {
	userRepo domain.UserRepository
	locks    *UserLocks
}

// NewSavingsService creates a new SavingsService
func NewSavingsService(userRepo domain.UserRepository, locks *UserLocks) *SavingsService {
	return &SavingsService{
		userRepo: userRepo,
		locks:    locks,
	}
}

// Add puts amount into the user's vault and returns the new vault balance.
func (s *SavingsService) Add(userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return decimal.Zero, err
	}

	updated, err := s.userRepo.UpdateSavingsVault(userID, user.SavingsVault.Add(amount))
	if err != nil {
		return decimal.Zero, err
	}
	return updated.SavingsVault, nil
}

// Withdraw takes amount out of the vault. The vault never goes negative:
// withdrawing more than is available fails with the available amount.
func (s *SavingsService) Withdraw(userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return decimal.Zero, err
	}

	if amount.GreaterThan(user.SavingsVault) {
		return decimal.Zero, &domain.InsufficientFundsError{Available: user.SavingsVault}
	}

	updated, err := s.userRepo.UpdateSavingsVault(userID, user.SavingsVault.Sub(amount))
	if err != nil {
		return decimal.Zero, err
	}
	return updated.SavingsVault, nil
}
