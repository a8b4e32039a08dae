package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSavingsFixture(vault string) (*SavingsService, *domain.User) {
	userRepo := testutil.NewMockUserRepository()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     "sana",
		Currency:     "PKR",
		SavingsVault: decimal.RequireFromString(vault),
	}
	userRepo.AddUser(user)
	return NewSavingsService(userRepo, NewUserLocks()), user
}

func TestVaultAdd(t *testing.T) {
	svc, user := newSavingsFixture("0")

	vault, err := svc.Add(user.ID, decimal.RequireFromString("100"))
	require.NoError(t, err)
	assert.True(t, vault.Equal(decimal.RequireFromString("100")), "vault = %s", vault)

	vault, err = svc.Add(user.ID, decimal.RequireFromString("50.50"))
	require.NoError(t, err)
	assert.True(t, vault.Equal(decimal.RequireFromString("150.50")), "vault = %s", vault)
}

func TestVaultWithdraw(t *testing.T) {
	svc, user := newSavingsFixture("100")

	vault, err := svc.Withdraw(user.ID, decimal.RequireFromString("50"))
	require.NoError(t, err)
	assert.True(t, vault.Equal(decimal.RequireFromString("50")), "vault = %s", vault)
}

func TestVaultWithdraw_ExactBalanceEmptiesVault(t *testing.T) {
	svc, user := newSavingsFixture("50")

	vault, err := svc.Withdraw(user.ID, decimal.RequireFromString("50"))
	require.NoError(t, err)
	assert.True(t, vault.IsZero(), "vault = %s", vault)
}

func TestVaultWithdraw_InsufficientFunds(t *testing.T) {
	svc, user := newSavingsFixture("50")

	_, err := svc.Withdraw(user.ID, decimal.RequireFromString("100"))

	var insufficient *domain.InsufficientFundsError
	require.True(t, errors.As(err, &insufficient))
	assert.True(t, insufficient.Available.Equal(decimal.RequireFromString("50")))

	// Vault unchanged after the refused withdrawal
	vault, err := svc.Withdraw(user.ID, decimal.RequireFromString("50"))
	require.NoError(t, err)
	assert.True(t, vault.IsZero())
}

func TestVaultWithdraw_ConcurrentOnlyOneEmptiesVault(t *testing.T) {
	svc, user := newSavingsFixture("100")

	// The vault covers one withdrawal. Racing withdrawals must not both
	// pass the funds check on the same 100 reading.
	const workers = 4
	amount := decimal.RequireFromString("100")

	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Withdraw(user.ID, amount)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		}
	}
	require.Equal(t, 1, succeeded, "exactly one withdrawal should pass the funds check")
	assert.True(t, user.SavingsVault.IsZero(), "vault = %s", user.SavingsVault)
}

func TestVault_RejectsNonPositiveAmounts(t *testing.T) {
	svc, user := newSavingsFixture("100")

	_, err := svc.Add(user.ID, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Add(user.ID, decimal.RequireFromString("-10"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Withdraw(user.ID, decimal.RequireFromString("-10"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestVault_UnknownUser(t *testing.T) {
	svc, _ := newSavingsFixture("0")

	_, err := svc.Add(uuid.New(), decimal.RequireFromString("10"))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
