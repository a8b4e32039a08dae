package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// GoalService is the bridge between savings goals and the transaction
// ledger. Goal money is "set aside" inside the ledger: every change to a
// goal's current amount is backed by a linked synthetic transaction, so the
// contributed amount is always reconcilable against the user's balance.
type GoalService struct {
	goalRepo        domain.GoalRepository
	transactionRepo domain.TransactionRepository
	userRepo        domain.UserRepository
	locks           *UserLocks
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo domain.GoalRepository, transactionRepo domain.TransactionRepository, userRepo domain.UserRepository, locks *UserLocks) *GoalService {
	return &GoalService{
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		locks:           locks,
	}
}

// CreateGoalInput holds the input for creating a goal
type CreateGoalInput struct {
	Name         string
	TargetAmount decimal.Decimal
	Deadline     string
	Currency     string
}

// CreateGoal initializes a goal with a zero current amount. Progress
// figures are never stored; they are derived at view time.
func (s *GoalService) CreateGoal(userID uuid.UUID, input CreateGoalInput) (*domain.Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxFullNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !input.TargetAmount.IsPositive() {
		return nil, domain.ErrInvalidTargetAmount
	}
	if !util.ValidDate(input.Deadline) {
		return nil, domain.ErrInvalidDate
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = user.Currency
	}

	return s.goalRepo.Create(&domain.Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      input.Deadline,
		Currency:      currency,
	})
}

// Progress derives the view-time projection of a goal at a given moment:
// percentage toward target (zero for a zero target), amount remaining,
// whole days until the deadline (floored at zero) and the daily saving
// needed to close the gap in time.
func Progress(goal *domain.Goal, now time.Time) *domain.GoalProgress {
	progress := &domain.GoalProgress{
		Goal:                 goal,
		ProgressPercentage:   decimal.Zero,
		Remaining:            goal.TargetAmount.Sub(goal.CurrentAmount),
		DailySavingsRequired: decimal.Zero,
	}

	if goal.TargetAmount.IsPositive() {
		progress.ProgressPercentage = goal.CurrentAmount.Div(goal.TargetAmount).Mul(hundred).Round(2)
	}

	days, err := util.DaysUntil(goal.Deadline, now)
	if err != nil {
		log.Warn().Str("goal_id", goal.ID.String()).Str("deadline", goal.Deadline).
			Msg("Goal has malformed deadline")
		return progress
	}
	if days > 0 {
		progress.DaysRemaining = days
		progress.DailySavingsRequired = progress.Remaining.Div(decimal.NewFromInt(int64(days))).Round(2)
	}

	return progress
}

// GetUserGoals lists a user's goals with derived progress.
func (s *GoalService) GetUserGoals(userID uuid.UUID) ([]*domain.GoalProgress, error) {
	goals, err := s.goalRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]*domain.GoalProgress, 0, len(goals))
	for _, goal := range goals {
		result = append(result, Progress(goal, now))
	}
	return result, nil
}

// ContributionResult reports a successful contribution.
type ContributionResult struct {
	Goal          *domain.Goal
	NewGoalAmount decimal.Decimal
	NewBalance    decimal.Decimal
}

// Contribute moves amount from the user's spendable balance into a goal:
// it recomputes the balance from the full ledger, rejects contributions
// the balance cannot cover, then appends a "Savings" expense transaction
// and increments the goal in one atomic store write. The user's lock is
// held throughout so concurrent contributions cannot both pass the balance
// check on stale reads.
func (s *GoalService) Contribute(userID, goalID uuid.UUID, amount decimal.Decimal) (*ContributionResult, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	goal, err := s.goalRepo.GetByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}

	user, err := s.userRepo.GetByID(goal.UserID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetByUser(goal.UserID)
	if err != nil {
		return nil, err
	}

	if err := reconcileLedger(goal, transactions); err != nil {
		return nil, err
	}

	balance := Summarize(transactions, "").Balance
	if amount.GreaterThan(balance) {
		return nil, &domain.InsufficientBalanceError{Available: balance}
	}

	tx := &domain.Transaction{
		ID:               uuid.New(),
		UserID:           goal.UserID,
		Type:             domain.TransactionTypeExpense,
		Category:         domain.CategorySavings,
		Amount:           amount,
		OriginalAmount:   amount,
		OriginalCurrency: user.Currency,
		Description:      fmt.Sprintf("Contribution to goal: %s", goal.Name),
		Date:             util.Today(),
		GoalID:           &goal.ID,
	}

	updated, err := s.goalRepo.ApplyContribution(goal.ID, amount, tx)
	if err != nil {
		return nil, err
	}

	return &ContributionResult{
		Goal:          updated,
		NewGoalAmount: updated.CurrentAmount,
		NewBalance:    balance.Sub(amount),
	}, nil
}

// DeleteGoal closes a goal. The caller's completed flag and the actual
// completion fact branch independently:
//
//	completed=false, money saved  -> refund income transaction, then delete
//	completed=true, target met    -> no refund, money stays spent
//	completed=true, target missed -> force-closed early, no refund
//
// The result always reports the actual completion fact and the refunded
// amount (zero unless a refund was written).
func (s *GoalService) DeleteGoal(userID, goalID uuid.UUID, completed bool) (*domain.GoalDeletionResult, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	goal, err := s.goalRepo.GetByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}

	transactions, err := s.transactionRepo.GetByUser(goal.UserID)
	if err != nil {
		return nil, err
	}
	if err := reconcileLedger(goal, transactions); err != nil {
		return nil, err
	}

	wasComplete := goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)
	result := &domain.GoalDeletionResult{
		WasComplete:    wasComplete,
		ReturnedAmount: decimal.Zero,
	}

	switch {
	case !completed && goal.CurrentAmount.IsPositive():
		user, err := s.userRepo.GetByID(goal.UserID)
		if err != nil {
			return nil, err
		}
		refund := &domain.Transaction{
			ID:               uuid.New(),
			UserID:           goal.UserID,
			Type:             domain.TransactionTypeIncome,
			Category:         domain.CategoryGoalRefund,
			Amount:           goal.CurrentAmount,
			OriginalAmount:   goal.CurrentAmount,
			OriginalCurrency: user.Currency,
			Description:      fmt.Sprintf("Refund from cancelled goal: %s", goal.Name),
			Date:             util.Today(),
			GoalID:           &goal.ID,
		}
		if err := s.goalRepo.DeleteWithRefund(goal.ID, refund); err != nil {
			return nil, err
		}
		result.ReturnedAmount = goal.CurrentAmount
		result.Message = fmt.Sprintf("Goal cancelled. %s returned to balance.", goal.CurrentAmount.StringFixed(2))

	case completed && wasComplete:
		if err := s.goalRepo.Delete(goal.ID); err != nil {
			return nil, err
		}
		result.Message = "Congratulations! Goal completed and removed."

	case completed:
		if err := s.goalRepo.Delete(goal.ID); err != nil {
			return nil, err
		}
		result.Message = fmt.Sprintf("Goal closed early: reached %s of %s target.",
			goal.CurrentAmount.StringFixed(2), goal.TargetAmount.StringFixed(2))

	default:
		if err := s.goalRepo.Delete(goal.ID); err != nil {
			return nil, err
		}
		result.Message = "Goal deleted."
	}

	return result, nil
}

// reconcileLedger verifies the bridge invariant: goal-linked expenses minus
// goal-linked incomes must equal the goal's recorded amount. A mismatch
// means a past write was applied partially; it is logged and surfaced as a
// fatal inconsistency, never patched over.
func reconcileLedger(goal *domain.Goal, transactions []*domain.Transaction) error {
	sum := decimal.Zero
	for _, t := range transactions {
		if t.GoalID == nil || *t.GoalID != goal.ID {
			continue
		}
		switch t.Type {
		case domain.TransactionTypeExpense:
			sum = sum.Add(t.Amount)
		case domain.TransactionTypeIncome:
			sum = sum.Sub(t.Amount)
		}
	}

	if !sum.Equal(goal.CurrentAmount) {
		err := &domain.InconsistentLedgerError{
			GoalID:     goal.ID,
			LedgerSum:  sum,
			GoalAmount: goal.CurrentAmount,
		}
		log.Error().Err(err).Str("goal_id", goal.ID.String()).
			Str("ledger_sum", sum.String()).Str("goal_amount", goal.CurrentAmount.String()).
			Msg("Goal ledger reconciliation failed")
		return err
	}
	return nil
}
