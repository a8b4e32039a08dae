package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/util"
	"github.com/shopspring/decimal"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

// BudgetService manages per-category monthly limits and evaluates them
// against actual spending.
type BudgetService struct {
	budgetRepo      domain.BudgetRepository
	transactionRepo domain.TransactionRepository
	userRepo        domain.UserRepository
	locks           *UserLocks
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, transactionRepo domain.TransactionRepository, userRepo domain.UserRepository, locks *UserLocks) *BudgetService {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		locks:           locks,
	}
}

// SetBudgetInput holds the input for setting a budget
type SetBudgetInput struct {
	Category string
	Amount   decimal.Decimal
	Month    string
	Currency string
}

// SetBudget creates or replaces the budget for (user, category, month).
// Last write wins; no history is kept.
func (s *BudgetService) SetBudget(userID uuid.UUID, input SetBudgetInput) (*domain.Budget, error) {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domain.ErrCategoryRequired
	}
	if len(category) > domain.MaxCategoryLength {
		return nil, domain.ErrCategoryTooLong
	}
	if input.Amount.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}
	month := input.Month
	if month == "" {
		month = util.CurrentMonth()
	} else if !util.ValidMonth(month) {
		return nil, domain.ErrInvalidMonth
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = user.Currency
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	return s.budgetRepo.Upsert(&domain.Budget{
		ID:       uuid.New(),
		UserID:   userID,
		Category: category,
		Amount:   input.Amount,
		Month:    month,
		Currency: currency,
	})
}

// GetBudgets lists a user's budgets, optionally restricted to one month.
func (s *BudgetService) GetBudgets(userID uuid.UUID, month string) ([]*domain.Budget, error) {
	if month != "" && !util.ValidMonth(month) {
		return nil, domain.ErrInvalidMonth
	}
	return s.budgetRepo.GetByUser(userID, month)
}

// DeleteBudget removes a single budget row.
func (s *BudgetService) DeleteBudget(userID, id uuid.UUID) error {
	unlock := s.locks.Lock(userID)
	defer unlock()
	return s.budgetRepo.Delete(userID, id)
}

// EvaluateBudgets joins budgets against a month's category breakdown.
// Budgets with no spending still appear with spent zero and status good.
// A zero budget evaluates to percentage zero regardless of spending; that
// is deliberate, not a division-by-zero dodge left to chance.
func EvaluateBudgets(budgets []*domain.Budget, breakdown map[string]decimal.Decimal) []*domain.BudgetStatus {
	statuses := make([]*domain.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := decimal.Zero
		if v, ok := breakdown[b.Category]; ok {
			spent = v
		}

		percentage := decimal.Zero
		if b.Amount.IsPositive() {
			percentage = spent.Div(b.Amount).Mul(hundred)
		}

		status := domain.BudgetStatusGood
		if percentage.GreaterThanOrEqual(hundred) {
			status = domain.BudgetStatusExceeded
		} else if percentage.GreaterThanOrEqual(warningThreshold) {
			status = domain.BudgetStatusWarning
		}

		statuses = append(statuses, &domain.BudgetStatus{
			Category:   b.Category,
			Budget:     b.Amount,
			Spent:      spent,
			Remaining:  b.Amount.Sub(spent),
			Percentage: percentage.Round(2),
			Status:     status,
			Currency:   b.Currency,
		})
	}
	return statuses
}

// GetBudgetStatus evaluates a user's budgets for a month (current month
// when none is given) and also returns the warning/exceeded subset.
func (s *BudgetService) GetBudgetStatus(userID uuid.UUID, month string) ([]*domain.BudgetStatus, []*domain.BudgetStatus, error) {
	if month == "" {
		month = util.CurrentMonth()
	} else if !util.ValidMonth(month) {
		return nil, nil, domain.ErrInvalidMonth
	}

	budgets, err := s.budgetRepo.GetByUser(userID, month)
	if err != nil {
		return nil, nil, err
	}

	transactions, err := s.transactionRepo.GetByUser(userID)
	if err != nil {
		return nil, nil, err
	}

	statuses := EvaluateBudgets(budgets, Summarize(transactions, month).CategoryBreakdown)

	alerts := make([]*domain.BudgetStatus, 0)
	for _, st := range statuses {
		if st.Status != domain.BudgetStatusGood {
			alerts = append(alerts, st)
		}
	}
	return statuses, alerts, nil
}
