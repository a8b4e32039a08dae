package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func budget(userID uuid.UUID, category, amount, month string) *domain.Budget {
	return &domain.Budget{
		ID:       uuid.New(),
		UserID:   userID,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Month:    month,
		Currency: "PKR",
	}
}

func TestEvaluateBudgets_Thresholds(t *testing.T) {
	userID := uuid.New()
	tests := []struct {
		name     string
		budget   string
		spent    string
		expected domain.BudgetStatusLevel
	}{
		{"well under", "250", "100", domain.BudgetStatusGood},
		{"just below warning", "250", "199", domain.BudgetStatusGood},
		{"at warning boundary", "250", "200", domain.BudgetStatusWarning},
		{"between thresholds", "250", "240", domain.BudgetStatusWarning},
		{"at limit", "250", "250", domain.BudgetStatusExceeded},
		{"over limit", "250", "300", domain.BudgetStatusExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statuses := EvaluateBudgets(
				[]*domain.Budget{budget(userID, "Food", tt.budget, "2025-01")},
				map[string]decimal.Decimal{"Food": decimal.RequireFromString(tt.spent)},
			)
			if len(statuses) != 1 {
				t.Fatalf("expected 1 status, got %d", len(statuses))
			}
			if statuses[0].Status != tt.expected {
				t.Errorf("expected status %s, got %s", tt.expected, statuses[0].Status)
			}
		})
	}
}

func TestEvaluateBudgets_NoSpending(t *testing.T) {
	userID := uuid.New()
	statuses := EvaluateBudgets(
		[]*domain.Budget{budget(userID, "Travel", "500", "2025-01")},
		map[string]decimal.Decimal{},
	)

	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	s := statuses[0]
	if !s.Spent.IsZero() {
		t.Errorf("expected spent 0, got %s", s.Spent)
	}
	if !s.Remaining.Equal(decimal.RequireFromString("500")) {
		t.Errorf("expected remaining 500, got %s", s.Remaining)
	}
	if s.Status != domain.BudgetStatusGood {
		t.Errorf("expected status good, got %s", s.Status)
	}
}

func TestEvaluateBudgets_ZeroBudget(t *testing.T) {
	userID := uuid.New()
	statuses := EvaluateBudgets(
		[]*domain.Budget{budget(userID, "Misc", "0", "2025-01")},
		map[string]decimal.Decimal{"Misc": decimal.RequireFromString("50")},
	)

	if !statuses[0].Percentage.IsZero() {
		t.Errorf("expected percentage 0 for zero budget, got %s", statuses[0].Percentage)
	}
	if statuses[0].Status != domain.BudgetStatusGood {
		t.Errorf("expected status good, got %s", statuses[0].Status)
	}
}

func TestEvaluateBudgets_UnroundedThresholdCompare(t *testing.T) {
	userID := uuid.New()
	// 239.99 / 300 = 79.996...%, which rounds to 80.00 but must stay good.
	statuses := EvaluateBudgets(
		[]*domain.Budget{budget(userID, "Food", "300", "2025-01")},
		map[string]decimal.Decimal{"Food": decimal.RequireFromString("239.99")},
	)

	if statuses[0].Status != domain.BudgetStatusGood {
		t.Errorf("expected status good, got %s", statuses[0].Status)
	}
	if !statuses[0].Percentage.Equal(decimal.RequireFromString("80")) {
		t.Errorf("expected reported percentage 80, got %s", statuses[0].Percentage)
	}
}

func TestGetBudgetStatus(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	svc := NewBudgetService(budgetRepo, transactionRepo, userRepo, NewUserLocks())

	user := &domain.User{ID: uuid.New(), Username: "sana", Currency: "PKR"}
	userRepo.AddUser(user)
	budgetRepo.AddBudget(budget(user.ID, "Food", "250", "2025-01"))
	transactionRepo.AddTransaction(tx(user.ID, domain.TransactionTypeExpense, "Food", "200", "2025-01-10"))
	transactionRepo.AddTransaction(tx(user.ID, domain.TransactionTypeExpense, "Food", "300", "2025-02-02"))

	statuses, alerts, err := svc.GetBudgetStatus(user.ID, "2025-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}

	s := statuses[0]
	if !s.Spent.Equal(decimal.RequireFromString("200")) {
		t.Errorf("expected spent 200, got %s", s.Spent)
	}
	if !s.Percentage.Equal(decimal.RequireFromString("80")) {
		t.Errorf("expected percentage 80, got %s", s.Percentage)
	}
	if s.Status != domain.BudgetStatusWarning {
		t.Errorf("expected status warning, got %s", s.Status)
	}
	if len(alerts) != 1 {
		t.Errorf("expected warning in alerts, got %d entries", len(alerts))
	}
}

func TestSetBudget_Upsert(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	svc := NewBudgetService(budgetRepo, transactionRepo, userRepo, NewUserLocks())

	user := &domain.User{ID: uuid.New(), Username: "sana", Currency: "PKR"}
	userRepo.AddUser(user)

	first, err := svc.SetBudget(user.ID, SetBudgetInput{Category: "Food", Amount: decimal.RequireFromString("250"), Month: "2025-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.SetBudget(user.ID, SetBudgetInput{Category: "Food", Amount: decimal.RequireFromString("400"), Month: "2025-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Error("expected upsert to replace the existing budget, not create a new one")
	}
	if !second.Amount.Equal(decimal.RequireFromString("400")) {
		t.Errorf("expected amount 400, got %s", second.Amount)
	}
	if len(budgetRepo.Budgets) != 1 {
		t.Errorf("expected 1 stored budget, got %d", len(budgetRepo.Budgets))
	}
}

func TestSetBudget_Validation(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	svc := NewBudgetService(budgetRepo, transactionRepo, userRepo, NewUserLocks())

	user := &domain.User{ID: uuid.New(), Username: "sana", Currency: "PKR"}
	userRepo.AddUser(user)

	if _, err := svc.SetBudget(user.ID, SetBudgetInput{Category: "", Amount: decimal.RequireFromString("10"), Month: "2025-01"}); err != domain.ErrCategoryRequired {
		t.Errorf("expected ErrCategoryRequired, got %v", err)
	}
	if _, err := svc.SetBudget(user.ID, SetBudgetInput{Category: "Food", Amount: decimal.RequireFromString("-10"), Month: "2025-01"}); err != domain.ErrNegativeAmount {
		t.Errorf("expected ErrNegativeAmount, got %v", err)
	}
	if _, err := svc.SetBudget(user.ID, SetBudgetInput{Category: "Food", Amount: decimal.RequireFromString("10"), Month: "Jan 2025"}); err != domain.ErrInvalidMonth {
		t.Errorf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestSetBudget_DefaultsMonthAndCurrency(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	svc := NewBudgetService(budgetRepo, transactionRepo, userRepo, NewUserLocks())

	user := &domain.User{ID: uuid.New(), Username: "sana", Currency: "EUR"}
	userRepo.AddUser(user)

	b, err := svc.SetBudget(user.ID, SetBudgetInput{Category: "Food", Amount: decimal.RequireFromString("100")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Month == "" {
		t.Error("expected month to default to the current month")
	}
	if b.Currency != "EUR" {
		t.Errorf("expected currency EUR, got %s", b.Currency)
	}
}
