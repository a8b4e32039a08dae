package domain

import "github.com/shopspring/decimal"

// Summary is the result of folding a transaction set: income and expense
// totals, their difference, and expense totals per category.
type Summary struct {
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	Balance           decimal.Decimal
	CategoryBreakdown map[string]decimal.Decimal
	TransactionCount  int
}

// Report is the user-facing financial report. Balance is always the
// all-time balance; when a month filter was applied the income/expense
// totals and breakdown cover that month only and MonthlyBalance carries the
// period balance. The two are never conflated.
type Report struct {
	Month             *string                    `json:"month,omitempty"`
	TotalIncome       decimal.Decimal            `json:"totalIncome"`
	TotalExpense      decimal.Decimal            `json:"totalExpense"`
	Balance           decimal.Decimal            `json:"balance"`
	MonthlyBalance    *decimal.Decimal           `json:"monthlyBalance,omitempty"`
	CategoryBreakdown map[string]decimal.Decimal `json:"categoryBreakdown"`
	TransactionCount  int                        `json:"transactionCount"`
	SavingsVault      decimal.Decimal            `json:"savingsVault"`
}

type BudgetStatusLevel string

const (
	BudgetStatusGood     BudgetStatusLevel = "good"
	BudgetStatusWarning  BudgetStatusLevel = "warning"
	BudgetStatusExceeded BudgetStatusLevel = "exceeded"
)

// BudgetStatus joins one budget against the month's actual spending in its
// category.
type BudgetStatus struct {
	Category   string            `json:"category"`
	Budget     decimal.Decimal   `json:"budget"`
	Spent      decimal.Decimal   `json:"spent"`
	Remaining  decimal.Decimal   `json:"remaining"`
	Percentage decimal.Decimal   `json:"percentage"`
	Status     BudgetStatusLevel `json:"status"`
	Currency   string            `json:"currency"`
}
