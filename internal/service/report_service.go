package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReportService folds a user's ledger into balances and per-category
// totals.
type ReportService struct {
	transactionRepo domain.TransactionRepository
	userRepo        domain.UserRepository
}

// NewReportService creates a new ReportService
func NewReportService(transactionRepo domain.TransactionRepository, userRepo domain.UserRepository) *ReportService {
	return &ReportService{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
	}
}

// Summarize folds a transaction set into income/expense totals, balance and
// an expenses-only category breakdown. When month is non-empty only
// transactions whose date starts with that YYYY-MM prefix are counted.
//
// Summarize is total over well-formed input: an empty set yields zeros and
// an empty breakdown. Malformed rows (negative amount, unknown type) are a
// data-quality fault, not a business error: they are excluded from the sums
// with a warning instead of failing the whole report.
func Summarize(transactions []*domain.Transaction, month string) *domain.Summary {
	summary := &domain.Summary{
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
		Balance:           decimal.Zero,
		CategoryBreakdown: make(map[string]decimal.Decimal),
	}

	for _, t := range transactions {
		if month != "" && !strings.HasPrefix(t.Date, month) {
			continue
		}
		if t.Amount.IsNegative() {
			log.Warn().Str("transaction_id", t.ID.String()).Str("amount", t.Amount.String()).
				Msg("Skipping transaction with negative amount")
			continue
		}

		switch t.Type {
		case domain.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
		case domain.TransactionTypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(t.Amount)
			summary.CategoryBreakdown[t.Category] = summary.CategoryBreakdown[t.Category].Add(t.Amount)
		default:
			log.Warn().Str("transaction_id", t.ID.String()).Str("type", string(t.Type)).
				Msg("Skipping transaction with unknown type")
			continue
		}
		summary.TransactionCount++
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary
}

// GetReport builds the financial report for a user. Balance is always the
// all-time balance. With a month filter the totals, breakdown and count
// cover that month only and MonthlyBalance carries the period balance.
func (s *ReportService) GetReport(userID uuid.UUID, month string) (*domain.Report, error) {
	if month != "" && !util.ValidMonth(month) {
		return nil, domain.ErrInvalidMonth
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	allTime := Summarize(transactions, "")

	report := &domain.Report{
		TotalIncome:       allTime.TotalIncome,
		TotalExpense:      allTime.TotalExpense,
		Balance:           allTime.Balance,
		CategoryBreakdown: allTime.CategoryBreakdown,
		TransactionCount:  allTime.TransactionCount,
		SavingsVault:      user.SavingsVault,
	}

	if month != "" {
		period := Summarize(transactions, month)
		report.Month = &month
		report.TotalIncome = period.TotalIncome
		report.TotalExpense = period.TotalExpense
		report.MonthlyBalance = &period.Balance
		report.CategoryBreakdown = period.CategoryBreakdown
		report.TransactionCount = period.TransactionCount
	}

	return report, nil
}
