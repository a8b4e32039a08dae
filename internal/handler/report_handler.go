package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
	"github.com/ledgerly/ledgerly-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// ReportHandler handles financial report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportResponse represents a financial report in API responses
type ReportResponse struct {
	Month             *string           `json:"month,omitempty"`
	TotalIncome       string            `json:"totalIncome"`
	TotalExpense      string            `json:"totalExpense"`
	Balance           string            `json:"balance"`
	MonthlyBalance    *string           `json:"monthlyBalance,omitempty"`
	CategoryBreakdown map[string]string `json:"categoryBreakdown"`
	TransactionCount  int               `json:"transactionCount"`
	SavingsVault      string            `json:"savingsVault"`
}

// GetReport returns income, expense, and balance totals, optionally scoped
// to one month via the ?month=YYYY-MM query parameter
func (h *ReportHandler) GetReport(c echo.Context) error {
	userID := middleware.GetUserID(c)
	month := c.QueryParam("month")

	report, err := h.reportService.GetReport(userID, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Must be in YYYY-MM format"},
			})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Msg("Failed to build report")
		return NewInternalError(c, "Failed to build report")
	}

	breakdown := make(map[string]string, len(report.CategoryBreakdown))
	for category, total := range report.CategoryBreakdown {
		breakdown[category] = total.StringFixed(2)
	}

	response := ReportResponse{
		Month:             report.Month,
		TotalIncome:       report.TotalIncome.StringFixed(2),
		TotalExpense:      report.TotalExpense.StringFixed(2),
		Balance:           report.Balance.StringFixed(2),
		CategoryBreakdown: breakdown,
		TransactionCount:  report.TransactionCount,
		SavingsVault:      report.SavingsVault.StringFixed(2),
	}
	if report.MonthlyBalance != nil {
		monthly := report.MonthlyBalance.StringFixed(2)
		response.MonthlyBalance = &monthly
	}

	return c.JSON(http.StatusOK, response)
}
