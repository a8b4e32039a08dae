package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
	"github.com/ledgerly/ledgerly-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetBudgetRequest represents the set budget request body
type SetBudgetRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Month    string `json:"month,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Month    string `json:"month"`
	Currency string `json:"currency"`
}

// BudgetStatusResponse represents one category's budget standing
type BudgetStatusResponse struct {
	Category   string `json:"category"`
	Budget     string `json:"budget"`
	Spent      string `json:"spent"`
	Remaining  string `json:"remaining"`
	Percentage string `json:"percentage"`
	Status     string `json:"status"`
	Currency   string `json:"currency"`
}

// BudgetStatusReport represents the budget status response body
type BudgetStatusReport struct {
	Statuses []BudgetStatusResponse `json:"statuses"`
	Alerts   []BudgetStatusResponse `json:"alerts"`
}

// SetBudget creates or replaces the budget for a category and month
func (h *BudgetHandler) SetBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.SetBudget(userID, service.SetBudgetInput{
		Category: req.Category,
		Amount:   amount,
		Month:    req.Month,
		Currency: req.Currency,
	})
	if err != nil {
		if validationErr := budgetValidationError(c, err); validationErr != nil {
			return validationErr
		}
		log.Error().Err(err).Msg("Failed to set budget")
		return NewInternalError(c, "Failed to set budget")
	}

	return c.JSON(http.StatusOK, budgetToResponse(budget))
}

// GetBudgets lists budgets, optionally filtered by the ?month query parameter
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	userID := middleware.GetUserID(c)
	month := c.QueryParam("month")

	budgets, err := h.budgetService.GetBudgets(userID, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Must be in YYYY-MM format"},
			})
		}
		log.Error().Err(err).Msg("Failed to get budgets")
		return NewInternalError(c, "Failed to get budgets")
	}

	response := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		response[i] = budgetToResponse(b)
	}
	return c.JSON(http.StatusOK, response)
}

// GetBudgetStatus reports spending against each budget for a month
func (h *BudgetHandler) GetBudgetStatus(c echo.Context) error {
	userID := middleware.GetUserID(c)
	month := c.QueryParam("month")

	statuses, alerts, err := h.budgetService.GetBudgetStatus(userID, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Must be in YYYY-MM format"},
			})
		}
		log.Error().Err(err).Msg("Failed to get budget status")
		return NewInternalError(c, "Failed to get budget status")
	}

	report := BudgetStatusReport{
		Statuses: make([]BudgetStatusResponse, len(statuses)),
		Alerts:   make([]BudgetStatusResponse, len(alerts)),
	}
	for i, s := range statuses {
		report.Statuses[i] = budgetStatusToResponse(s)
	}
	for i, a := range alerts {
		report.Alerts[i] = budgetStatusToResponse(a)
	}
	return c.JSON(http.StatusOK, report)
}

// DeleteBudget removes a budget
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(userID, id); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	return c.NoContent(http.StatusNoContent)
}

func budgetValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrCategoryRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Category is required"},
		})
	case errors.Is(err, domain.ErrCategoryTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Category must be 100 characters or less"},
		})
	case errors.Is(err, domain.ErrNegativeAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must not be negative"},
		})
	case errors.Is(err, domain.ErrInvalidMonth):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "month", Message: "Must be in YYYY-MM format"},
		})
	}
	return nil
}

func budgetToResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:       b.ID.String(),
		Category: b.Category,
		Amount:   b.Amount.StringFixed(2),
		Month:    b.Month,
		Currency: b.Currency,
	}
}

func budgetStatusToResponse(s *domain.BudgetStatus) BudgetStatusResponse {
	return BudgetStatusResponse{
		Category:   s.Category,
		Budget:     s.Budget.StringFixed(2),
		Spent:      s.Spent.StringFixed(2),
		Remaining:  s.Remaining.StringFixed(2),
		Percentage: s.Percentage.StringFixed(2),
		Status:     string(s.Status),
		Currency:   s.Currency,
	}
}
