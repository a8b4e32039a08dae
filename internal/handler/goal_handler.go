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

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the create goal request body
type CreateGoalRequest struct {
	Name         string `json:"name"`
	TargetAmount string `json:"targetAmount"`
	Deadline     string `json:"deadline"`
	Currency     string `json:"currency,omitempty"`
}

// ContributeRequest represents the contribute request body
type ContributeRequest struct {
	Amount string `json:"amount"`
}

// GoalResponse represents a goal in API responses
type GoalResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
	Deadline      string `json:"deadline"`
	Currency      string `json:"currency"`
}

// GoalProgressResponse represents a goal with derived progress figures
type GoalProgressResponse struct {
	GoalResponse
	ProgressPercentage   string `json:"progressPercentage"`
	Remaining            string `json:"remaining"`
	DaysRemaining        int    `json:"daysRemaining"`
	DailySavingsRequired string `json:"dailySavingsRequired"`
}

// ContributionResponse represents a successful contribution
type ContributionResponse struct {
	Goal          GoalResponse `json:"goal"`
	NewGoalAmount string       `json:"newGoalAmount"`
	NewBalance    string       `json:"newBalance"`
}

// GoalDeletionResponse represents the outcome of closing a goal
type GoalDeletionResponse struct {
	Message        string `json:"message"`
	WasComplete    bool   `json:"wasComplete"`
	ReturnedAmount string `json:"returnedAmount"`
}

// CreateGoal creates a new savings goal
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	targetAmount, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		return NewValidationError(c, "Invalid target amount", []ValidationError{
			{Field: "targetAmount", Message: "Must be a valid decimal number"},
		})
	}

	goal, err := h.goalService.CreateGoal(userID, service.CreateGoalInput{
		Name:         req.Name,
		TargetAmount: targetAmount,
		Deadline:     req.Deadline,
		Currency:     req.Currency,
	})
	if err != nil {
		if validationErr := goalValidationError(c, err); validationErr != nil {
			return validationErr
		}
		log.Error().Err(err).Msg("Failed to create goal")
		return NewInternalError(c, "Failed to create goal")
	}

	return c.JSON(http.StatusCreated, goalToResponse(goal))
}

// GetGoals lists the user's goals with progress figures
func (h *GoalHandler) GetGoals(c echo.Context) error {
	userID := middleware.GetUserID(c)

	goals, err := h.goalService.GetUserGoals(userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get goals")
		return NewInternalError(c, "Failed to get goals")
	}

	response := make([]GoalProgressResponse, len(goals))
	for i, g := range goals {
		response[i] = GoalProgressResponse{
			GoalResponse:         goalToResponse(g.Goal),
			ProgressPercentage:   g.ProgressPercentage.StringFixed(2),
			Remaining:            g.Remaining.StringFixed(2),
			DaysRemaining:        g.DaysRemaining,
			DailySavingsRequired: g.DailySavingsRequired.StringFixed(2),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// Contribute moves money from the spendable balance into a goal
func (h *GoalHandler) Contribute(c echo.Context) error {
	userID := middleware.GetUserID(c)

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req ContributeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	result, err := h.goalService.Contribute(userID, goalID, amount)
	if err != nil {
		var insufficient *domain.InsufficientBalanceError
		switch {
		case errors.Is(err, domain.ErrGoalNotFound):
			return NewNotFoundError(c, "Goal not found")
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		case errors.As(err, &insufficient):
			return NewValidationError(c, insufficient.Error(), nil)
		case errors.Is(err, domain.ErrInconsistentLedger):
			log.Error().Err(err).Msg("Ledger inconsistency detected")
			return NewInternalError(c, "Ledger inconsistency detected")
		}
		log.Error().Err(err).Msg("Failed to contribute to goal")
		return NewInternalError(c, "Failed to contribute to goal")
	}

	return c.JSON(http.StatusOK, ContributionResponse{
		Goal:          goalToResponse(result.Goal),
		NewGoalAmount: result.NewGoalAmount.StringFixed(2),
		NewBalance:    result.NewBalance.StringFixed(2),
	})
}

// DeleteGoal closes a goal, refunding saved money unless marked completed
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	completed := c.QueryParam("completed") == "true"

	result, err := h.goalService.DeleteGoal(userID, goalID, completed)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		if errors.Is(err, domain.ErrInconsistentLedger) {
			log.Error().Err(err).Msg("Ledger inconsistency detected")
			return NewInternalError(c, "Ledger inconsistency detected")
		}
		log.Error().Err(err).Msg("Failed to delete goal")
		return NewInternalError(c, "Failed to delete goal")
	}

	return c.JSON(http.StatusOK, GoalDeletionResponse{
		Message:        result.Message,
		WasComplete:    result.WasComplete,
		ReturnedAmount: result.ReturnedAmount.StringFixed(2),
	})
}

func goalValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidTargetAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "targetAmount", Message: "Target amount must be positive"},
		})
	case errors.Is(err, domain.ErrInvalidDate):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "deadline", Message: "Must be in YYYY-MM-DD format"},
		})
	}
	return nil
}

func goalToResponse(g *domain.Goal) GoalResponse {
	return GoalResponse{
		ID:            g.ID.String(),
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.StringFixed(2),
		CurrentAmount: g.CurrentAmount.StringFixed(2),
		Deadline:      g.Deadline,
		Currency:      g.Currency,
	}
}
