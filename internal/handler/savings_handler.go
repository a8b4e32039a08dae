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

// SavingsHandler handles savings vault HTTP requests
type SavingsHandler struct {
	savingsService *service.SavingsService
}

// NewSavingsHandler creates a new SavingsHandler
func NewSavingsHandler(savingsService *service.SavingsService) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService}
}

// VaultRequest represents an add or withdraw request body
type VaultRequest struct {
	Amount string `json:"amount"`
}

// VaultResponse represents the vault balance after an operation
type VaultResponse struct {
	SavingsVault string `json:"savingsVault"`
}

// Add moves money into the savings vault
func (h *SavingsHandler) Add(c echo.Context) error {
	return h.apply(c, h.savingsService.Add)
}

// Withdraw moves money out of the savings vault
func (h *SavingsHandler) Withdraw(c echo.Context) error {
	return h.apply(c, h.savingsService.Withdraw)
}

func (h *SavingsHandler) apply(c echo.Context, op func(userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)) error {
	userID := middleware.GetUserID(c)

	var req VaultRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	vault, err := op(userID, amount)
	if err != nil {
		var insufficient *domain.InsufficientFundsError
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		case errors.As(err, &insufficient):
			return NewValidationError(c, insufficient.Error(), nil)
		case errors.Is(err, domain.ErrUserNotFound):
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Msg("Failed to update savings vault")
		return NewInternalError(c, "Failed to update savings vault")
	}

	return c.JSON(http.StatusOK, VaultResponse{SavingsVault: vault.StringFixed(2)})
}
