package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ledgerly/ledgerly-backend/internal/currency"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
	"github.com/ledgerly/ledgerly-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	Type        string `json:"type"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
	Currency    string `json:"currency,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	Category         string  `json:"category"`
	Amount           string  `json:"amount"`
	OriginalAmount   string  `json:"originalAmount"`
	OriginalCurrency string  `json:"originalCurrency"`
	Description      string  `json:"description,omitempty"`
	Date             string  `json:"date"`
	GoalID           *string `json:"goalId,omitempty"`
	CreatedAt        string  `json:"createdAt"`
}

// CreateTransaction records a new income or expense entry
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	transaction, err := h.transactionService.CreateTransaction(userID, service.CreateTransactionInput{
		Type:        domain.TransactionType(req.Type),
		Category:    req.Category,
		Amount:      amount,
		Description: req.Description,
		Date:        req.Date,
		Currency:    req.Currency,
	})
	if err != nil {
		if validationErr := transactionValidationError(c, err); validationErr != nil {
			return validationErr
		}
		log.Error().Err(err).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	return c.JSON(http.StatusCreated, transactionToResponse(transaction))
}

// GetTransactions lists the user's transactions, newest first
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)

	transactions, err := h.transactionService.GetTransactions(userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get transactions")
		return NewInternalError(c, "Failed to get transactions")
	}

	response := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		response[i] = transactionToResponse(t)
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteTransaction removes a manually created transaction
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(userID, id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		if errors.Is(err, domain.ErrGoalManagedTransaction) {
			return NewConflictError(c, "Transaction belongs to a goal; close the goal instead")
		}
		log.Error().Err(err).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	return c.NoContent(http.StatusNoContent)
}

func transactionValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTransactionType):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Must be one of: income, expense"},
		})
	case errors.Is(err, domain.ErrCategoryRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Category is required"},
		})
	case errors.Is(err, domain.ErrCategoryTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Category must be 100 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 500 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidDate):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	case errors.Is(err, currency.ErrUnsupportedCurrency):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "currency", Message: "Currency is not supported"},
		})
	}
	return nil
}

func transactionToResponse(t *domain.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:               t.ID.String(),
		Type:             string(t.Type),
		Category:         t.Category,
		Amount:           t.Amount.StringFixed(2),
		OriginalAmount:   t.OriginalAmount.StringFixed(2),
		OriginalCurrency: t.OriginalCurrency,
		Description:      t.Description,
		Date:             t.Date,
		CreatedAt:        t.CreatedAt.Format(time.RFC3339),
	}
	if t.GoalID != nil {
		goalID := t.GoalID.String()
		response.GoalID = &goalID
	}
	return response
}
