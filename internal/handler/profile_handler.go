package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ledgerly/ledgerly-backend/internal/currency"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
	"github.com/ledgerly/ledgerly-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// ProfileHandler handles profile HTTP requests for the authenticated user
type ProfileHandler struct {
	authService *service.AuthService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

// UpdateFullNameRequest represents the update name request body
type UpdateFullNameRequest struct {
	FullName string `json:"fullName"`
}

// UpdatePasswordRequest represents the change password request body
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateCurrencyRequest represents the change currency request body
type UpdateCurrencyRequest struct {
	Currency string `json:"currency"`
}

// GetProfile returns the authenticated user's profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Msg("Failed to get profile")
		return NewInternalError(c, "Failed to get profile")
	}

	return c.JSON(http.StatusOK, userToResponse(user))
}

// UpdateFullName changes the authenticated user's display name
func (h *ProfileHandler) UpdateFullName(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req UpdateFullNameRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.authService.UpdateFullName(userID, req.FullName)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "fullName", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "fullName", Message: "Name must be 255 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Msg("Failed to update name")
		return NewInternalError(c, "Failed to update name")
	}

	return c.JSON(http.StatusOK, userToResponse(user))
}

// UpdatePassword changes the authenticated user's password
func (h *ProfileHandler) UpdatePassword(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.authService.UpdatePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return NewUnauthorizedError(c, "Current password is incorrect")
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Msg("Failed to update password")
		return NewInternalError(c, "Failed to update password")
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateCurrency changes the authenticated user's home currency
func (h *ProfileHandler) UpdateCurrency(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req UpdateCurrencyRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.authService.UpdateCurrency(userID, req.Currency)
	if err != nil {
		if errors.Is(err, currency.ErrUnsupportedCurrency) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "currency", Message: "Currency is not supported"},
			})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Msg("Failed to update currency")
		return NewInternalError(c, "Failed to update currency")
	}

	return c.JSON(http.StatusOK, userToResponse(user))
}
