package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ledgerly/ledgerly-backend/internal/currency"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents the register request body
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Currency string `json:"currency,omitempty"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	Currency     string `json:"currency"`
	SavingsVault string `json:"savingsVault"`
	CreatedAt    string `json:"createdAt"`
}

// LoginResponse represents the login response body
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Register creates a new user account
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.authService.Register(service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Currency: req.Currency,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return NewConflictError(c, "Username or email is already taken")
		}
		if validationErr := registerValidationError(c, err); validationErr != nil {
			return validationErr
		}
		log.Error().Err(err).Msg("Failed to register user")
		return NewInternalError(c, "Failed to register user")
	}

	return c.JSON(http.StatusCreated, userToResponse(user))
}

// Login authenticates a user and issues a JWT
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return NewUnauthorizedError(c, "Invalid username or password")
		}
		log.Error().Err(err).Msg("Failed to log in user")
		return NewInternalError(c, "Failed to log in")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  userToResponse(user),
	})
}

func registerValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "username", Message: "Username is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "username", Message: "Username must be 50 characters or less"},
		})
	case errors.Is(err, currency.ErrUnsupportedCurrency):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "currency", Message: "Currency is not supported"},
		})
	}
	return nil
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		Currency:     user.Currency,
		SavingsVault: user.SavingsVault.StringFixed(2),
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
	}
}
