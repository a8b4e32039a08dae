package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/currency"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// AuthService handles registration, login and profile updates.
type AuthService struct {
	userRepo        domain.UserRepository
	jwtSecret       []byte
	defaultCurrency string
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, jwtSecret []byte, defaultCurrency string) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		jwtSecret:       jwtSecret,
		defaultCurrency: defaultCurrency,
	}
}

// RegisterInput holds the input for registering a user
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Currency string
}

// Register creates a user profile with a hashed password and an empty
// savings vault.
func (s *AuthService) Register(input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, domain.ErrNameRequired
	}
	if len(username) > domain.MaxUsernameLength {
		return nil, domain.ErrNameTooLong
	}

	fullName := strings.TrimSpace(input.FullName)
	if len(fullName) > domain.MaxFullNameLength {
		return nil, domain.ErrNameTooLong
	}

	userCurrency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if userCurrency == "" {
		userCurrency = s.defaultCurrency
	}
	if !currency.Supported(userCurrency) {
		return nil, currency.ErrUnsupportedCurrency
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.userRepo.Create(&domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		FullName:     fullName,
		PasswordHash: string(hash),
		Currency:     userCurrency,
		SavingsVault: decimal.Zero,
	})
}

// Login verifies credentials and returns the user with a signed token.
func (s *AuthService) Login(username, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// GetProfile returns a user profile by id.
func (s *AuthService) GetProfile(userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateFullName changes the display name.
func (s *AuthService) UpdateFullName(userID uuid.UUID, fullName string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, domain.ErrNameRequired
	}
	if len(fullName) > domain.MaxFullNameLength {
		return nil, domain.ErrNameTooLong
	}
	return s.userRepo.UpdateFullName(userID, fullName)
}

// UpdatePassword verifies the current password before storing a new hash.
func (s *AuthService) UpdatePassword(userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePasswordHash(userID, string(hash))
}

// UpdateCurrency changes the user's home currency. Stored transaction
// amounts are not rewritten; the new currency applies to entries from now
// on.
func (s *AuthService) UpdateCurrency(userID uuid.UUID, code string) (*domain.User, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !currency.Supported(code) {
		return nil, currency.ErrUnsupportedCurrency
	}
	return s.userRepo.UpdateCurrency(userID, code)
}
