package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newAuthFixture() (*AuthService, *testutil.MockUserRepository) {
	userRepo := testutil.NewMockUserRepository()
	return NewAuthService(userRepo, testSecret, "PKR"), userRepo
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.Register(RegisterInput{
		Username: "sana",
		Email:    "sana@example.com",
		Password: "secret123",
		FullName: "Sana Khan",
	})
	require.NoError(t, err)

	assert.Equal(t, "sana", user.Username)
	assert.Equal(t, "PKR", user.Currency, "currency defaults to the configured one")
	assert.True(t, user.SavingsVault.IsZero())
	assert.NotEqual(t, "secret123", user.PasswordHash, "password must be hashed")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(RegisterInput{Username: "sana", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Username: "sana", Email: "b@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestRegister_UnsupportedCurrency(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(RegisterInput{Username: "sana", Email: "a@example.com", Password: "secret123", Currency: "XYZ"})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture()

	registered, err := svc.Register(RegisterInput{Username: "sana", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	user, token, err := svc.Login("sana", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// The token must carry the user ID as its subject
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) { return testSecret, nil })
	require.NoError(t, err)
	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, registered.ID.String(), sub)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(RegisterInput{Username: "sana", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Login("sana", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newAuthFixture()

	_, _, err := svc.Login("ghost", "secret123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdatePassword(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.Register(RegisterInput{Username: "sana", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(user.ID, "secret123", "newsecret"))

	_, _, err = svc.Login("sana", "secret123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, _, err = svc.Login("sana", "newsecret")
	assert.NoError(t, err)
}

func TestUpdatePassword_WrongCurrent(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.Register(RegisterInput{Username: "sana", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	err = svc.UpdatePassword(user.ID, "wrong", "newsecret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateCurrency(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.Register(RegisterInput{Username: "sana", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	updated, err := svc.UpdateCurrency(user.ID, "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", updated.Currency)

	_, err = svc.UpdateCurrency(user.ID, "XYZ")
	assert.Error(t, err)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.GetProfile(uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
