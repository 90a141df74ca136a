package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/pkg/apperrors"
	"github.com/ignitte/induction/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		AccessSecret:    "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 168 * time.Hour,
		TokenIssuer:     "test",
	})
}

func newTestAuthService(users *fakeUserStore) AuthService {
	return NewAuthService(users, newTestJWTService(), zerolog.Nop())
}

func validRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FullName:   "Asha Verma",
		Email:      "asha@example.com",
		Password:   "secret123",
		Department: "CSE",
		Phone:      "9876543210",
		RollNumber: "21CS042",
	}
}

func TestRegister(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	result, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	require.NotNil(t, result.User)

	assert.Equal(t, models.RoleStudent, result.User.Role)
	assert.NotEqual(t, "secret123", result.User.Password, "password must be stored hashed")
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	require.NotNil(t, result.User.RollNumber)
	assert.Equal(t, "21CS042", *result.User.RollNumber)

	stored, err := users.GetUserByID(context.Background(), result.User.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, result.RefreshToken, *stored.RefreshToken)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	req := validRegisterRequest()
	req.Email = "  Asha@Example.COM "

	result, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", result.User.Email)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *dto.RegisterRequest)
	}{
		{"missing name", func(req *dto.RegisterRequest) { req.FullName = "" }},
		{"name too short", func(req *dto.RegisterRequest) { req.FullName = "Al" }},
		{"missing email", func(req *dto.RegisterRequest) { req.Email = "" }},
		{"invalid email", func(req *dto.RegisterRequest) { req.Email = "not-an-email" }},
		{"short password", func(req *dto.RegisterRequest) { req.Password = "12345" }},
		{"short phone", func(req *dto.RegisterRequest) { req.Phone = "12345" }},
		{"non-numeric phone", func(req *dto.RegisterRequest) { req.Phone = "98765abcde" }},
		{"missing department", func(req *dto.RegisterRequest) { req.Department = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(newFakeUserStore())
			req := validRegisterRequest()
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestLogin(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshRotatesTokens(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	pair, err := svc.Refresh(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	stored, err := users.GetUserByID(context.Background(), registered.User.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, pair.RefreshToken, *stored.RefreshToken)
}

func TestRefreshRejectsReplacedToken(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	// A second login replaces the stored refresh token, so the first
	// one must no longer refresh.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestRefreshAfterLogout(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), registered.User.ID))

	_, err = svc.Refresh(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestChangePassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), registered.User.ID, "secret123", "newsecret456")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "newsecret456",
	})
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), registered.User.ID, "wrong-password", "newsecret456")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestChangePasswordWeakNewPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), registered.User.ID, "secret123", "123")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
