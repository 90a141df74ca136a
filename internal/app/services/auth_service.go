package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/pkg/apperrors"
	"github.com/ignitte/induction/internal/pkg/auth"
)

var (
	emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)
)

// AuthService handles registration, login and token lifecycle
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, userID int64) error
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
}

type authService struct {
	users      UserStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return apperrors.NewValidationError("Please provide a valid email")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return apperrors.NewValidationError("Password must be at least 6 characters")
	}
	return nil
}

// issueTokens mints a fresh access/refresh pair and persists the
// refresh token on the user record, invalidating any prior one.
func (s *authService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, fmt.Errorf("error persisting refresh token: %w", err)
	}

	return &dto.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Register creates a student account and logs it in.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	department := strings.TrimSpace(req.Department)
	phone := strings.TrimSpace(req.Phone)

	if fullName == "" || email == "" || req.Password == "" || department == "" || phone == "" {
		return nil, apperrors.NewValidationError("All fields are required")
	}
	if len(fullName) < 3 || len(fullName) > 50 {
		return nil, apperrors.NewValidationError("Name must be between 3 and 50 characters")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	if !phoneRegex.MatchString(phone) {
		return nil, apperrors.NewValidationError("Please provide a valid 10-digit phone number")
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("User with this email already exists")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		FullName:   fullName,
		Email:      email,
		Password:   hashedPassword,
		Role:       models.RoleStudent,
		Department: department,
		Phone:      phone,
	}
	if rollNumber := strings.TrimSpace(req.RollNumber); rollNumber != "" {
		user.RollNumber = &rollNumber
	}

	if _, err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("User registered")

	return &dto.AuthResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Login authenticates an existing user.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")

	return &dto.AuthResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout clears the stored refresh token so no further refresh is
// possible with previously issued tokens.
func (s *authService) Logout(ctx context.Context, userID int64) error {
	if err := s.users.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", userID).Msg("User logged out")
	return nil
}

// Refresh rotates a refresh token into a new access/refresh pair. The
// incoming token must both verify and match the stored value on the
// user; anything else is treated as expired or already used.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, apperrors.ErrTokenInvalid
	}

	return s.issueTokens(ctx, user)
}

// ChangePassword re-hashes the user's password after verifying the
// current one.
func (s *authService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, oldPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Msg("Password changed")
	return nil
}
