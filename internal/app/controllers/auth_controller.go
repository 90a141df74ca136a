// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/app/services"
	"github.com/ignitte/induction/internal/middleware"
	"github.com/ignitte/induction/internal/pkg/auth"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService   services.AuthService
	jwtService    *auth.JWTService
	secureCookies bool
	logger        zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, jwtService *auth.JWTService, secureCookies bool, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:   authService,
		jwtService:    jwtService,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// setTokenCookies writes the httpOnly token cookies. Both live for
// the refresh window; the access token inside simply expires sooner.
func (c *AuthController) setTokenCookies(ctx *gin.Context, accessToken, refreshToken string) {
	maxAge := c.jwtService.RefreshTokenMaxAge()
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie("accessToken", accessToken, maxAge, "/", "", c.secureCookies, true)
	ctx.SetCookie("refreshToken", refreshToken, maxAge, "/", "", c.secureCookies, true)
}

func (c *AuthController) clearTokenCookies(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie("accessToken", "", -1, "/", "", c.secureCookies, true)
	ctx.SetCookie("refreshToken", "", -1, "/", "", c.secureCookies, true)
}

// Register handles user registration
// @Summary Register a new student
// @Description Creates a new student account and signs the user in
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "User registered successfully"
// @Failure 400 {object} dto.APIErrorResponse "Invalid request format or validation error"
// @Failure 409 {object} dto.APIErrorResponse "Email already exists"
// @Failure 500 {object} dto.APIErrorResponse "Internal server error"
// @Router /users/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid request format", err.Error()))
		return
	}

	result, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", result.User.ID).Str("email", result.User.Email).Msg("User registered")

	c.setTokenCookies(ctx, result.AccessToken, result.RefreshToken)
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(http.StatusCreated, result, "User registered successfully"))
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user and sets the token cookies
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.APIErrorResponse "Invalid request format"
// @Failure 401 {object} dto.APIErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.APIErrorResponse "Internal server error"
// @Router /users/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid request format", err.Error()))
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", result.User.ID).Msg("User logged in")

	c.setTokenCookies(ctx, result.AccessToken, result.RefreshToken)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, result, "Login successful"))
}

// Logout clears the session
// @Summary User logout
// @Description Clears the token cookies and revokes the stored refresh token
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse "Logged out successfully"
// @Failure 401 {object} dto.APIErrorResponse "Authentication required"
// @Router /users/logout [post]
// @Security BearerAuth
func (c *AuthController) Logout(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	if err := c.authService.Logout(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.clearTokenCookies(ctx)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, nil, "Logged out successfully"))
}

// RefreshToken rotates the token pair
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token for a new token pair. The token is read from the refreshToken cookie or the request body.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "Refresh token (optional when the cookie is present)"
// @Success 200 {object} dto.APIResponse{data=dto.TokenPair} "Tokens refreshed"
// @Failure 401 {object} dto.APIErrorResponse "Invalid or expired refresh token"
// @Router /users/refresh-token [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	refreshToken, _ := ctx.Cookie("refreshToken")
	if refreshToken == "" {
		var req dto.RefreshTokenRequest
		if err := ctx.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		ctx.JSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Refresh token required"))
		return
	}

	pair, err := c.authService.Refresh(ctx.Request.Context(), refreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setTokenCookies(ctx, pair.AccessToken, pair.RefreshToken)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, pair, "Tokens refreshed"))
}

// Me returns the authenticated user's profile
// @Summary Current user
// @Description Returns the profile of the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.User} "Current user"
// @Failure 401 {object} dto.APIErrorResponse "Authentication required"
// @Router /users/me [get]
// @Security BearerAuth
func (c *AuthController) Me(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Authentication required"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, user, "Current user"))
}

// ChangePassword updates the authenticated user's password
// @Summary Change password
// @Description Verifies the old password and replaces it with a new one
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.APIResponse "Password changed successfully"
// @Failure 400 {object} dto.APIErrorResponse "Invalid request format or weak password"
// @Failure 401 {object} dto.APIErrorResponse "Old password incorrect"
// @Router /users/change-password [post]
// @Security BearerAuth
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid request format", err.Error()))
		return
	}

	userID := ctx.GetInt64("userID")
	if err := c.authService.ChangePassword(ctx.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Msg("Password changed")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, nil, "Password changed successfully"))
}
