package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/pkg/auth"
)

// UserResolver looks up the authenticated user behind a token.
type UserResolver interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   UserResolver
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo UserResolver) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// JWTAuth validates the access token and loads the current user into
// the request context. The token is read from the accessToken cookie
// first, falling back to the Authorization header for API clients.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("accessToken")
		if err != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Authentication required"))
				return
			}
			tokenString, err = auth.ExtractBearerToken(authHeader)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Invalid token format"))
				return
			}
		}

		claims, err := m.jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, message))
			return
		}

		// Resolve the user on every request so deleted accounts and
		// role changes take effect without waiting for token expiry.
		user, err := m.userRepo.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "User no longer exists"))
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Set("role", string(user.Role))

		c.Next()
	}
}

// RoleRequired checks that the authenticated user has the given role.
// Must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(requiredRole models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Authentication required"))
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != string(requiredRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewAPIError(http.StatusForbidden, "You don't have sufficient permissions for this operation"))
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user loaded by JWTAuth, or nil when the
// request is unauthenticated.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
