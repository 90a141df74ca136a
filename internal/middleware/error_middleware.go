package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/pkg/apperrors"
	"github.com/ignitte/induction/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the uniform response
// envelope. Sentinel errors pick the status code; a CustomError
// wrapper supplies the user-facing message when present.
func HandleAPIError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		statusCode = http.StatusBadRequest
		message = "Validation failed"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = "Invalid credentials"
	case errors.Is(err, apperrors.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		message = "Token expired"
	case errors.Is(err, apperrors.ErrTokenInvalid):
		statusCode = http.StatusUnauthorized
		message = "Invalid token"
	case errors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = "Authentication required"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		statusCode = http.StatusForbidden
		message = "Permission denied"
	case errors.Is(err, apperrors.ErrResourceNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case errors.Is(err, apperrors.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "User not found"
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		statusCode = http.StatusNotFound
		message = "Application not found"
	case errors.Is(err, apperrors.ErrTaskNotFound):
		statusCode = http.StatusNotFound
		message = "Task not found"
	case errors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		message = "Resource already exists"
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		statusCode = http.StatusConflict
		message = "User with this email already exists"
	case errors.Is(err, apperrors.ErrPhoneAlreadyExists):
		statusCode = http.StatusConflict
		message = "User with this phone number already exists"
	case errors.Is(err, apperrors.ErrApplicationExists):
		statusCode = http.StatusConflict
		message = "You have already submitted an application"
	}

	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		message = customErr.Message
	}

	if statusCode == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
	}

	c.JSON(statusCode, dto.NewAPIError(statusCode, message))
}
