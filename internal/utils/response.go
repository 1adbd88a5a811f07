// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func SuccessMessageResponse(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

func PaginatedResponse(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, APIResponse{
		Success:    true,
		Data:       data,
		Pagination: &pagination,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
	})
}

func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}
	ErrorResponse(c, http.StatusUnauthorized, message)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "access denied"
	}
	ErrorResponse(c, http.StatusForbidden, message)
}

func NotFoundResponse(c *gin.Context, message string) {
	if message == "" {
		message = "resource not found"
	}
	ErrorResponse(c, http.StatusNotFound, message)
}

func InternalErrorResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, "internal server error")
}

// HandleServiceError maps the service error taxonomy onto HTTP statuses.
// Unexpected errors are logged with their cause and returned as a generic
// 500; driver messages never reach the client.
func HandleServiceError(c *gin.Context, err error) {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		BadRequestResponse(c, ve.Message)
	case errors.Is(err, apperrors.ErrUnauthenticated):
		UnauthorizedResponse(c, "")
	case errors.Is(err, apperrors.ErrForbidden):
		ForbiddenResponse(c, "")
	case errors.Is(err, apperrors.ErrNotFound):
		NotFoundResponse(c, "")
	case errors.Is(err, apperrors.ErrConflict):
		// The wire contract reports duplicate-key conflicts as 400.
		BadRequestResponse(c, err.Error())
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		ErrorResponse(c, http.StatusBadGateway, "upstream service unavailable")
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled service error")
		InternalErrorResponse(c)
	}
}

// Context helpers for the principal attached by the auth middleware.

func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

func GetAdminIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get("admin_id")
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}
