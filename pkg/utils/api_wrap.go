package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// RespondErrorData is for error responses that carry extra flags the client
// acts on, e.g. requiresVerification on a login rejection.
func RespondErrorData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

// HandleServiceError translates service sentinels into HTTP responses.
// Flows that need bespoke payloads (login gating flags) handle those
// sentinels before falling back here.
func HandleServiceError(c *gin.Context, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		RespondError(c, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "An account with this email already exists")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Email or password is incorrect")
	case errors.Is(err, ErrWrongPassword):
		RespondError(c, http.StatusUnauthorized, "Current password is incorrect")
	case errors.Is(err, ErrAlreadyVerified):
		RespondError(c, http.StatusBadRequest, "Email is already verified")
	case errors.Is(err, ErrInvalidCode):
		RespondError(c, http.StatusBadRequest, "Verification code is invalid")
	case errors.Is(err, ErrExpiredCode):
		RespondError(c, http.StatusBadRequest, "Verification code has expired. Please request a new one.")
	case errors.Is(err, ErrInvalidResetToken):
		RespondError(c, http.StatusBadRequest, "Password reset token is invalid or has already been used")
	case errors.Is(err, ErrExpiredResetToken):
		RespondError(c, http.StatusBadRequest, "Password reset token has expired. Please request a new one.")
	case errors.Is(err, ErrSelfAction):
		RespondError(c, http.StatusBadRequest, "Cannot perform this action on your own account")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
