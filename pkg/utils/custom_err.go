package utils

import "errors"

var (
	ErrDatabaseError      = errors.New("database error")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrPendingApproval    = errors.New("account pending approval")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidCode        = errors.New("verification code is invalid")
	ErrExpiredCode        = errors.New("verification code has expired")
	ErrInvalidResetToken  = errors.New("password reset token is invalid")
	ErrExpiredResetToken  = errors.New("password reset token has expired")
	ErrSelfAction         = errors.New("cannot perform this action on your own account")
)

// ValidationError carries the first failing policy check so handlers can
// surface it as field-level detail on a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
