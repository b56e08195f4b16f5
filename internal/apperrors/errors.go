package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies an error class to API clients.
type ErrorCode string

// AppError is the application error type: a stable code, a
// human-readable message, optional structured details, an optional
// wrapped cause and the HTTP status it maps to.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails returns a copy carrying the given details, so the
// predefined errors stay immutable.
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithMessage returns a copy with the message replaced.
func (e *AppError) WithMessage(message string) *AppError {
	clone := *e
	clone.Message = message
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// AsAppError extracts an *AppError from the chain, if present.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Predefined errors.
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Users
	ErrUserNotFound       = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)
	ErrWeakPassword       = New(CodeWeakPassword, "Password must be at least 8 characters", http.StatusBadRequest)
	ErrEmailNotAllowed    = New(CodeInvalidEmail, "Only .edu and @uwaterloo.ca emails are allowed", http.StatusBadRequest)

	// Offers
	ErrOfferNotFound = New(CodeOfferNotFound, "Offer not found", http.StatusNotFound)

	// Submission pipeline. Bot rejections deliberately carry a bland
	// message; the actual signal is logged server-side only.
	ErrSubmissionRejected = New(CodeSubmissionRejected, "Submission could not be processed", http.StatusBadRequest)
	ErrMissingFingerprint = New(CodeMissingFingerprint, "Missing fingerprint", http.StatusBadRequest)

	// Offer verification
	ErrInvalidVerificationLink  = New(CodeInvalidVerificationLink, "Token and offer ID are required", http.StatusBadRequest)
	ErrInvalidVerificationToken = New(CodeInvalidVerificationToken, "Invalid verification token", http.StatusBadRequest)
	ErrAlreadyVerified          = New(CodeAlreadyVerified, "Offer already verified", http.StatusConflict)
	ErrEmailDomainNotAllowed    = New(CodeEmailDomainNotAllowed, "Only @uwaterloo.ca emails are allowed", http.StatusBadRequest)
	ErrDispatchFailed           = New(CodeDispatchFailed, "Offer saved, but the verification email could not be sent", http.StatusBadGateway)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// ValidationError creates a validation failure carrying field details.
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

// RateLimited creates the 429 error with the reported wait, in whole
// minutes until the window resets.
func RateLimited(retryAfterMinutes int) *AppError {
	return New(
		CodeRateLimited,
		fmt.Sprintf("Rate limit exceeded. Please try again in %d minutes.", retryAfterMinutes),
		http.StatusTooManyRequests,
	).WithDetails(map[string]int{"retry_after_minutes": retryAfterMinutes})
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}
