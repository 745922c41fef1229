package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches by code so wrapped copies of a taxonomy error compare equal.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// Taxonomy errors. Services return these directly or wrapped; the HTTP
// middleware maps them to responses by code and status.
var (
	ErrInvalidCredentials  = NewDomainError("INVALID_CREDENTIALS", "invalid credentials", http.StatusUnauthorized, nil)
	ErrTokenInvalid        = NewDomainError("TOKEN_INVALID", "invalid token", http.StatusUnauthorized, nil)
	ErrTokenExpired        = NewDomainError("TOKEN_EXPIRED", "token expired", http.StatusUnauthorized, nil)
	ErrTokenMalformed      = NewDomainError("TOKEN_MALFORMED", "malformed token claims", http.StatusUnauthorized, nil)
	ErrInsufficientRole    = NewDomainError("INSUFFICIENT_ROLE", "insufficient role", http.StatusForbidden, nil)
	ErrNoValidInvite       = NewDomainError("NO_VALID_INVITE", "no valid invite for this email", http.StatusForbidden, nil)
	ErrInviteExists        = NewDomainError("INVITE_ALREADY_EXISTS", "an invite already exists for this email", http.StatusConflict, nil)
	ErrNoSuchInvite        = NewDomainError("NO_SUCH_INVITE", "invite not found", http.StatusNotFound, nil)
	ErrConflictingEmail    = NewDomainError("CONFLICTING_EMAIL", "email already registered", http.StatusConflict, nil)
	ErrUserNotFound        = NewDomainError("USER_NOT_FOUND", "user not found", http.StatusNotFound, nil)
	ErrConfigMissing       = NewDomainError("CONFIGURATION_MISSING", "required configuration missing", http.StatusInternalServerError, nil)
	ErrProviderExchange    = NewDomainError("PROVIDER_EXCHANGE_FAILED", "authentication failed", http.StatusBadGateway, nil)
	ErrStoreUnavailable    = NewDomainError("STORE_UNAVAILABLE", "storage unavailable", http.StatusServiceUnavailable, nil)
	ErrMissingParameters   = NewDomainError("MISSING_PARAMETERS", "missing required parameters", http.StatusBadRequest, nil)
	ErrPartialRegistration = NewDomainError("PARTIAL_REGISTRATION", "user created but invite completion failed", http.StatusInternalServerError, nil)
)

// Wrap attaches a cause to a taxonomy error without changing its identity.
// The cause is kept for logs; the rendered message stays generic so internal
// detail (provider responses, store errors) never reaches the client.
func Wrap(base *DomainError, err error) *DomainError {
	return &DomainError{
		Code:       base.Code,
		Message:    base.Message,
		HTTPStatus: base.HTTPStatus,
		Details:    base.Details,
		Err:        err,
	}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
