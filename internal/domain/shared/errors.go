package shared

import "errors"

// Error kind names. They double as the "code" field of REST error
// responses, so they are spelled the way clients see them.
const (
	KindSecurity   = "SecurityError"
	KindRepository = "RepositoryError"
	KindMailing    = "MailingError"
	KindValidation = "ValidationError"
)

// Error is a domain-level error with a kind, a human-readable message and
// an optional wrapped cause. Causes are surfaced to REST clients as the
// recursive "innererror" chain.
type Error struct {
	Kind    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the cause for errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewSecurityError creates an error for token decode, expiry and key
// handling failures. Surfaced to HTTP callers as 401.
func NewSecurityError(message string, cause error) *Error {
	return &Error{Kind: KindSecurity, Message: message, Cause: cause}
}

// NewRepositoryError creates an error for ERP read/write failures.
// Surfaced to HTTP callers as 500 and propagated to event callers.
func NewRepositoryError(message string, cause error) *Error {
	return &Error{Kind: KindRepository, Message: message, Cause: cause}
}

// NewMailingError creates an error for template or mail transport
// failures. Absorbed by the confirmation workflow, never surfaced.
func NewMailingError(message string, cause error) *Error {
	return &Error{Kind: KindMailing, Message: message, Cause: cause}
}

// NewValidationError creates an error for malformed inbound payloads.
func NewValidationError(message string, cause error) *Error {
	return &Error{Kind: KindValidation, Message: message, Cause: cause}
}

// IsKind reports whether err is (or wraps) a domain Error of the given kind.
func IsKind(err error, kind string) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Kind == kind
}
