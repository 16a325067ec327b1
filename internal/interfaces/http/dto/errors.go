package dto

import (
	"errors"
	"net/http"

	"github.com/erp/addrconfirm/internal/domain/shared"
)

// ErrCodeInternal is the code reported for errors without a domain kind.
const ErrCodeInternal = "InternalError"

// DetailedErrorResponse is the REST error body. The innererror chain
// mirrors the wrapped causes of the error, outermost first.
type DetailedErrorResponse struct {
	Status     int                    `json:"status"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	InnerError *DetailedErrorResponse `json:"innererror,omitempty"`
}

// NewDetailedErrorResponse builds the error body for err, walking its
// Unwrap chain into nested innererror nodes.
func NewDetailedErrorResponse(status int, err error) DetailedErrorResponse {
	response := DetailedErrorResponse{
		Status:  status,
		Code:    errorCode(err),
		Message: err.Error(),
	}

	if cause := errors.Unwrap(err); cause != nil {
		inner := NewDetailedErrorResponse(status, cause)
		response.InnerError = &inner
	}
	return response
}

// StatusForError maps an error to the HTTP status the REST API reports.
func StatusForError(err error) int {
	switch {
	case shared.IsKind(err, shared.KindSecurity):
		return http.StatusUnauthorized
	case shared.IsKind(err, shared.KindValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorCode looks at the node itself, not the whole chain: a plain
// cause below a domain error must not inherit the outer kind.
func errorCode(err error) string {
	if domainErr, ok := err.(*shared.Error); ok {
		return domainErr.Kind
	}
	return ErrCodeInternal
}
