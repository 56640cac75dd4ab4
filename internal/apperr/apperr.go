// Package apperr defines the API error taxonomy and maps it onto HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Code is a stable, machine readable error identifier.
type Code string

const (
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeForbidden     Code = "FORBIDDEN"
	CodeBadRequest    Code = "BAD_REQUEST"
	CodeInvalidID     Code = "INVALID_ID"
	CodeTooLarge      Code = "PAYLOAD_TOO_LARGE"
	CodeStoreFailure  Code = "STORE_FAILURE"
	CodeUploadFailure Code = "UPLOAD_FAILED"
	CodeInternal      Code = "INTERNAL_ERROR"
)

// Error is returned by services and handlers for every failure that reaches the client.
type Error struct {
	Code      Code      `json:"error"`
	Status    int       `json:"-"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	cause     error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(code Code, status int, message, details string, cause error) *Error {
	return &Error{
		Code:      code,
		Status:    status,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewUnauthorized reports a missing, malformed or expired credential.
func NewUnauthorized(details string) *Error {
	return newError(CodeUnauthorized, http.StatusUnauthorized, "unauthorized access", details, nil)
}

// NewForbidden reports an identity mismatch on an ownership check.
func NewForbidden(details string) *Error {
	return newError(CodeForbidden, http.StatusForbidden, "forbidden access", details, nil)
}

func NewBadRequest(details string) *Error {
	return newError(CodeBadRequest, http.StatusBadRequest, "invalid request", details, nil)
}

// NewPayloadTooLarge reports a body over the configured size limit.
func NewPayloadTooLarge(limit int64) *Error {
	return newError(CodeTooLarge, http.StatusRequestEntityTooLarge, "request body too large",
		fmt.Sprintf("limit: %d bytes", limit), nil)
}

// NewInvalidID reports a path identifier that is not a well formed id.
func NewInvalidID(id string) *Error {
	return newError(CodeInvalidID, http.StatusBadRequest, "invalid id", fmt.Sprintf("id: %q", id), nil)
}

// NewStoreFailure wraps a database error raised while running op.
func NewStoreFailure(op string, err error) *Error {
	return newError(CodeStoreFailure, http.StatusInternalServerError, "store operation failed",
		fmt.Sprintf("op: %s, error: %s", op, err.Error()), err)
}

// NewUploadFailure wraps a media host rejection or transport failure.
func NewUploadFailure(err error) *Error {
	return newError(CodeUploadFailure, http.StatusBadGateway, "image upload failed", err.Error(), err)
}

// As extracts an *Error from err, converting anything else into an internal error.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return newError(CodeInternal, http.StatusInternalServerError, "unexpected error", err.Error(), err)
}

// Respond writes err as a JSON body and aborts the gin chain.
func Respond(c *gin.Context, err error) {
	appErr := As(err)
	c.AbortWithStatusJSON(appErr.Status, appErr)
}
