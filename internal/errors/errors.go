// Package errors defines the error codes returned by the HTTP API.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// DomainError is an API error with a stable code. Details, when set, is
// serialized alongside the message.
type DomainError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithDetails returns a copy of e carrying details.
func (e *DomainError) WithDetails(details interface{}) *DomainError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithMessage returns a copy of e with another message.
func (e *DomainError) WithMessage(msg string) *DomainError {
	cp := *e
	cp.Message = msg
	return &cp
}

// HTTPStatus falls back to 500 for errors built without a status.
func (e *DomainError) HTTPStatus() int {
	if e.Status == 0 {
		return fiber.StatusInternalServerError
	}
	return e.Status
}

// As reports whether err wraps a DomainError.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}
