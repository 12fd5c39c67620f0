package paylink

import (
	"errors"
	"strings"

	"solpay/internal/validation"
)

var (
	ErrLinkNotFound   = errors.New("payment link not found")
	ErrLinkNotPending = errors.New("payment link is not pending")
	ErrIDExhausted    = errors.New("could not allocate a unique link id")
)

// ValidationError lists the field issues that rejected a create request.
type ValidationError struct {
	Issues []validation.Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		msgs = append(msgs, i.Error())
	}
	return "invalid payment link: " + strings.Join(msgs, "; ")
}
