package qr

import "errors"

// Service errors
var (
	ErrEmptyContent    = errors.New("qr content is empty")
	ErrContentTooLarge = errors.New("qr content is too large")
)
