package errors

import "github.com/gofiber/fiber/v2"

var (
	ErrInvalidRequest = &DomainError{
		Status:  fiber.StatusBadRequest,
		Code:    "INVALID_REQUEST",
		Message: "invalid request body",
	}
	ErrValidation = &DomainError{
		Status:  fiber.StatusBadRequest,
		Code:    "VALIDATION_FAILED",
		Message: "request failed validation",
	}
	ErrUnsupportedNetwork = &DomainError{
		Status:  fiber.StatusBadRequest,
		Code:    "UNSUPPORTED_NETWORK",
		Message: "network must be one of devnet, mainnet, localnet",
	}
	ErrUnknownScenario = &DomainError{
		Status:  fiber.StatusBadRequest,
		Code:    "UNKNOWN_SCENARIO",
		Message: "unknown simulation scenario",
	}
	ErrUnauthorized = &DomainError{
		Status:  fiber.StatusUnauthorized,
		Code:    "UNAUTHORIZED",
		Message: "invalid or missing watcher token",
	}
	ErrLinkNotFound = &DomainError{
		Status:  fiber.StatusNotFound,
		Code:    "LINK_NOT_FOUND",
		Message: "payment link not found",
	}
	ErrLinkNotPending = &DomainError{
		Status:  fiber.StatusConflict,
		Code:    "LINK_NOT_PENDING",
		Message: "payment link is no longer pending",
	}
	ErrHistoryNotFound = &DomainError{
		Status:  fiber.StatusNotFound,
		Code:    "HISTORY_NOT_FOUND",
		Message: "history item not found",
	}
	ErrInvalidImport = &DomainError{
		Status:  fiber.StatusBadRequest,
		Code:    "INVALID_IMPORT",
		Message: "import must be a JSON array of history items",
	}
	ErrRateLimited = &DomainError{
		Status:  fiber.StatusTooManyRequests,
		Code:    "RATE_LIMITED",
		Message: "too many requests, please try again later",
	}
	ErrInternal = &DomainError{
		Status:  fiber.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: "an unexpected error occurred",
	}
)
