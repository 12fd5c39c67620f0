package simulator

import (
	"errors"
	"strings"

	"solpay/internal/validation"
)

var ErrUnknownScenario = errors.New("unknown scenario")

// ValidationError lists why a simulation request was refused.
type ValidationError struct {
	Issues []validation.Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		msgs = append(msgs, i.Error())
	}
	return "invalid simulation request: " + strings.Join(msgs, "; ")
}

// userMessages rewrites raw RPC failures into something a payer can act on.
// Keys are matched case-insensitively as substrings, in order.
var userMessages = []struct{ match, message string }{
	{"publickey is invalid", "Invalid Solana address format"},
	{"insufficient funds", "Insufficient balance for this transaction"},
	{"insufficientfunds", "Insufficient balance for this transaction"},
	{"blockhash not found", "Network error, please retry"},
	{"failed to get recent blockhash", "RPC connection failed"},
	{"timeout", "Request timeout, check your connection"},
	{"deadline exceeded", "Request timeout, check your connection"},
	{"transaction simulation failed", "Transaction would fail"},
	{"could not find account", "Account not found"},
	{"accountnotfound", "Account does not exist on this network"},
	{"account not found", "Account does not exist on this network"},
}

// UserMessage maps a raw error text to its user-facing message, or returns
// it unchanged.
func UserMessage(raw string) string {
	lower := strings.ToLower(raw)
	for _, m := range userMessages {
		if strings.Contains(lower, m.match) {
			return m.message
		}
	}
	return raw
}
