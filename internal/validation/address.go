package validation

import (
	"regexp"

	"github.com/gagliardetto/solana-go"
)

const (
	MinAddressLength = 32
	MaxAddressLength = 44

	// truncatedAddressLength is the length most often produced by clipping one
	// character off a 44 character address.
	truncatedAddressLength = 43
)

var base58Regex = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]+$`)

// Result is the outcome of a single field check.
type Result struct {
	Valid     bool   `json:"valid"`
	Error     string `json:"error,omitempty"`
	Truncated bool   `json:"isTruncated,omitempty"`
}

func ok() Result { return Result{Valid: true} }

func fail(msg string) Result { return Result{Error: msg} }

// IsValidAddress reports whether s is a base58 public key decoding to exactly 32 bytes.
func IsValidAddress(s string) bool {
	_, err := ParseAddress(s)
	return err == nil
}

// ParseAddress converts s into a public key, rejecting anything outside the
// 32-44 character base58 shape before decoding.
func ParseAddress(s string) (solana.PublicKey, error) {
	if len(s) < MinAddressLength || len(s) > MaxAddressLength {
		return solana.PublicKey{}, ErrAddressLength
	}
	if !base58Regex.MatchString(s) {
		return solana.PublicKey{}, ErrAddressAlphabet
	}
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, ErrAddressDecode
	}
	return key, nil
}

// ValidateRecipient runs the layered recipient checks and returns the first failure.
func ValidateRecipient(address string) Result {
	switch {
	case address == "":
		return fail("Address is required")
	case len(address) < MinAddressLength:
		return fail("Address too short (min 32 chars)")
	case len(address) > MaxAddressLength:
		return fail("Address too long (max 44 chars)")
	}

	if IsValidAddress(address) {
		return ok()
	}
	if len(address) == truncatedAddressLength {
		return Result{
			Error:     "Invalid address - possible truncation detected",
			Truncated: true,
		}
	}
	return fail("Invalid Solana address (checksum failed)")
}
