package solanapay

import (
	"fmt"
	"math/big"
	"net/url"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"solpay/internal/validation"
)

// LamportsPerSOL is the number of base units in one SOL.
const LamportsPerSOL uint64 = 1_000_000_000

const lamportDecimals = 9

// NewReference returns the base58 public key of a freshly generated keypair.
// The private key is discarded; the key only tags the transaction on chain.
func NewReference() (string, error) {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return "", fmt.Errorf("generate reference: %w", err)
	}
	return key.PublicKey().String(), nil
}

// TransactionRequestURL wraps an HTTPS endpoint into a transaction request URL,
// appending label and message to the endpoint's own query.
func TransactionRequestURL(link, label, message string) (string, error) {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "", ErrInvalidLink
	}
	if u.Scheme != "https" {
		return "", ErrLinkProtocol
	}

	q := u.Query()
	if label != "" {
		q.Set(paramLabel, label)
	}
	if message != "" {
		q.Set(paramMessage, message)
	}
	u.RawQuery = q.Encode()

	return Prefix + u.String(), nil
}

// MessageURL builds a transfer URL that carries only a message (and optional
// label) for the recipient.
func MessageURL(recipient, message, label string) (string, error) {
	if _, err := validation.ParseAddress(recipient); err != nil {
		return "", fmt.Errorf("recipient: %w", err)
	}

	q := url.Values{}
	q.Set(paramMessage, message)
	if label != "" {
		q.Set(paramLabel, label)
	}
	return Prefix + recipient + "?" + q.Encode(), nil
}

// SOLToLamports converts a SOL amount to lamports, truncating anything below
// one lamport.
func SOLToLamports(amount decimal.Decimal) uint64 {
	if amount.IsNegative() {
		return 0
	}
	return amount.Shift(lamportDecimals).Truncate(0).BigInt().Uint64()
}

// LamportsToSOL converts lamports to SOL without losing precision.
func LamportsToSOL(lamports uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -lamportDecimals)
}
