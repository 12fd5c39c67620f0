package onchain

import (
	"errors"
	"fmt"
	"strings"
)

// Network names a Solana cluster.
type Network string

const (
	Devnet   Network = "devnet"
	Mainnet  Network = "mainnet"
	Localnet Network = "localnet"
)

// Public endpoints used when the environment does not override them.
const (
	DefaultDevnetRPC   = "https://api.devnet.solana.com"
	DefaultMainnetRPC  = "https://api.mainnet-beta.solana.com"
	DefaultLocalnetRPC = "http://127.0.0.1:8899"
)

var ErrUnsupportedNetwork = errors.New("unsupported network")

// ParseNetwork accepts the three supported names ("mainnet-beta" is an alias of mainnet).
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "devnet":
		return Devnet, nil
	case "mainnet", "mainnet-beta":
		return Mainnet, nil
	case "localnet", "localhost":
		return Localnet, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNetwork, s)
	}
}

// Validation reports what the chain knows about a payment recipient.
type Validation struct {
	Valid              bool   `json:"valid"`
	AccountExists      bool   `json:"accountExists"`
	IsExecutable       bool   `json:"isExecutable"`
	Balance            string `json:"balance,omitempty"`
	TokenAccountExists *bool  `json:"tokenAccountExists,omitempty"`
}

func failClosed() Validation {
	return Validation{}
}
