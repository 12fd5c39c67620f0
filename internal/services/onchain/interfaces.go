package onchain

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// RPCClient is the subset of *rpc.Client the validator needs.
type RPCClient interface {
	GetAccountInfo(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error)
}

// ClientProvider hands out the RPC client of a network.
type ClientProvider interface {
	Client(network Network) (RPCClient, error)
}

// Service defines on-chain recipient checks.
type Service interface {
	ValidateOnChain(ctx context.Context, recipient string, network Network, tokenMint string) Validation
}
