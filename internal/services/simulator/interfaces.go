package simulator

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"solpay/internal/services/onchain"
)

// RPCClient is the subset of *rpc.Client used for simulation.
type RPCClient interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SimulateTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts *rpc.SimulateTransactionOpts) (*rpc.SimulateTransactionResponse, error)
}

type ClientProvider interface {
	Client(network onchain.Network) (RPCClient, error)
}

// Service previews transfers against scenario balances.
type Service interface {
	Scenarios() []Scenario
	Simulate(ctx context.Context, req Request) (*Result, error)
}

type connections struct {
	c *onchain.Connections
}

// FromConnections adapts the shared per-network clients.
func FromConnections(c *onchain.Connections) ClientProvider {
	return connections{c: c}
}

func (p connections) Client(network onchain.Network) (RPCClient, error) {
	return p.c.RPC(network)
}
