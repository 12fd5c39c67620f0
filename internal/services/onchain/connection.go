package onchain

import (
	"sync"

	"github.com/gagliardetto/solana-go/rpc"
)

// Connections lazily creates one RPC client per network and reuses it.
type Connections struct {
	mu        sync.Mutex
	endpoints map[Network]string
	clients   map[Network]*rpc.Client
}

// NewConnections maps networks to endpoints. Empty overrides fall back to the
// public cluster endpoints.
func NewConnections(overrides map[string]string) *Connections {
	endpoints := map[Network]string{
		Devnet:   DefaultDevnetRPC,
		Mainnet:  DefaultMainnetRPC,
		Localnet: DefaultLocalnetRPC,
	}
	for name, url := range overrides {
		if url == "" {
			continue
		}
		if network, err := ParseNetwork(name); err == nil {
			endpoints[network] = url
		}
	}

	return &Connections{
		endpoints: endpoints,
		clients:   make(map[Network]*rpc.Client),
	}
}

// Endpoint returns the RPC URL configured for network.
func (c *Connections) Endpoint(network Network) (string, error) {
	endpoint, ok := c.endpoints[network]
	if !ok {
		return "", ErrUnsupportedNetwork
	}
	return endpoint, nil
}

// RPC returns the concrete client of network.
func (c *Connections) RPC(network Network) (*rpc.Client, error) {
	endpoint, err := c.Endpoint(network)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[network]; ok {
		return client, nil
	}
	client := rpc.New(endpoint)
	c.clients[network] = client
	return client, nil
}

// Client implements ClientProvider.
func (c *Connections) Client(network Network) (RPCClient, error) {
	return c.RPC(network)
}
