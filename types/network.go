package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"
	"strings"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

// Network is a chain supported by the role tooling. Each network is served by a block explorer that
// exposes the etherscan-compatible logs and proxy APIs.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkBNB     Network = "bnb"
	NetworkMatic   Network = "matic"
)

// ErrUnsupportedNetwork is returned when a network name is not one of the supported networks.
var ErrUnsupportedNetwork = errors.New("unsupported network")

// networkAliases maps every accepted network name to its canonical Network.
var networkAliases = map[string]Network{
	"mainnet": NetworkMainnet,
	"bnb":     NetworkBNB,
	"binance": NetworkBNB,
	"matic":   NetworkMatic,
}

// SupportedNetworkNames lists the network names accepted on the command line.
var SupportedNetworkNames = []string{"mainnet", "bnb", "binance", "matic"}

// ParseNetwork resolves a case-insensitive network name, including aliases, to a Network.
func ParseNetwork(name string) (Network, error) {
	n, ok := networkAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNetwork, name)
	}

	return n, nil
}

// Chain returns the chain-selectors entry for the network.
func (n Network) Chain() (chainsel.Chain, error) {
	switch n {
	case NetworkMainnet:
		return chainsel.ETHEREUM_MAINNET, nil
	case NetworkBNB:
		return chainsel.BINANCE_SMART_CHAIN_MAINNET, nil
	case NetworkMatic:
		return chainsel.POLYGON_MAINNET, nil
	default:
		return chainsel.Chain{}, fmt.Errorf("%w: %q", ErrUnsupportedNetwork, string(n))
	}
}

// ExplorerURL returns the base URL of the network's block explorer API.
func (n Network) ExplorerURL() (string, error) {
	switch n {
	case NetworkMainnet:
		return "https://api.etherscan.io", nil
	case NetworkBNB:
		return "https://api.bscscan.com", nil
	case NetworkMatic:
		return "https://api.polygonscan.com", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNetwork, string(n))
	}
}

func (n Network) String() string {
	return string(n)
}
