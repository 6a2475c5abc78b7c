package evm

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"

	sdkerrors "github.com/smartcontractkit/timelock-roles/sdk/errors"
)

// ContractCaller is the read-only backend the timelock bindings need. Both *ethclient.Client and the
// explorer proxy client satisfy it.
type ContractCaller interface {
	bind.ContractCaller
}

// DialRPC connects to a JSON-RPC endpoint and checks that it serves the expected EVM chain.
func DialRPC(ctx context.Context, rpcURL string, expectedChainID uint64) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rpc: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to read chain id: %w", err)
	}

	if !chainID.IsUint64() || chainID.Uint64() != expectedChainID {
		client.Close()
		return nil, sdkerrors.NewChainIDMismatchError(expectedChainID, chainID.Uint64())
	}

	return client, nil
}
