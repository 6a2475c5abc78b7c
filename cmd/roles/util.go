package roles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	roles "github.com/smartcontractkit/timelock-roles"
	"github.com/smartcontractkit/timelock-roles/internal/config"
	"github.com/smartcontractkit/timelock-roles/sdk"
	"github.com/smartcontractkit/timelock-roles/sdk/evm"
	"github.com/smartcontractkit/timelock-roles/sdk/explorer"
	"github.com/smartcontractkit/timelock-roles/types"
)

// target is the network and timelock named on the command line.
type target struct {
	network  types.Network
	timelock common.Address
}

// targetArgs accepts a network and a timelock address followed by up to extra optional arguments.
func targetArgs(extra int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(2, 2+extra)(cmd, args); err != nil {
			return err
		}

		_, err := parseTarget(args)

		return err
	}
}

func parseTarget(args []string) (target, error) {
	network, err := types.ParseNetwork(args[0])
	if err != nil {
		return target{}, err
	}

	timelock, err := roles.ParseAddress(args[1])
	if err != nil {
		return target{}, fmt.Errorf("invalid timelock address %q", args[1])
	}

	return target{network: network, timelock: timelock}, nil
}

// backend reads contract state and event history of one network.
type backend struct {
	contract sdk.TimelockInspector
	logs     sdk.LogFilterer
	close    func()
}

type dialFunc func(ctx context.Context, cfg *config.Config, limiter *rate.Limiter, network types.Network) (*backend, error)

// dialBackend reads logs from the network's block explorer. Contract calls go through RPC_URL when it is
// set and through the explorer proxy otherwise.
func dialBackend(ctx context.Context, cfg *config.Config, limiter *rate.Limiter, network types.Network) (*backend, error) {
	apiKey, err := cfg.APIKey(network)
	if err != nil {
		return nil, err
	}

	baseURL, err := cfg.ExplorerBaseURL(network)
	if err != nil {
		return nil, err
	}

	explorerClient := explorer.NewClient(baseURL, apiKey, limiter)

	if cfg.RPCURL == "" {
		return &backend{
			contract: evm.NewTimelockInspector(explorerClient),
			logs:     explorerClient,
			close:    func() {},
		}, nil
	}

	chain, err := network.Chain()
	if err != nil {
		return nil, err
	}

	client, err := evm.DialRPC(ctx, cfg.RPCURL, chain.EvmChainID)
	if err != nil {
		return nil, err
	}
	sdk.LoggerFrom(ctx).Debugf("using rpc endpoint for %s (chain id %d)", chain.Name, chain.EvmChainID)

	return &backend{
		contract: evm.NewTimelockInspector(client),
		logs:     explorerClient,
		close:    client.Close,
	}, nil
}

// inspect verifies the timelock and rebuilds its roles.
func inspect(ctx context.Context, b *backend, t target) (roles.RoleMemberships, error) {
	inspector := roles.NewInspector(t.timelock, b.contract, b.logs)
	if err := inspector.VerifyTimelock(ctx); err != nil {
		return nil, err
	}

	return inspector.GetRoles(ctx)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
