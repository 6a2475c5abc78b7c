package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

func TestParseNetwork(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    Network
		wantErr string
	}{
		{name: "mainnet", give: "mainnet", want: NetworkMainnet},
		{name: "bnb", give: "bnb", want: NetworkBNB},
		{name: "binance alias", give: "binance", want: NetworkBNB},
		{name: "matic", give: "matic", want: NetworkMatic},
		{name: "case insensitive", give: "MainNet", want: NetworkMainnet},
		{name: "unsupported", give: "goerli", wantErr: `unsupported network: "goerli"`},
		{name: "empty", give: "", wantErr: `unsupported network: ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseNetwork(tt.give)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				require.ErrorIs(t, err, ErrUnsupportedNetwork)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNetwork_Chain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		give      Network
		wantChain uint64
		wantErr   bool
	}{
		{name: "mainnet", give: NetworkMainnet, wantChain: chainsel.ETHEREUM_MAINNET.EvmChainID},
		{name: "bnb", give: NetworkBNB, wantChain: chainsel.BINANCE_SMART_CHAIN_MAINNET.EvmChainID},
		{name: "matic", give: NetworkMatic, wantChain: chainsel.POLYGON_MAINNET.EvmChainID},
		{name: "unknown", give: Network("sepolia"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.give.Chain()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedNetwork)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantChain, got.EvmChainID)
		})
	}
}

func TestNetwork_ExplorerURL(t *testing.T) {
	t.Parallel()

	url, err := NetworkMainnet.ExplorerURL()
	require.NoError(t, err)
	assert.Equal(t, "https://api.etherscan.io", url)

	url, err = NetworkBNB.ExplorerURL()
	require.NoError(t, err)
	assert.Equal(t, "https://api.bscscan.com", url)

	url, err = NetworkMatic.ExplorerURL()
	require.NoError(t, err)
	assert.Equal(t, "https://api.polygonscan.com", url)

	_, err = Network("").ExplorerURL()
	require.ErrorIs(t, err, ErrUnsupportedNetwork)
}
