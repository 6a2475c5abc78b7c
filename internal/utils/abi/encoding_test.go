package abi

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveABI    string
		giveValues []any
		want       string
		wantError  bool
	}{
		{
			name:       "success: encode single uint256",
			giveABI:    `[{"type":"uint256"}]`,
			giveValues: []any{big.NewInt(172800)}, // two days in seconds
			want:       "000000000000000000000000000000000000000000000000000000000002a300",
		},
		{
			name:       "success: encode bytes32",
			giveABI:    `[{"type":"bytes32"}]`,
			giveValues: []any{common.HexToHash("0x01")},
			want:       "0000000000000000000000000000000000000000000000000000000000000001",
		},
		{
			name:       "success: encode address array",
			giveABI:    `[{"type":"address[]"}]`,
			giveValues: []any{[]common.Address{common.HexToAddress("0x5b38da6a701c568545dcfcb03fcb875f56beddc4")}},
			want: "0000000000000000000000000000000000000000000000000000000000000020" + // offset
				"0000000000000000000000000000000000000000000000000000000000000001" + // length
				"0000000000000000000000005b38da6a701c568545dcfcb03fcb875f56beddc4",
		},
		{
			name:       "success: encode empty bytes array",
			giveABI:    `[{"type":"bytes[]"}]`,
			giveValues: []any{[][]byte{}},
			want: "0000000000000000000000000000000000000000000000000000000000000020" + // offset
				"0000000000000000000000000000000000000000000000000000000000000000", // length
		},
		{
			name:      "failure: invalid ABI string",
			giveABI:   `[{"type":"invalid"}]`,
			wantError: true,
		},
		{
			name:       "failure: missing values",
			giveABI:    `[{"type":"uint256"},{"type":"bytes32"}]`,
			giveValues: []any{big.NewInt(1)},
			wantError:  true,
		},
		{
			name:       "failure: mismatched value type",
			giveABI:    `[{"type":"address[]"}]`,
			giveValues: []any{"0x5b38da6a701c568545dcfcb03fcb875f56beddc4"},
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Encode(tt.giveABI, tt.giveValues...)

			if tt.wantError {
				require.Error(t, err)
				return
			}

			wantBytes, err := hex.DecodeString(tt.want)
			require.NoError(t, err)
			assert.Equal(t, wantBytes, got)
		})
	}
}
