package evm

import (
	"fmt"
	"math/big"
	"strings"

	geth_abi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DecodedOperation is a timelock call split into its method name and arguments.
type DecodedOperation struct {
	FunctionName string
	InputArgs    []any
	InputKeys    geth_abi.Arguments
}

// String renders the call as name(key=value, ...), e.g.
// revokeRole(role=0xd8aa...9e63, account=0x5B38...ddC4).
func (d *DecodedOperation) String() string {
	args := make([]string, len(d.InputArgs))
	for i, arg := range d.InputArgs {
		args[i] = formatArg(arg)
		if i < len(d.InputKeys) && d.InputKeys[i].Name != "" {
			args[i] = d.InputKeys[i].Name + "=" + args[i]
		}
	}

	return d.FunctionName + "(" + strings.Join(args, ", ") + ")"
}

func formatArg(arg any) string {
	switch v := arg.(type) {
	case common.Address:
		return v.Hex()
	case [32]byte:
		return common.Hash(v).Hex()
	case []byte:
		return hexutil.Encode(v)
	case *big.Int:
		return v.String()
	case []common.Address:
		return formatList(v)
	case []*big.Int:
		return formatList(v)
	case [][]byte:
		return formatList(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatList[T any](items []T) string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = formatArg(item)
	}

	return "[" + strings.Join(out, ", ") + "]"
}
