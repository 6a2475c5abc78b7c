package evm

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

var (
	testTimelock = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testAccountA = common.HexToAddress("0xaAaAaAaaAaAaAaaAaAAAAAAAAaaaAaAaAaaAaaAa")
	testAccountB = common.HexToAddress("0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB")
)

// fakeCaller answers eth_call by method name, decoding the selector with the timelock ABI.
type fakeCaller struct {
	responses map[string][]byte
	err       error
	code      []byte
	calls     []ethereum.CallMsg
}

func (f *fakeCaller) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return f.code, nil
}

func (f *fakeCaller) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls = append(f.calls, call)
	if f.err != nil {
		return nil, f.err
	}

	method, err := timelockABI.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}

	out, ok := f.responses[method.Name]
	if !ok {
		return nil, errors.New("execution reverted")
	}

	return out, nil
}

// packOutput encodes return values of a timelock method.
func packOutput(method string, values ...any) []byte {
	out, err := timelockABI.Methods[method].Outputs.Pack(values...)
	if err != nil {
		panic(err)
	}

	return out
}
