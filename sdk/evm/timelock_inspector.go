package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/timelock-roles/sdk"
)

var _ sdk.TimelockInspector = (*TimelockInspector)(nil)

// TimelockInspector is an Inspector implementation for EVM chains for reading the TimelockController
// access-control state.
type TimelockInspector struct {
	client ContractCaller
}

// NewTimelockInspector creates a new TimelockInspector
func NewTimelockInspector(client ContractCaller) *TimelockInspector {
	return &TimelockInspector{
		client: client,
	}
}

func (tm TimelockInspector) contract(address common.Address) *bind.BoundContract {
	return bind.NewBoundContract(address, timelockABI, tm.client, nil, nil)
}

// GetAdminRole returns the value of TIMELOCK_ADMIN_ROLE.
func (tm TimelockInspector) GetAdminRole(ctx context.Context, timelock common.Address) (common.Hash, error) {
	var out []any
	if err := tm.contract(timelock).Call(&bind.CallOpts{Context: ctx}, &out, "TIMELOCK_ADMIN_ROLE"); err != nil {
		return common.Hash{}, err
	}

	role := *abi.ConvertType(out[0], new([32]byte)).(*[32]byte)

	return common.Hash(role), nil
}

// HasRole reports whether account holds role on the timelock.
func (tm TimelockInspector) HasRole(
	ctx context.Context, timelock common.Address, role common.Hash, account common.Address,
) (bool, error) {
	var out []any
	err := tm.contract(timelock).Call(&bind.CallOpts{Context: ctx}, &out, "hasRole", [32]byte(role), account)
	if err != nil {
		return false, err
	}

	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// GetMinDelay returns the minimum delay, in seconds, of scheduled operations.
func (tm TimelockInspector) GetMinDelay(ctx context.Context, timelock common.Address) (*big.Int, error) {
	var out []any
	if err := tm.contract(timelock).Call(&bind.CallOpts{Context: ctx}, &out, "getMinDelay"); err != nil {
		return nil, err
	}

	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
