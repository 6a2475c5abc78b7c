package sdk

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TimelockInspector reads access-control state from a deployed timelock contract.
type TimelockInspector interface {
	GetAdminRole(ctx context.Context, timelock common.Address) (common.Hash, error)
	HasRole(ctx context.Context, timelock common.Address, role common.Hash, account common.Address) (bool, error)
	GetMinDelay(ctx context.Context, timelock common.Address) (*big.Int, error)
}
