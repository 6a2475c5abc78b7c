package sdk

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// LogFilterer returns every log emitted by a contract over its full history whose leading topics match
// the given topics, in positional order (topic0, topic1, ...).
type LogFilterer interface {
	FilterLogs(ctx context.Context, address common.Address, topics ...common.Hash) ([]types.Log, error)
}
