package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"cmp"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// EventType is the kind of access-control event emitted by the timelock.
type EventType string

const (
	EventRoleGranted EventType = "RoleGranted"
	EventRoleRevoked EventType = "RoleRevoked"
)

// EventTypes lists the replayed event types.
var EventTypes = []EventType{EventRoleGranted, EventRoleRevoked}

// LogPosition is the chain order key of a log: block number, transaction index and log index.
type LogPosition struct {
	BlockNumber      uint64 `json:"blockNumber"`
	TransactionIndex uint64 `json:"transactionIndex"`
	LogIndex         uint64 `json:"logIndex"`
}

// Compare orders positions ascending by block, then transaction index, then log index.
func (p LogPosition) Compare(o LogPosition) int {
	if c := cmp.Compare(p.BlockNumber, o.BlockNumber); c != 0 {
		return c
	}
	if c := cmp.Compare(p.TransactionIndex, o.TransactionIndex); c != 0 {
		return c
	}

	return cmp.Compare(p.LogIndex, o.LogIndex)
}

func (p LogPosition) String() string {
	return fmt.Sprintf("block %d tx %d log %d", p.BlockNumber, p.TransactionIndex, p.LogIndex)
}

// RoleEvent is a decoded RoleGranted or RoleRevoked log.
type RoleEvent struct {
	Type    EventType      `json:"type"`
	Role    common.Hash    `json:"role"`
	Account common.Address `json:"account"`
	Sender  common.Address `json:"sender"`
	TxHash  common.Hash    `json:"transactionHash"`
	LogPosition
}

// CompareRoleEvents orders events by their chain position.
func CompareRoleEvents(a, b RoleEvent) int {
	return a.LogPosition.Compare(b.LogPosition)
}
