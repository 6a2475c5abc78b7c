package evm

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/smartcontractkit/timelock-roles/types"
)

var (
	ErrUnknownEvent     = errors.New("unknown timelock event")
	ErrShortCallData    = errors.New("call data shorter than a function selector")
	errUnexpectedTopics = errors.New("unexpected number of topics")
)

// roleEventLog is the shared layout of RoleGranted and RoleRevoked.
type roleEventLog struct {
	Role    [32]byte
	Account common.Address
	Sender  common.Address
}

// EventTopic returns the topic0 signature hash of a role event.
func EventTopic(event types.EventType) (common.Hash, error) {
	ev, ok := timelockABI.Events[string(event)]
	if !ok {
		return common.Hash{}, fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}

	return ev.ID, nil
}

// RoleEventDecoder turns raw logs of a single timelock into role events.
type RoleEventDecoder struct {
	timelock common.Address
	contract *bind.BoundContract
}

// NewRoleEventDecoder creates a decoder for logs emitted by timelock.
func NewRoleEventDecoder(timelock common.Address) *RoleEventDecoder {
	return &RoleEventDecoder{
		timelock: timelock,
		contract: bind.NewBoundContract(timelock, timelockABI, nil, nil, nil),
	}
}

// Decode parses a RoleGranted or RoleRevoked log.
func (d *RoleEventDecoder) Decode(event types.EventType, log gethtypes.Log) (types.RoleEvent, error) {
	ev, ok := timelockABI.Events[string(event)]
	if !ok {
		return types.RoleEvent{}, fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}

	if log.Address != d.timelock {
		return types.RoleEvent{}, fmt.Errorf("log %s:%d emitted by %s, expected %s",
			log.TxHash.Hex(), log.Index, log.Address.Hex(), d.timelock.Hex())
	}

	// every RoleGranted/RoleRevoked argument is indexed
	if len(log.Topics) != len(ev.Inputs)+1 {
		return types.RoleEvent{}, fmt.Errorf("%w in %s log %s:%d: %d",
			errUnexpectedTopics, event, log.TxHash.Hex(), log.Index, len(log.Topics))
	}

	var out roleEventLog
	if err := d.contract.UnpackLog(&out, string(event), log); err != nil {
		return types.RoleEvent{}, fmt.Errorf("failed to unpack %s log %s:%d: %w", event, log.TxHash.Hex(), log.Index, err)
	}

	return types.RoleEvent{
		Type:    event,
		Role:    common.Hash(out.Role),
		Account: out.Account,
		Sender:  out.Sender,
		TxHash:  log.TxHash,
		LogPosition: types.LogPosition{
			BlockNumber:      log.BlockNumber,
			TransactionIndex: uint64(log.TxIndex),
			LogIndex:         uint64(log.Index),
		},
	}, nil
}

// ParseFunctionCall parses a full data payload (with function selector at the front of it) against the
// TimelockController ABI into a function name and an array of inputs.
func ParseFunctionCall(data []byte) (*DecodedOperation, error) {
	if len(data) < 4 {
		return nil, ErrShortCallData
	}

	// Extract the method from the data
	method, err := timelockABI.MethodById(data[:4])
	if err != nil {
		return nil, err
	}

	// Decode the data using the method's input types
	inputs, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}

	return &DecodedOperation{
		FunctionName: method.Name,
		InputKeys:    method.Inputs,
		InputArgs:    inputs,
	}, nil
}
