package roles

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/smartcontractkit/timelock-roles/sdk"
	"github.com/smartcontractkit/timelock-roles/sdk/evm"
	"github.com/smartcontractkit/timelock-roles/types"
)

// RevocationPlan is a drafted executor revocation. Both call data payloads share the same
// (targets, values, payloads, predecessor, salt) tuple; the schedule call adds the delay.
type RevocationPlan struct {
	Timelock          common.Address   `json:"timelock"`
	ToRemove          []common.Address `json:"toRemove"`
	Targets           []common.Address `json:"targets"`
	Values            []*big.Int       `json:"values"`
	Payloads          []hexutil.Bytes  `json:"payloads"`
	Predecessor       common.Hash      `json:"predecessor"`
	Salt              common.Hash      `json:"salt"`
	Delay             *big.Int         `json:"delay"`
	DelayDuration     types.Duration   `json:"delayDuration"`
	OperationID       common.Hash      `json:"operationId"`
	ScheduleBatchData hexutil.Bytes    `json:"scheduleBatchData"`
	ExecuteBatchData  hexutil.Bytes    `json:"executeBatchData"`
}

// RevocationPlanner drafts scheduleBatch/executeBatch calls removing executors from a timelock.
type RevocationPlanner struct {
	timelock  common.Address
	contract  sdk.TimelockInspector
	converter *evm.TimelockConverter
}

// NewRevocationPlanner creates a planner for timelock that reads contract state through contract.
func NewRevocationPlanner(timelock common.Address, contract sdk.TimelockInspector) *RevocationPlanner {
	return &RevocationPlanner{
		timelock:  timelock,
		contract:  contract,
		converter: evm.NewTimelockConverter(),
	}
}

// Plan drafts the revocation of the executors listed in rawToRemove, a comma separated address list, or of
// every executor that is not also a proposer when rawToRemove is empty. A nil plan with a nil error means
// there was nothing to remove.
func (p *RevocationPlanner) Plan(ctx context.Context, roles RoleMemberships, rawToRemove string) (*RevocationPlan, error) {
	lggr := sdk.LoggerFrom(ctx)

	toRemove, err := p.selectExecutors(ctx, roles, rawToRemove)
	if err != nil {
		return nil, err
	}
	if len(toRemove) == 0 {
		lggr.Infof("no executors found to remove")
		return nil, nil
	}

	if err := p.checkSafety(ctx, roles.Get(types.RoleExecutor), toRemove); err != nil {
		return nil, err
	}

	delay, err := p.contract.GetMinDelay(ctx, p.timelock)
	if err != nil {
		return nil, fmt.Errorf("failed to read min delay: %w", err)
	}

	return p.encode(toRemove, delay)
}

func (p *RevocationPlanner) selectExecutors(
	ctx context.Context, roles RoleMemberships, rawToRemove string,
) ([]common.Address, error) {
	if strings.TrimSpace(rawToRemove) == "" {
		executors := roles.Get(types.RoleExecutor)
		proposers := roles.Get(types.RoleProposer)

		var toRemove []common.Address
		for _, e := range executors.Members() {
			if !proposers.Contains(e) {
				toRemove = append(toRemove, e)
			}
		}
		if len(toRemove) == 0 {
			sdk.LoggerFrom(ctx).Infof("no executors found to remove by default")
		}

		return toRemove, nil
	}

	seen := make(map[common.Address]struct{})
	var toRemove []common.Address
	for _, raw := range strings.Split(rawToRemove, ",") {
		raw = strings.TrimSpace(raw)
		addr, err := ParseAddress(raw)
		if err != nil {
			return nil, NewInvalidAddressError(raw)
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}

		isExecutor, err := p.contract.HasRole(ctx, p.timelock, types.ExecutorRoleID, addr)
		if err != nil {
			return nil, fmt.Errorf("failed to check executor role of %s: %w", addr.Hex(), err)
		}
		if !isExecutor {
			return nil, NewNotExecutorError(addr)
		}
		toRemove = append(toRemove, addr)
	}

	return toRemove, nil
}

func (p *RevocationPlanner) checkSafety(ctx context.Context, executors *Membership, toRemove []common.Address) error {
	removing := NewMembership(toRemove...)
	remaining := 0
	for _, e := range executors.Members() {
		if !removing.Contains(e) {
			remaining++
		}
	}
	if remaining == 0 {
		return ErrRemoveAllExecutors
	}

	selfGoverned, err := p.contract.HasRole(ctx, p.timelock, types.TimelockAdminRoleID, p.timelock)
	if err != nil {
		return fmt.Errorf("failed to check admin role of the timelock: %w", err)
	}
	if !selfGoverned {
		return NewNotSelfGovernedError(p.timelock)
	}

	return nil
}

func (p *RevocationPlanner) encode(toRemove []common.Address, delay *big.Int) (*RevocationPlan, error) {
	duration, err := types.DurationFromSeconds(delay)
	if err != nil {
		return nil, err
	}

	batch, err := p.converter.RevokeRoleBatch(p.timelock, types.ExecutorRoleID, toRemove)
	if err != nil {
		return nil, err
	}

	scheduleData, err := p.converter.ScheduleBatch(batch, delay)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scheduleBatch: %w", err)
	}

	executeData, err := p.converter.ExecuteBatch(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode executeBatch: %w", err)
	}

	operationID, err := evm.HashOperationBatch(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to hash batch: %w", err)
	}

	payloads := make([]hexutil.Bytes, len(batch.Payloads))
	for i, data := range batch.Payloads {
		payloads[i] = data
	}

	return &RevocationPlan{
		Timelock:          p.timelock,
		ToRemove:          toRemove,
		Targets:           batch.Targets,
		Values:            batch.Values,
		Payloads:          payloads,
		Predecessor:       batch.Predecessor,
		Salt:              batch.Salt,
		Delay:             delay,
		DelayDuration:     duration,
		OperationID:       operationID,
		ScheduleBatchData: scheduleData,
		ExecuteBatchData:  executeData,
	}, nil
}
