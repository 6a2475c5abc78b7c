package roles

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/timelock-roles/sdk"
	"github.com/smartcontractkit/timelock-roles/types"
)

// RoleMemberships maps each tracked role to its current members.
type RoleMemberships map[types.Role]*Membership

// Get returns the members of role, or an empty membership when the role is unknown.
func (r RoleMemberships) Get(role types.Role) *Membership {
	if m, ok := r[role]; ok && m != nil {
		return m
	}

	return NewMembership()
}

// Inspector rebuilds the role state of one timelock from its event history.
type Inspector struct {
	timelock common.Address
	contract sdk.TimelockInspector
	fetcher  *Fetcher
}

// NewInspector creates an Inspector for timelock, reading contract state through contract and event
// history through logs.
func NewInspector(timelock common.Address, contract sdk.TimelockInspector, logs sdk.LogFilterer) *Inspector {
	return &Inspector{
		timelock: timelock,
		contract: contract,
		fetcher:  NewFetcher(timelock, logs),
	}
}

// Timelock returns the inspected address.
func (i *Inspector) Timelock() common.Address {
	return i.timelock
}

// VerifyTimelock checks that the contract exposes the expected TIMELOCK_ADMIN_ROLE constant.
func (i *Inspector) VerifyTimelock(ctx context.Context) error {
	adminRole, err := i.contract.GetAdminRole(ctx, i.timelock)
	if err != nil {
		return NewNotTimelockError(i.timelock, err)
	}

	if adminRole != types.TimelockAdminRoleID {
		return NewNotTimelockError(i.timelock, fmt.Errorf("TIMELOCK_ADMIN_ROLE is %s", adminRole.Hex()))
	}

	return nil
}

// GetRoles replays the full event history of every tracked role. Nothing is cached between calls.
func (i *Inspector) GetRoles(ctx context.Context) (RoleMemberships, error) {
	events, err := i.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	lggr := sdk.LoggerFrom(ctx)
	roles := make(RoleMemberships, len(types.Roles))
	for _, role := range types.Roles {
		re := events[role]
		m, err := Reconstruct(re.Granted, re.Revoked)
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct %s role: %w", role, err)
		}
		lggr.Infof("%s role: %d members from %d grants and %d revocations",
			role, m.Len(), len(re.Granted), len(re.Revoked))
		roles[role] = m
	}

	return roles, nil
}
