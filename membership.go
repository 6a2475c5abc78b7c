package roles

import (
	"encoding/json"
	"slices"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/timelock-roles/types"
)

// Membership is the set of accounts currently holding a role, ordered by the chain position of the
// grant that made each account a member.
type Membership struct {
	members []common.Address
	index   map[common.Address]struct{}
}

// NewMembership creates a membership holding accounts in the given order. Duplicates are dropped.
func NewMembership(accounts ...common.Address) *Membership {
	m := &Membership{index: make(map[common.Address]struct{}, len(accounts))}
	for _, a := range accounts {
		if _, ok := m.index[a]; ok {
			continue
		}
		m.index[a] = struct{}{}
		m.members = append(m.members, a)
	}

	return m
}

// Members returns a copy of the member list.
func (m *Membership) Members() []common.Address {
	if m == nil {
		return nil
	}

	return slices.Clone(m.members)
}

// Contains reports whether account is a member.
func (m *Membership) Contains(account common.Address) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[account]

	return ok
}

// Len returns the number of members.
func (m *Membership) Len() int {
	if m == nil {
		return 0
	}

	return len(m.members)
}

func (m *Membership) MarshalJSON() ([]byte, error) {
	members := m.Members()
	if members == nil {
		members = []common.Address{}
	}

	return json.Marshal(members)
}

// Reconstruct replays the granted and revoked events of a single role in chain order and returns the
// resulting membership. An account is a member iff its latest event is a grant.
//
// Identical events reported twice are replayed once. Two different events at the same chain position
// cannot be ordered and fail with an AmbiguousEventOrderError.
func Reconstruct(granted, revoked []types.RoleEvent) (*Membership, error) {
	events := make([]types.RoleEvent, 0, len(granted)+len(revoked))
	events = append(events, granted...)
	events = append(events, revoked...)

	for _, e := range events[min(1, len(events)):] {
		if e.Role != events[0].Role {
			return nil, ErrMixedRoles
		}
	}

	slices.SortStableFunc(events, types.CompareRoleEvents)

	// grants maps each current member to the position of the grant that added it
	grants := make(map[common.Address]types.LogPosition)
	for i, e := range events {
		if i > 0 && e.LogPosition == events[i-1].LogPosition {
			if e == events[i-1] {
				continue
			}

			return nil, NewAmbiguousEventOrderError(events[i-1], e)
		}

		switch e.Type {
		case types.EventRoleGranted:
			if _, ok := grants[e.Account]; !ok {
				grants[e.Account] = e.LogPosition
			}
		case types.EventRoleRevoked:
			delete(grants, e.Account)
		default:
			return nil, &UnknownEventTypeError{Type: e.Type}
		}
	}

	accounts := make([]common.Address, 0, len(grants))
	for a := range grants {
		accounts = append(accounts, a)
	}
	slices.SortFunc(accounts, func(a, b common.Address) int {
		return grants[a].Compare(grants[b])
	})

	return NewMembership(accounts...), nil
}
