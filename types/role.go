package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"github.com/ethereum/go-ethereum/common"
)

// Role is one of the TimelockController access-control roles tracked by the tooling.
type Role string

const (
	RoleExecutor      Role = "executor"
	RoleProposer      Role = "proposer"
	RoleTimelockAdmin Role = "timelock_admin"
)

var (
	// ExecutorRoleID is keccak256("EXECUTOR_ROLE").
	ExecutorRoleID = common.HexToHash("0xd8aa0f3194971a2a116679f7c2090f6939c8d4e01a2a8d7e41d55e5351469e63")
	// ProposerRoleID is keccak256("PROPOSER_ROLE").
	ProposerRoleID = common.HexToHash("0xb09aa5aeb3702cfd50b6b62bc4532604938f21248a27a1d5ca736082b6819cc1")
	// TimelockAdminRoleID is keccak256("TIMELOCK_ADMIN_ROLE").
	TimelockAdminRoleID = common.HexToHash("0x5f58e3a2316349923ce3780f8d587db2d72378aed66a8261c916544fa6846ca5")
)

// Roles lists the tracked roles in display order.
var Roles = []Role{RoleExecutor, RoleProposer, RoleTimelockAdmin}

// ID returns the bytes32 role identifier used on-chain. Unknown roles return the zero hash.
func (r Role) ID() common.Hash {
	switch r {
	case RoleExecutor:
		return ExecutorRoleID
	case RoleProposer:
		return ProposerRoleID
	case RoleTimelockAdmin:
		return TimelockAdminRoleID
	default:
		return common.Hash{}
	}
}

// RoleByID returns the role for an on-chain identifier.
func RoleByID(id common.Hash) (Role, bool) {
	for _, r := range Roles {
		if r.ID() == id {
			return r, true
		}
	}

	return "", false
}

func (r Role) String() string {
	return string(r)
}
