package roles

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	roles "github.com/smartcontractkit/timelock-roles"
	"github.com/smartcontractkit/timelock-roles/internal/config"
	"github.com/smartcontractkit/timelock-roles/sdk/evm"
	"github.com/smartcontractkit/timelock-roles/sdk/mocks"
	"github.com/smartcontractkit/timelock-roles/types"
)

var (
	timelock  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	executorA = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	executorB = common.HexToAddress("0x00000000000000000000000000000000000000bb")
)

func roleLog(event types.EventType, role common.Hash, account common.Address, block uint64) gethtypes.Log {
	topic, err := evm.EventTopic(event)
	if err != nil {
		panic(err)
	}

	return gethtypes.Log{
		Address: timelock,
		Topics: []common.Hash{
			topic,
			role,
			common.BytesToHash(account.Bytes()),
			common.BytesToHash(timelock.Bytes()),
		},
		Data:        []byte{},
		BlockNumber: block,
	}
}

// newLogs serves executors {A, B}, proposers {B} and the timelock as its own admin.
func newLogs(t *testing.T) *mocks.LogFilterer {
	t.Helper()

	history := map[types.Role][]gethtypes.Log{
		types.RoleExecutor: {
			roleLog(types.EventRoleGranted, types.ExecutorRoleID, executorA, 1),
			roleLog(types.EventRoleGranted, types.ExecutorRoleID, executorB, 2),
		},
		types.RoleProposer: {
			roleLog(types.EventRoleGranted, types.ProposerRoleID, executorB, 2),
		},
		types.RoleTimelockAdmin: {
			roleLog(types.EventRoleGranted, types.TimelockAdminRoleID, timelock, 1),
		},
	}

	granted, err := evm.EventTopic(types.EventRoleGranted)
	require.NoError(t, err)
	revoked, err := evm.EventTopic(types.EventRoleRevoked)
	require.NoError(t, err)

	logs := mocks.NewLogFilterer(t)
	for _, role := range types.Roles {
		logs.On("FilterLogs", mock.Anything, timelock, []common.Hash{granted, role.ID()}).Return(history[role], nil).Once()
		logs.On("FilterLogs", mock.Anything, timelock, []common.Hash{revoked, role.ID()}).Return(nil, nil).Once()
	}

	return logs
}

// execute runs the command tree against the given collaborators and returns what it printed.
func execute(t *testing.T, contract *mocks.TimelockInspector, logs *mocks.LogFilterer, args ...string) (string, error) {
	t.Helper()

	cmd := buildRootCmd(&options{
		limiter: rate.NewLimiter(rate.Inf, 1),
		dial: func(context.Context, *config.Config, *rate.Limiter, types.Network) (*backend, error) {
			return &backend{contract: contract, logs: logs, close: func() {}}, nil
		},
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestViewCmd(t *testing.T) {
	t.Parallel()

	contract := mocks.NewTimelockInspector(t)
	contract.On("GetAdminRole", mock.Anything, timelock).Return(types.TimelockAdminRoleID, nil).Once()

	out, err := execute(t, contract, newLogs(t), "view", "mainnet", timelock.Hex())
	require.NoError(t, err)

	want := strings.Join([]string{
		"Roles on " + timelock.Hex() + ":",
		"executors:",
		"- " + executorA.Hex(),
		"- " + executorB.Hex(),
		"proposers:",
		"- " + executorB.Hex(),
		"timelock_admins:",
		"- " + timelock.Hex(),
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestViewCmd_JSON(t *testing.T) {
	t.Parallel()

	contract := mocks.NewTimelockInspector(t)
	contract.On("GetAdminRole", mock.Anything, timelock).Return(types.TimelockAdminRoleID, nil).Once()

	out, err := execute(t, contract, newLogs(t), "view", "binance", timelock.Hex(), "--output", "json")
	require.NoError(t, err)

	var got struct {
		Timelock common.Address                  `json:"timelock"`
		Roles    map[types.Role][]common.Address `json:"roles"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, timelock, got.Timelock)
	assert.Equal(t, map[types.Role][]common.Address{
		types.RoleExecutor:      {executorA, executorB},
		types.RoleProposer:      {executorB},
		types.RoleTimelockAdmin: {timelock},
	}, got.Roles)
}

func TestViewCmd_NotTimelock(t *testing.T) {
	t.Parallel()

	contract := mocks.NewTimelockInspector(t)
	contract.On("GetAdminRole", mock.Anything, timelock).Return(common.Hash{}, nil).Once()

	out, err := execute(t, contract, mocks.NewLogFilterer(t), "view", "matic", timelock.Hex())
	require.ErrorContains(t, err, "does not appear to be a TimelockController instance")
	assert.Empty(t, out)
}

func TestRevokeCmd(t *testing.T) {
	t.Parallel()

	contract := mocks.NewTimelockInspector(t)
	contract.On("GetAdminRole", mock.Anything, timelock).Return(types.TimelockAdminRoleID, nil).Once()
	contract.On("HasRole", mock.Anything, timelock, types.TimelockAdminRoleID, timelock).Return(true, nil).Once()
	contract.On("GetMinDelay", mock.Anything, timelock).Return(big.NewInt(3600), nil).Once()

	out, err := execute(t, contract, newLogs(t), "revoke", "bnb", timelock.Hex())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "To remove executors:\n "+executorA.Hex()+"\n\n"), out)
	assert.Contains(t, out, " targets="+timelock.Hex()+"\n")
	assert.Contains(t, out, " values=0\n")
	assert.Contains(t, out, "\n  revokeRole(role="+types.ExecutorRoleID.Hex()+", account="+executorA.Hex()+")\n")
	assert.Contains(t, out, " predecessor="+evm.ZeroHash.Hex()+"\n")
	assert.Contains(t, out, " delay=3600\n")
	assert.Contains(t, out, "After the delay of 3600 seconds (1h0m0s)")
}

func TestRevokeCmd_JSON(t *testing.T) {
	t.Parallel()

	contract := mocks.NewTimelockInspector(t)
	contract.On("GetAdminRole", mock.Anything, timelock).Return(types.TimelockAdminRoleID, nil).Once()
	contract.On("HasRole", mock.Anything, timelock, types.ExecutorRoleID, executorB).Return(true, nil).Once()
	contract.On("HasRole", mock.Anything, timelock, types.TimelockAdminRoleID, timelock).Return(true, nil).Once()
	contract.On("GetMinDelay", mock.Anything, timelock).Return(big.NewInt(60), nil).Once()

	out, err := execute(t, contract, newLogs(t), "revoke", "mainnet", timelock.Hex(), executorB.Hex(), "-o", "json")
	require.NoError(t, err)

	var got struct {
		ToRemove          []common.Address `json:"toRemove"`
		Delay             *big.Int         `json:"delay"`
		DelayDuration     types.Duration   `json:"delayDuration"`
		ScheduleBatchData string           `json:"scheduleBatchData"`
		ExecuteBatchData  string           `json:"executeBatchData"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []common.Address{executorB}, got.ToRemove)
	assert.Equal(t, int64(60), got.Delay.Int64())
	assert.Equal(t, types.NewDuration(time.Minute), got.DelayDuration)

	scheduleOp, err := evm.ParseFunctionCall(common.FromHex(got.ScheduleBatchData))
	require.NoError(t, err)
	assert.Equal(t, "scheduleBatch", scheduleOp.FunctionName)
	executeOp, err := evm.ParseFunctionCall(common.FromHex(got.ExecuteBatchData))
	require.NoError(t, err)
	assert.Equal(t, "executeBatch", executeOp.FunctionName)
}

func TestRevokeCmd_RemoveAll(t *testing.T) {
	t.Parallel()

	contract := mocks.NewTimelockInspector(t)
	contract.On("GetAdminRole", mock.Anything, timelock).Return(types.TimelockAdminRoleID, nil).Once()
	contract.On("HasRole", mock.Anything, timelock, types.ExecutorRoleID, mock.Anything).Return(true, nil).Twice()

	out, err := execute(t, contract, newLogs(t), "revoke", "mainnet", timelock.Hex(), executorA.Hex()+","+executorB.Hex())
	require.EqualError(t, err, "refusing to remove all executors from the timelock since this may brick the contract")
	assert.Empty(t, out)
}

func TestPrintPlan_NothingToRemove(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, printPlan(&out, nil))
	assert.Equal(t, "No executors found to remove.\n", out.String())
}

func TestPrintPlan_UndecodablePayload(t *testing.T) {
	t.Parallel()

	plan := &roles.RevocationPlan{Payloads: []hexutil.Bytes{{0xde, 0xad, 0xbe, 0xef}}}

	var out bytes.Buffer
	require.ErrorContains(t, printPlan(&out, plan), "failed to decode payload 0")
	assert.Empty(t, out.String())
}

func TestPrintRoles_NoneFound(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, printRoles(&out, timelock, nil))
	assert.Equal(t, "Roles on "+timelock.Hex()+":\nexecutors:\n none found\nproposers:\n none found\ntimelock_admins:\n none found\n", out.String())
}

func TestArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    []string
		wantErr string
	}{
		{
			name:    "missing action",
			give:    []string{},
			wantErr: "missing action, expected view or revoke",
		},
		{
			name:    "unknown action",
			give:    []string{"frobnicate", "mainnet", timelock.Hex()},
			wantErr: `unknown action "frobnicate", expected view or revoke`,
		},
		{
			name:    "missing address",
			give:    []string{"view", "mainnet"},
			wantErr: "accepts between 2 and 2 arg(s), received 1",
		},
		{
			name:    "too many arguments",
			give:    []string{"revoke", "mainnet", timelock.Hex(), executorA.Hex(), "extra"},
			wantErr: "accepts between 2 and 3 arg(s), received 4",
		},
		{
			name:    "unsupported network",
			give:    []string{"view", "goerli", timelock.Hex()},
			wantErr: `unsupported network: "goerli"`,
		},
		{
			name:    "invalid address",
			give:    []string{"view", "mainnet", "0x1234"},
			wantErr: `invalid timelock address "0x1234"`,
		},
		{
			name:    "address without prefix",
			give:    []string{"view", "mainnet", "1111111111111111111111111111111111111111"},
			wantErr: `invalid timelock address "1111111111111111111111111111111111111111"`,
		},
		{
			name:    "address with a wrong checksum",
			give:    []string{"view", "mainnet", "0x5B38Da6a701c568545dCfcB03FcB875f56beddc4"},
			wantErr: `invalid timelock address "0x5B38Da6a701c568545dCfcB03FcB875f56beddc4"`,
		},
		{
			name:    "unsupported output",
			give:    []string{"view", "mainnet", timelock.Hex(), "--output", "yaml"},
			wantErr: `unsupported output "yaml", expected text or json`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, mocks.NewTimelockInspector(t), mocks.NewLogFilterer(t), tt.give...)
			require.EqualError(t, err, tt.wantErr)
			// input errors print the usage
			assert.Contains(t, out, "Usage:")
		})
	}
}
