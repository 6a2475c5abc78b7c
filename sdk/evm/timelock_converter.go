package evm

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/smartcontractkit/timelock-roles/internal/utils/abi"
)

var ZeroHash = common.Hash{}

var (
	ErrEmptyBatch   = errors.New("batch has no calls")
	ErrInvalidBatch = errors.New("batch targets, values and payloads differ in length")
)

// TimelockBatch is the (targets, values, payloads, predecessor, salt) tuple shared by scheduleBatch,
// executeBatch and hashOperationBatch.
type TimelockBatch struct {
	Targets     []common.Address
	Values      []*big.Int
	Payloads    [][]byte
	Predecessor common.Hash
	Salt        common.Hash
}

func (b TimelockBatch) validate() error {
	if len(b.Targets) == 0 {
		return ErrEmptyBatch
	}
	if len(b.Values) != len(b.Targets) || len(b.Payloads) != len(b.Targets) {
		return ErrInvalidBatch
	}

	return nil
}

type TimelockConverter struct{}

// NewTimelockConverter creates a new TimelockConverter
func NewTimelockConverter() *TimelockConverter {
	return &TimelockConverter{}
}

// RevokeRoleBatch builds a batch that calls revokeRole(role, account) on the timelock itself for every
// account, with zero value and zero predecessor and salt.
func (t *TimelockConverter) RevokeRoleBatch(
	timelock common.Address, role common.Hash, accounts []common.Address,
) (TimelockBatch, error) {
	batch := TimelockBatch{
		Targets:     make([]common.Address, 0, len(accounts)),
		Values:      make([]*big.Int, 0, len(accounts)),
		Payloads:    make([][]byte, 0, len(accounts)),
		Predecessor: ZeroHash,
		Salt:        ZeroHash,
	}

	for _, account := range accounts {
		data, err := timelockABI.Pack("revokeRole", [32]byte(role), account)
		if err != nil {
			return TimelockBatch{}, fmt.Errorf("failed to encode revokeRole for %s: %w", account.Hex(), err)
		}

		batch.Targets = append(batch.Targets, timelock)
		batch.Values = append(batch.Values, big.NewInt(0))
		batch.Payloads = append(batch.Payloads, data)
	}

	return batch, batch.validate()
}

// ScheduleBatch encodes a scheduleBatch call for the batch with the given delay in seconds.
func (t *TimelockConverter) ScheduleBatch(batch TimelockBatch, delay *big.Int) ([]byte, error) {
	if err := batch.validate(); err != nil {
		return nil, err
	}
	if delay == nil || delay.Sign() < 0 {
		return nil, fmt.Errorf("invalid delay %v", delay)
	}

	return timelockABI.Pack("scheduleBatch",
		batch.Targets, batch.Values, batch.Payloads, batch.Predecessor, batch.Salt, delay)
}

// ExecuteBatch encodes the executeBatch call matching a scheduled batch.
func (t *TimelockConverter) ExecuteBatch(batch TimelockBatch) ([]byte, error) {
	if err := batch.validate(); err != nil {
		return nil, err
	}

	return timelockABI.Pack("executeBatch",
		batch.Targets, batch.Values, batch.Payloads, batch.Predecessor, batch.Salt)
}

// HashOperationBatch replicates TimelockController.hashOperationBatch, the id under which a scheduled
// batch is tracked.
func HashOperationBatch(batch TimelockBatch) (common.Hash, error) {
	const _abi = `[{"type":"address[]"},{"type":"uint256[]"},{"type":"bytes[]"},{"type":"bytes32"},{"type":"bytes32"}]`
	encoded, err := abi.Encode(_abi, batch.Targets, batch.Values, batch.Payloads, batch.Predecessor, batch.Salt)
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Keccak256Hash(encoded), nil
}
