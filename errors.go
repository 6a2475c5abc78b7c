package roles

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/timelock-roles/types"
)

var (
	// ErrRemoveAllExecutors is returned when a revocation would leave the timelock without executors.
	ErrRemoveAllExecutors = errors.New("refusing to remove all executors from the timelock since this may brick the contract")

	// ErrMixedRoles is returned when events of different roles are replayed together.
	ErrMixedRoles = errors.New("events belong to more than one role")
)

// NotTimelockError is returned when the contract at an address does not answer like a TimelockController.
type NotTimelockError struct {
	Address common.Address
	Err     error
}

func (e *NotTimelockError) Error() string {
	msg := fmt.Sprintf("contract at %s does not appear to be a TimelockController instance", e.Address.Hex())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *NotTimelockError) Unwrap() error {
	return e.Err
}

// NewNotTimelockError creates a new NotTimelockError.
func NewNotTimelockError(address common.Address, err error) *NotTimelockError {
	return &NotTimelockError{Address: address, Err: err}
}

// InvalidAddressError is returned when an address to remove is not a well-formed address.
type InvalidAddressError struct {
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address to remove: %q", e.Address)
}

// NewInvalidAddressError creates a new InvalidAddressError.
func NewInvalidAddressError(address string) *InvalidAddressError {
	return &InvalidAddressError{Address: address}
}

// NotExecutorError is returned when an address to remove does not hold the executor role.
type NotExecutorError struct {
	Address common.Address
}

func (e *NotExecutorError) Error() string {
	return fmt.Sprintf("address %s is not an executor of the timelock", e.Address.Hex())
}

// NewNotExecutorError creates a new NotExecutorError.
func NewNotExecutorError(address common.Address) *NotExecutorError {
	return &NotExecutorError{Address: address}
}

// NotSelfGovernedError is returned when the timelock does not hold its own admin role, so it cannot
// execute a batch that changes its roles.
type NotSelfGovernedError struct {
	Address common.Address
}

func (e *NotSelfGovernedError) Error() string {
	return fmt.Sprintf("timelock %s is not self-governed", e.Address.Hex())
}

// NewNotSelfGovernedError creates a new NotSelfGovernedError.
func NewNotSelfGovernedError(address common.Address) *NotSelfGovernedError {
	return &NotSelfGovernedError{Address: address}
}

// AmbiguousEventOrderError is returned when two different role events share one chain position, which
// makes their replay order undefined.
type AmbiguousEventOrderError struct {
	First  types.RoleEvent
	Second types.RoleEvent
}

func (e *AmbiguousEventOrderError) Error() string {
	return fmt.Sprintf("ambiguous event order at %s: %s %s and %s %s",
		e.First.LogPosition, e.First.Type, e.First.Account.Hex(), e.Second.Type, e.Second.Account.Hex())
}

// NewAmbiguousEventOrderError creates a new AmbiguousEventOrderError.
func NewAmbiguousEventOrderError(first, second types.RoleEvent) *AmbiguousEventOrderError {
	return &AmbiguousEventOrderError{First: first, Second: second}
}

// UnknownEventTypeError is returned when an event is neither a grant nor a revoke.
type UnknownEventTypeError struct {
	Type types.EventType
}

func (e *UnknownEventTypeError) Error() string {
	return fmt.Sprintf("unknown role event type %q", e.Type)
}
