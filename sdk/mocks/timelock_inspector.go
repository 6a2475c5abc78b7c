package mocks

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
)

// TimelockInspector is a mock type for the sdk.TimelockInspector interface.
type TimelockInspector struct {
	mock.Mock
}

// NewTimelockInspector creates a TimelockInspector whose expectations are asserted when the test ends.
func NewTimelockInspector(t interface {
	mock.TestingT
	Cleanup(func())
}) *TimelockInspector {
	m := &TimelockInspector{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// GetAdminRole provides a mock function with given fields: ctx, timelock
func (m *TimelockInspector) GetAdminRole(ctx context.Context, timelock common.Address) (common.Hash, error) {
	ret := m.Called(ctx, timelock)

	return ret.Get(0).(common.Hash), ret.Error(1)
}

// HasRole provides a mock function with given fields: ctx, timelock, role, account
func (m *TimelockInspector) HasRole(
	ctx context.Context, timelock common.Address, role common.Hash, account common.Address,
) (bool, error) {
	ret := m.Called(ctx, timelock, role, account)

	return ret.Bool(0), ret.Error(1)
}

// GetMinDelay provides a mock function with given fields: ctx, timelock
func (m *TimelockInspector) GetMinDelay(ctx context.Context, timelock common.Address) (*big.Int, error) {
	ret := m.Called(ctx, timelock)

	var delay *big.Int
	if v := ret.Get(0); v != nil {
		delay = v.(*big.Int)
	}

	return delay, ret.Error(1)
}
