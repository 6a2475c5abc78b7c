package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
)

// LogFilterer is a mock type for the sdk.LogFilterer interface. Topics are matched as one slice.
type LogFilterer struct {
	mock.Mock
}

// NewLogFilterer creates a LogFilterer whose expectations are asserted when the test ends.
func NewLogFilterer(t interface {
	mock.TestingT
	Cleanup(func())
}) *LogFilterer {
	m := &LogFilterer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// FilterLogs provides a mock function with given fields: ctx, address, topics
func (m *LogFilterer) FilterLogs(ctx context.Context, address common.Address, topics ...common.Hash) ([]types.Log, error) {
	ret := m.Called(ctx, address, topics)

	var logs []types.Log
	if v := ret.Get(0); v != nil {
		logs = v.([]types.Log)
	}

	return logs, ret.Error(1)
}
