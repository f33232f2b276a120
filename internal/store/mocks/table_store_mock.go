package mocks

import (
	"context"

	"universe-webhook-sync/internal/store"

	"github.com/stretchr/testify/mock"
)

type MockTableStore struct {
	mock.Mock
}

func NewMockTableStore() *MockTableStore {
	return &MockTableStore{}
}

func (m *MockTableStore) ReadAll(ctx context.Context) (*store.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Snapshot), args.Error(1)
}

func (m *MockTableStore) AppendRows(ctx context.Context, rows [][]string) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockTableStore) UpdateRowAt(ctx context.Context, rowIndex int, row []string) error {
	args := m.Called(ctx, rowIndex, row)
	return args.Error(0)
}

func (m *MockTableStore) Headers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTableStore) EnsureHeaders(ctx context.Context, headers []string) error {
	args := m.Called(ctx, headers)
	return args.Error(0)
}
