package store

import (
	"github.com/stretchr/testify/mock"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetDatasetStore implements the StoreManager interface.
func (m *MockStoreManager) GetDatasetStore() contract.DatasetStore {
	ret := m.Called()
	s, _ := ret.Get(0).(contract.DatasetStore)
	return s
}

// GetRunStore implements the StoreManager interface.
func (m *MockStoreManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	s, _ := ret.Get(0).(contract.RunStore)
	return s
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// RecordRun implements the RunStore interface.
func (m *MockRunStore) RecordRun(run schema.CollectionRun) (int64, error) {
	args := m.Called(run)
	return args.Get(0).(int64), args.Error(1)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.RunStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RunStatus), args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	return m.Called().Error(0)
}
