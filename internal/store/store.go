// Package store is for durable persistence of datasets and the run log.
package store

import (
	"sync"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
)

// StoreManagerImpl manages the dataset store and the run log store.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	datasets     contract.DatasetStore
	runs         contract.RunStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetDatasetStore returns the dataset store.
func (mgr *StoreManagerImpl) GetDatasetStore() contract.DatasetStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.datasets
}

// GetRunStore returns the run log store.
func (mgr *StoreManagerImpl) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
