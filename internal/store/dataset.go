package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// datasetExt is the file extension for persisted datasets.
const datasetExt = ".json"

// FileDatasetStore persists one JSON file per repository under a data
// directory. The file name is the dataset key plus ".json", and a save
// fully replaces any prior file for the same key.
type FileDatasetStore struct {
	dir string
}

var _ contract.DatasetStore = &FileDatasetStore{} // Compile-time check

// NewFileDatasetStore creates a dataset store rooted at dir, creating the
// directory if needed.
func NewFileDatasetStore(dir string) (*FileDatasetStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: failed to create data directory %s: %v", contract.ErrStorage, dir, err)
	}
	return &FileDatasetStore{dir: dir}, nil
}

// Save writes the dataset to disk, replacing any prior dataset under the
// same key. The write goes through a temp file and a rename so a crash
// never leaves a half-written dataset behind.
func (s *FileDatasetStore) Save(ds *schema.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode dataset %s: %v", contract.ErrStorage, ds.Key(), err)
	}

	target := s.pathFor(ds.Key())
	tmp, err := os.CreateTemp(s.dir, ds.Key()+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file for %s: %v", contract.ErrStorage, ds.Key(), err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: failed to write dataset %s: %v", contract.ErrStorage, ds.Key(), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: failed to close temp file for %s: %v", contract.ErrStorage, ds.Key(), err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: failed to replace dataset %s: %v", contract.ErrStorage, ds.Key(), err)
	}
	return nil
}

// Load reads the dataset stored under key. A missing file maps to
// ErrNotFound; anything else on the way maps to ErrStorage.
func (s *FileDatasetStore) Load(key string) (*schema.Dataset, error) {
	data, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no dataset for %s. Run collect first", contract.ErrNotFound, key)
		}
		return nil, fmt.Errorf("%w: failed to read dataset %s: %v", contract.ErrStorage, key, err)
	}

	var ds schema.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("%w: dataset %s is corrupt: %v", contract.ErrStorage, key, err)
	}
	return &ds, nil
}

// Delete removes the dataset stored under key. Deleting an absent dataset
// is not an error.
func (s *FileDatasetStore) Delete(key string) error {
	if err := os.Remove(s.pathFor(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: failed to delete dataset %s: %v", contract.ErrStorage, key, err)
	}
	return nil
}

// List returns the keys of all stored datasets in sorted order.
func (s *FileDatasetStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list data directory %s: %v", contract.ErrStorage, s.dir, err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, datasetExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, datasetExt))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileDatasetStore) pathFor(key string) string {
	return filepath.Join(s.dir, key+datasetExt)
}
