package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

func sampleDataset(owner, repo string, events int) *schema.Dataset {
	ds := &schema.Dataset{
		Owner:       owner,
		Repo:        repo,
		CollectedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	for i := range events {
		ds.Events = append(ds.Events, schema.StarEvent{
			Repo:      owner + "/" + repo,
			StarredAt: ds.CollectedAt.Add(-time.Duration(events-i) * time.Hour),
			Actor:     "user",
		})
	}
	return ds
}

func TestFileDatasetStoreSaveAndLoad(t *testing.T) {
	s, err := NewFileDatasetStore(t.TempDir())
	require.NoError(t, err)

	ds := sampleDataset("golang", "go", 3)
	require.NoError(t, s.Save(ds))

	loaded, err := s.Load("golang_go")
	require.NoError(t, err)
	assert.Equal(t, "golang", loaded.Owner)
	assert.Equal(t, "go", loaded.Repo)
	assert.Len(t, loaded.Events, 3)
	assert.True(t, loaded.CollectedAt.Equal(ds.CollectedAt))
}

func TestFileDatasetStoreSaveReplaces(t *testing.T) {
	s, err := NewFileDatasetStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(sampleDataset("o", "r", 5)))
	require.NoError(t, s.Save(sampleDataset("o", "r", 2)))

	loaded, err := s.Load("o_r")
	require.NoError(t, err)
	assert.Len(t, loaded.Events, 2, "re-collection must fully replace the dataset")
}

func TestFileDatasetStoreLoadMissing(t *testing.T) {
	s, err := NewFileDatasetStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load("nobody_nothing")
	assert.ErrorIs(t, err, contract.ErrNotFound)
}

func TestFileDatasetStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileDatasetStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "o_r.json"), []byte("{not json"), 0o644))
	_, err = s.Load("o_r")
	assert.ErrorIs(t, err, contract.ErrStorage)
}

func TestFileDatasetStoreDelete(t *testing.T) {
	s, err := NewFileDatasetStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(sampleDataset("o", "r", 1)))
	require.NoError(t, s.Delete("o_r"))
	_, err = s.Load("o_r")
	assert.ErrorIs(t, err, contract.ErrNotFound)

	// Deleting again is fine.
	assert.NoError(t, s.Delete("o_r"))
}

func TestFileDatasetStoreList(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileDatasetStore(dir)
	require.NoError(t, err)

	keys, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, s.Save(sampleDataset("zig", "lang", 1)))
	require.NoError(t, s.Save(sampleDataset("golang", "go", 1)))
	// Stray files are skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("x"), 0o644))

	keys, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"golang_go", "zig_lang"}, keys)
}
