package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtichikawa/github-trend-forecaster/schema"
)

func newSQLiteRunStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	rs, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rs.Close() })
	return rs.(*RunStoreImpl)
}

func sampleRun(key string, events int) schema.CollectionRun {
	return schema.CollectionRun{
		DatasetKey:  key,
		EventCount:  events,
		StartedAt:   time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC),
		Duration:    90 * time.Second,
		TokenInUse:  true,
		PagesParsed: 4,
	}
}

func TestRunStoreRecordAndStatus(t *testing.T) {
	rs := newSQLiteRunStore(t)

	id1, err := rs.RecordRun(sampleRun("golang_go", 250))
	require.NoError(t, err)
	assert.Positive(t, id1)

	id2, err := rs.RecordRun(sampleRun("golang_go", 30))
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	status, err := rs.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(2), status.TotalRuns)
	assert.Equal(t, id2, status.LastRunID)
	assert.Equal(t, int64(280), status.TotalEvents)
	assert.Equal(t, 2024, status.LastRunTime.Year())
}

func TestRunStoreEmptyStatus(t *testing.T) {
	rs := newSQLiteRunStore(t)

	status, err := rs.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)
	assert.Zero(t, status.TotalEvents)
}

func TestRunStoreNoneBackend(t *testing.T) {
	rs, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = rs.Close() }()

	id, err := rs.RecordRun(sampleRun("o_r", 10))
	require.NoError(t, err)
	assert.Zero(t, id)

	status, err := rs.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestRunStoreUnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestClearRunsSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	rs, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = rs.RecordRun(sampleRun("o_r", 1))
	require.NoError(t, err)
	require.NoError(t, rs.Close())

	require.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath, ""))

	// Clearing an already-missing file is fine.
	assert.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath, ""))
}

func TestClearRunsSQLiteRequiresPath(t *testing.T) {
	assert.Error(t, ClearRuns(schema.SQLiteBackend, "", ""))
}

func TestClearRunsNoneBackend(t *testing.T) {
	assert.NoError(t, ClearRuns(schema.NoneBackend, "", ""))
}
