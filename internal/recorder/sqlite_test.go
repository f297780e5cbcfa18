package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scope.db")
	rec, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec.Close()

	snaps := []RunSnapshot{
		{Ticker: "AAA", Rows: 250, MissingCells: 3, Outliers: 1, UnusualReturns: 7,
			MeanReturn: 0.05, MinReturn: -4.2, MaxReturn: 5.1, LastClose: 123.45},
		{Ticker: "BBB", Rows: 250},
	}
	require.NoError(t, rec.RecordRun(time.Now(), snaps))

	var count int
	require.NoError(t, rec.db.QueryRow("SELECT COUNT(*) FROM run_snapshots").Scan(&count))
	assert.Equal(t, 2, count)

	var lastClose float64
	require.NoError(t, rec.db.QueryRow(
		"SELECT last_close FROM run_snapshots WHERE ticker = ?", "AAA").Scan(&lastClose))
	assert.Equal(t, 123.45, lastClose)
}

func TestSQLiteRecorder_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scope.db")
	rec, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, rec.RecordRun(time.Now(), []RunSnapshot{{Ticker: "AAA", Rows: 10}}))
	require.NoError(t, rec.Close())

	rec2, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec2.Close()

	var count int
	require.NoError(t, rec2.db.QueryRow("SELECT COUNT(*) FROM run_snapshots").Scan(&count))
	assert.Equal(t, 1, count, "migrations are idempotent and data survives reopen")
}
