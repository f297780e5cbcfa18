package collector

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	csv := "Date,Open,High,Low,Close,Volume\n" +
		"2024-01-02,10,12,9,11,1000\n" +
		"2024-01-03,11,13,10,,1100\n" + // missing close
		"2024-01-04,12,14,11,13,1200\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AAA.csv"), []byte(csv), 0o644))

	f := NewFileFetcher(dir)
	bars, err := f.FetchHistory(context.Background(), "AAA",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, bars, 2, "rows outside the range are excluded")
	assert.Equal(t, "11", bars[0].Close, "cells stay text until standardization")
	assert.Nil(t, bars[1].Close, "empty cell becomes a nil marker")
	assert.Equal(t, "1100", bars[1].Volume)
}

func TestFileFetcher_MissingFile(t *testing.T) {
	f := NewFileFetcher(t.TempDir())
	_, err := f.FetchHistory(context.Background(), "NOPE", time.Now().AddDate(0, -1, 0), time.Now())
	assert.Error(t, err)
}
