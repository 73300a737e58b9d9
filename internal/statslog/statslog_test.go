package statslog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordThenReadAggregatesByKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pusoy.log")

	rec, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, rec.Record("gameOver", map[string]int{"winner": 2}))
	require.NoError(t, rec.Record("gameOver", map[string]int{"winner": 0}))
	require.NoError(t, rec.Record("lobbyCreated", map[string]string{"gameId": "falcon-river"}))
	require.NoError(t, rec.Close())

	stats, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalEvents)
	require.Equal(t, 2, stats.ByKind["gameOver"])
	require.Equal(t, 1, stats.ByKind["lobbyCreated"])
}

func TestReadMissingFileReturnsEmptyStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.log")

	stats, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, 0, stats.TotalEvents)
}

func TestRecordAppendsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.log")

	rec, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, rec.Record("kill", nil))
	require.NoError(t, rec.Close())

	rec2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, rec2.Record("kill", nil))
	require.NoError(t, rec2.Close())

	stats, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalEvents)
	require.Equal(t, 2, stats.ByKind["kill"])
}
