package scores

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"blockblast/src/base"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func rec(mode base.GameMode, score int, minutes int) Record {
	return Record{ID: uuid.New(), Mode: mode, Score: score, Date: epoch.Add(time.Duration(minutes) * time.Minute)}
}

func stores(t *testing.T, limit int) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(limit),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "nested", scoreFile), limit),
	}
}

func TestStoreOrderingAndCap(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t, 3) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Append(ctx, rec(base.Classic, 10, 0)))
			require.NoError(t, s.Append(ctx, rec(base.Classic, 50, 1)))
			require.NoError(t, s.Append(ctx, rec(base.Classic, 30, 2)))
			require.NoError(t, s.Append(ctx, rec(base.Classic, 30, 3)))
			require.NoError(t, s.Append(ctx, rec(base.Chaos, 5, 4)))

			top, err := s.Top(ctx, base.Classic, 0)
			require.NoError(t, err)
			require.Len(t, top, 3)
			assert.Equal(t, 50, top[0].Score)
			assert.Equal(t, 30, top[1].Score)
			assert.True(t, top[1].Date.After(top[2].Date), "ties favour the newer record")

			top, err = s.Top(ctx, base.Classic, 1)
			require.NoError(t, err)
			assert.Len(t, top, 1)

			chaos, err := s.Top(ctx, base.Chaos, 10)
			require.NoError(t, err)
			require.Len(t, chaos, 1)
			assert.Equal(t, 5, chaos[0].Score)
		})
	}
}

func TestStoreRejectsBadRecord(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t, DefaultCap) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.Append(ctx, rec(base.GameMode(9), 1, 0)), ErrBadRecord)
			assert.ErrorIs(t, s.Append(ctx, rec(base.Classic, -1, 0)), ErrBadRecord)

			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			assert.ErrorIs(t, s.Append(cancelled, rec(base.Classic, 1, 0)), context.Canceled)
		})
	}
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), scoreFile)
	r := rec(base.Chaos, 77, 0)
	r.Placements, r.Lines = 12, 4
	require.NoError(t, NewFileStore(path, DefaultCap).Append(ctx, r))

	top, err := NewFileStore(path, DefaultCap).Top(ctx, base.Chaos, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, r.ID, top[0].ID)
	assert.Equal(t, 12, top[0].Placements)
	assert.True(t, r.Date.Equal(top[0].Date))
}

func TestFileStoreMissingAndCorrupt(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), scoreFile)
	fs := NewFileStore(path, DefaultCap)

	top, err := fs.Top(ctx, base.Classic, 10)
	require.NoError(t, err)
	assert.Empty(t, top)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = fs.Top(ctx, base.Classic, 10)
	assert.Error(t, err)
}
