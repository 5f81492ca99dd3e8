package kv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/ebbinghaus/internal/model"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestFile(t *testing.T) *File {
	t.Helper()
	f, err := NewFile(afero.NewMemMapFs(), "/kv")
	require.NoError(t, err)
	return f
}

func substrates(t *testing.T) map[string]Substrate {
	return map[string]Substrate{
		"sqlite": newTestSQLite(t),
		"file":   newTestFile(t),
	}
}

func TestGetMissing(t *testing.T) {
	for name, s := range substrates(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := s.Get(context.Background(), PointsKey)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestSetOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, s := range substrates(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, PointsKey, `[1]`))
			require.NoError(t, s.Set(ctx, PointsKey, `[1,2]`))
			require.NoError(t, s.Set(ctx, SettingsKey, `{}`))

			v, ok, err := s.Get(ctx, PointsKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[1,2]`, v)

			v, ok, err = s.Get(ctx, SettingsKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{}`, v)
		})
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "dir", "kv.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, PointsKey, `["x"]`))
	require.NoError(t, s.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(ctx, PointsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["x"]`, v)
	assert.Equal(t, path, s.Path())
}

func TestFileLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	f, err := NewFile(fsys, "/data")
	require.NoError(t, err)

	require.NoError(t, f.Set(ctx, PointsKey, "a"))
	require.NoError(t, f.Set(ctx, PointsKey, "b"))

	entries, err := afero.ReadDir(fsys, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, PointsKey+".json", entries[0].Name())
}

func TestQuota(t *testing.T) {
	ctx := context.Background()
	s := WithQuota(newTestFile(t), 8)

	require.NoError(t, s.Set(ctx, PointsKey, "12345678"))
	err := s.Set(ctx, PointsKey, strings.Repeat("x", 9))
	assert.ErrorIs(t, err, model.ErrStorageFull)

	v, _, err := s.Get(ctx, PointsKey)
	require.NoError(t, err)
	assert.Equal(t, "12345678", v, "rejected write must not change the stored value")
}

func TestQuotaDisabled(t *testing.T) {
	f := newTestFile(t)
	assert.Same(t, Substrate(f), WithQuota(f, 0))
}
