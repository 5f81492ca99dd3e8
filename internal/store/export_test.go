package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/ebbinghaus/internal/kv"
	"github.com/rcliao/ebbinghaus/internal/model"
)

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _, sub := newTestStore(t, "2024-01-10")

	got, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.SaveSettings(ctx, map[string]any{"theme": "dark"}))
	got, err = s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"theme": "dark"}, got)

	require.NoError(t, sub.Set(ctx, kv.SettingsKey, "{broken"))
	got, err = s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t, "2024-01-10")
	mustAdd(t, s, "a", model.Learning)
	require.NoError(t, s.SaveSettings(ctx, map[string]any{"k": "v"}))

	b, err := s.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.0", b.Version)
	assert.Equal(t, "2024-01-10", b.ExportDate)
	assert.Len(t, b.KnowledgePoints, 1)
	assert.Equal(t, "v", b.Settings["k"])

	data, err := json.Marshal(b)
	require.NoError(t, err)
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))
	assert.Len(t, keys, 4)
	for _, k := range []string{"knowledgePoints", "settings", "exportDate", "version"} {
		assert.Contains(t, keys, k)
	}
}

func TestImportReplacesAndBacksUp(t *testing.T) {
	ctx := context.Background()
	s, _, sub := newTestStore(t, "2024-01-10")
	old := mustAdd(t, s, "old", model.Learning)
	require.NoError(t, s.SaveSettings(ctx, map[string]any{"theme": "light"}))

	bundle := `{
		"knowledgePoints": [
			{"id":"n1","title":"new","content":"c","masteryLevel":"mastered","tags":["x"],
			 "createdAt":"2023-12-01","lastReviewed":"2023-12-02","nextReview":"2023-12-05","reviewCount":1}
		],
		"settings": {"theme": "dark"},
		"exportDate": "2023-12-31",
		"version": "1.0"
	}`
	n, err := s.Import(ctx, []byte(bundle))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "n1", all[0].ID)

	settings, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", settings["theme"])

	raw, ok, err := sub.Get(ctx, kv.BackupKey)
	require.NoError(t, err)
	require.True(t, ok)
	var backup Bundle
	require.NoError(t, json.Unmarshal([]byte(raw), &backup))
	require.Len(t, backup.KnowledgePoints, 1)
	assert.Equal(t, old.ID, backup.KnowledgePoints[0].ID)
	assert.Equal(t, "light", backup.Settings["theme"])

	n, err = s.RestoreBackup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	all, err = s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, old.ID, all[0].ID)
	settings, err = s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", settings["theme"])
}

func TestImportWithoutSettingsKeepsSettings(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t, "2024-01-10")
	require.NoError(t, s.SaveSettings(ctx, map[string]any{"theme": "light"}))

	_, err := s.Import(ctx, []byte(`{"knowledgePoints": []}`))
	require.NoError(t, err)

	settings, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", settings["theme"])
	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportRejectsInvalidBundle(t *testing.T) {
	ctx := context.Background()
	s, _, sub := newTestStore(t, "2024-01-10")
	kp := mustAdd(t, s, "keep", model.Learning)

	for _, data := range []string{
		`not json`,
		`{}`,
		`{"knowledgePoints": null}`,
		`{"knowledgePoints": {"id": "x"}}`,
		`{"knowledgePoints": "nope"}`,
		`[]`,
	} {
		_, err := s.Import(ctx, []byte(data))
		assert.ErrorIs(t, err, model.ErrInvalidArgument, data)
	}

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, kp.ID, all[0].ID)

	_, ok, err := sub.Get(ctx, kv.BackupKey)
	require.NoError(t, err)
	assert.False(t, ok, "rejected import must not take a backup")
}

func TestRestoreBackupWithoutBackup(t *testing.T) {
	s, _, _ := newTestStore(t, "2024-01-10")
	_, err := s.RestoreBackup(context.Background())
	assert.ErrorIs(t, err, model.ErrNotFound)
}
