package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gradebook-server/internal/model"
)

func TestNewStore_RequiresPath(t *testing.T) {
	_, err := NewStore("  ")
	require.Error(t, err)
}

func TestStore_LoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "database.json")
	s, err := NewStore(path)
	require.NoError(t, err)

	d, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, d.Users)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":{}}`, string(raw))
}

func TestStore_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "database.json")
	s, err := NewStore(path)
	require.NoError(t, err)

	gk := 8.5
	d := model.NewDataset()
	d.Users["alice"] = model.NewAccount("$2a$10$hash")
	d.Users["alice"].Students = append(d.Users["alice"].Students, model.Student{
		ID:     1700000000000,
		Name:   "Bob",
		Scores: model.Scores{GK: &gk},
	})
	require.NoError(t, s.Save(ctx, d))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	alice, ok := loaded.Account("alice")
	require.True(t, ok)
	require.Len(t, alice.Students, 1)
	assert.Equal(t, "Bob", alice.Students[0].Name)
	assert.Equal(t, 8.5, *alice.Students[0].Scores.GK)
	assert.Nil(t, alice.Students[0].Scores.CK)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"diemCK": null`)
	assert.Contains(t, string(raw), `"passwordHash": "$2a$10$hash"`)
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "database.json"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Save(context.Background(), model.NewDataset()))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "database.json", entries[0].Name())
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewStore(path)
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode dataset file")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw))
}

func TestStore_SaveFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	s, err := NewStore(filepath.Join(blocker, "database.json"))
	require.NoError(t, err)

	err = s.Save(context.Background(), model.NewDataset())
	require.Error(t, err)
}

func TestStore_Ping(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "database.json")
		s, err := NewStore(path)
		require.NoError(t, err)

		assert.NoError(t, s.Ping(ctx))
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err), "ping must not create the file")
	})

	t.Run("existing file", func(t *testing.T) {
		s, err := NewStore(filepath.Join(t.TempDir(), "database.json"))
		require.NoError(t, err)
		require.NoError(t, s.Save(ctx, model.NewDataset()))

		assert.NoError(t, s.Ping(ctx))
	})

	t.Run("path is a directory", func(t *testing.T) {
		s, err := NewStore(t.TempDir())
		require.NoError(t, err)

		err = s.Ping(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is a directory")
	})
}
