package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGet(t *testing.T) {
	s := New(t.TempDir())

	_, ok := s.Get("https://example.com/a.png")
	assert.False(t, ok)

	require.NoError(t, s.Put("https://example.com/a.png", []byte("png")))
	data, ok := s.Get("https://example.com/a.png")
	require.True(t, ok)
	assert.Equal(t, []byte("png"), data)

	assert.NotEqual(t, s.Path("a"), s.Path("b"))
}

func TestStoreDelete(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	require.NoError(t, s.Put("k", []byte("v")))
	assert.Equal(t, dir, filepath.Dir(s.Path("k")))

	require.NoError(t, s.Delete("k"))
	_, ok := s.Get("k")
	assert.False(t, ok)
	assert.NoError(t, s.Delete("k"), "deleting a missing entry is fine")
}

func TestSaveLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	type record struct {
		Demo   string         `json:"demo"`
		Values map[string]int `json:"values"`
	}
	in := record{Demo: "remember", Values: map[string]int{"remember/durable/count": 3}}
	require.NoError(t, SaveJSON(path, in))

	var out record
	require.NoError(t, LoadJSON(path, &out))
	assert.Equal(t, in, out)

	_, err := os.Stat(path + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist), "temp file is renamed away")
}

func TestLoadJSONMissingFile(t *testing.T) {
	var v map[string]any
	err := LoadJSON(filepath.Join(t.TempDir(), "missing.json"), &v)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, SaveJSON(path, 1))
	require.NoError(t, Remove(path))
	assert.NoFileExists(t, path)
	assert.NoError(t, Remove(path))
}
