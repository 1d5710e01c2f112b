// Package cache stores small files under the user cache directory. Writers
// take an exclusive flock and replace files atomically; readers take a
// shared lock, so concurrent gallery processes never observe partial data.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// DefaultDir returns the gallery cache directory, falling back to the temp
// dir when the platform has no cache location.
func DefaultDir() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, "gallery")
}

// Store is a directory of content-addressed blobs.
type Store struct {
	dir string
}

// New returns a Store rooted at dir. An empty dir means DefaultDir/blobs.
func New(dir string) *Store {
	if dir == "" {
		dir = filepath.Join(DefaultDir(), "blobs")
	}
	return &Store{dir: dir}
}

// Path returns the file holding key. Keys are hashed so any string (a URL,
// typically) maps to a safe file name.
func (s *Store) Path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:16]))
}

// Get returns the cached bytes for key.
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := ReadFile(s.Path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores data under key.
func (s *Store) Put(key string, data []byte) error {
	return WriteFile(s.Path(key), data)
}

// Delete drops the entry for key.
func (s *Store) Delete(key string) error {
	return Remove(s.Path(key))
}

// ReadFile reads path under a shared lock.
func ReadFile(path string) ([]byte, error) {
	// Acquire shared (read) lock - blocks if exclusive lock is held
	fileLock := flock.New(path + ".lock")
	if err := fileLock.RLock(); err != nil {
		return nil, err
	}
	defer fileLock.Unlock()

	return os.ReadFile(path)
}

// WriteFile replaces path atomically under an exclusive lock.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	// Acquire exclusive lock - blocks until lock is available
	fileLock := flock.New(path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return err
	}
	defer fileLock.Unlock()

	// Write atomically: write to temp file then rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

// LoadJSON decodes the file at path into v. A missing file is reported as
// os.ErrNotExist.
func LoadJSON(path string, v any) error {
	data, err := ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SaveJSON encodes v to path.
func SaveJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// Remove deletes path and its lock file. Missing files are not an error.
func Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	_ = os.Remove(path + ".lock")
	return nil
}
