package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps one JSON file per key in a directory. Filenames are derived
// from a SHA-256 hash of the key, so any string is a safe key. Multiple
// processes can share a directory; the filesystem provides atomicity at the
// whole-file level, which is sufficient for last-writer-wins caching.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store in dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the absolute path of the cache directory.
func (s *FileStore) Dir() string { return s.dir }

// Get retrieves an entry by key. Returns (nil, nil) when no entry exists or
// the file on disk is not a valid entry; corrupt files are removed.
func (s *FileStore) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := os.ReadFile(s.keyPath(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		_ = os.Remove(s.keyPath(key))
		return nil, nil
	}
	return &e, nil
}

// Set stores data under key, stamping it with the current time.
func (s *FileStore) Set(ctx context.Context, key string, data []byte) error {
	raw, err := json.Marshal(Entry{Data: data, FetchedAt: time.Now()})
	if err != nil {
		return err
	}
	return os.WriteFile(s.keyPath(key), raw, 0o644)
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(h[:])+".json")
}

var _ Store = (*FileStore)(nil)
