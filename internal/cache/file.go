package cache

import (
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fortuna/aurum/internal/dataset"
)

// Key identifies one historical dataset snapshot. All three fields must
// match exactly for a cached snapshot to be reused; any change to the
// training range or the current season is a miss.
type Key struct {
	FirstSeason   string
	LastSeason    string
	CurrentSeason string
}

// Filename renders the on-disk naming contract for this key. The .pkl
// suffix is part of the contract; consumers reconstruct it to check
// validity. The payload itself is gob-encoded.
func (k Key) Filename() string {
	return fmt.Sprintf("historical_data_%s_to_%s_for_%s.pkl", k.FirstSeason, k.LastSeason, k.CurrentSeason)
}

// snapshot is the persisted payload. The key is stored alongside the rows
// so a renamed file cannot masquerade as a different training range.
type snapshot struct {
	Key  Key
	Rows []dataset.ModelingRow
}

// FileCache persists historical modeling tables under a directory. There is
// no TTL and no partial invalidation; stale snapshots for old keys simply
// accumulate until removed by hand.
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache rooted at dir.
func NewFileCache(dir string) *FileCache {
	return &FileCache{dir: dir}
}

// Load returns the cached rows for key, or ok=false on any miss: no file,
// unreadable file, or a stored key that does not match exactly. Read
// failures are misses, never errors; the caller rebuilds and stores.
func (c *FileCache) Load(key Key) ([]dataset.ModelingRow, bool) {
	path := filepath.Join(c.dir, key.Filename())

	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		log.Printf("[cache] Warning: unreadable snapshot %s: %v (rebuilding)", path, err)
		return nil, false
	}

	if snap.Key != key {
		log.Printf("[cache] Warning: snapshot %s holds key %+v, want %+v (rebuilding)", path, snap.Key, key)
		return nil, false
	}

	return snap.Rows, true
}

// Store writes the rows for key, replacing any previous snapshot for the
// same key.
func (c *FileCache) Store(key Key, rows []dataset.ModelingRow) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	path := filepath.Join(c.dir, key.Filename())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(snapshot{Key: key, Rows: rows}); err != nil {
		return fmt.Errorf("encoding cache snapshot: %w", err)
	}

	return nil
}
