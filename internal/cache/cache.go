// Package cache stores parsed record sets keyed by the content hash of the
// source export, so repeated report runs skip spreadsheet parsing.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"

	"ssareport/pkg/models"
)

// Cache is a file-based cache of parsed exports.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
}

type entry struct {
	Hash      string                `json:"hash"`
	Timestamp time.Time             `json:"timestamp"`
	Orders    []models.ServiceOrder `json:"orders"`
}

// New creates a cache rooted at dir. A disabled cache is valid and all its
// lookups miss.
func New(dir string, ttlHours int, enabled bool) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlHours) * time.Hour,
		enabled: true,
	}, nil
}

// HashFile computes the BLAKE3 content hash of a file, hex encoded. The hash
// is both the cache key and the staleness check: a re-downloaded export with
// different content gets a different key.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Lookup returns the cached record set for the given content hash, if
// present and not expired.
func (c *Cache) Lookup(hash string) ([]models.ServiceOrder, bool) {
	if !c.enabled {
		return nil, false
	}

	data, err := os.ReadFile(c.entryPath(hash))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if e.Hash != hash {
		return nil, false
	}
	if time.Since(e.Timestamp) > c.ttl {
		os.Remove(c.entryPath(hash))
		return nil, false
	}
	return e.Orders, true
}

// Store saves a parsed record set under the given content hash. Failures are
// returned but callers may treat them as non-fatal; the cache is an
// optimization, not a source of truth.
func (c *Cache) Store(hash string, orders []models.ServiceOrder) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(entry{
		Hash:      hash,
		Timestamp: time.Now(),
		Orders:    orders,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(c.entryPath(hash), data, 0o644)
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if !c.enabled {
		return nil
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			os.Remove(filepath.Join(c.dir, e.Name()))
		}
	}
	return nil
}

func (c *Cache) entryPath(hash string) string {
	return filepath.Join(c.dir, hash+".json")
}
