// Package store persists the last-known inventory snapshot so the panel
// can render immediately on startup while the first refresh is in flight.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/depot/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketInventory = []byte("inventory")

const modelsKey = "models"

// SnapshotStore implements domain.SnapshotStore using BoltDB.
// Saves are replace-all: the stored list is overwritten wholesale, so ids
// absent from the latest save do not survive.
type SnapshotStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy of the last save for hot-path reads
	cache map[string][]byte
}

// NewSnapshotStore opens (or creates) the snapshot database under
// baseCacheDir, namespaced per engine URL. An empty baseCacheDir selects
// memory-only mode with no persistence.
func NewSnapshotStore(baseCacheDir, engineURL string) (*SnapshotStore, error) {
	if baseCacheDir == "" {
		return &SnapshotStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if engineURL != "" {
		dir = filepath.Join(baseCacheDir, hashEngineURL(engineURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "depot.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketInventory)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SnapshotStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashEngineURL(engineURL string) string {
	normalized := strings.TrimRight(strings.ToLower(engineURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *SnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *SnapshotStore) get(key string, dest interface{}) bool {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketInventory)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *SnapshotStore) set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketInventory)
		return b.Put([]byte(key), data)
	})
}

// === Inventory ===

func (s *SnapshotStore) GetModels() ([]domain.Model, bool) {
	var models []domain.Model
	ok := s.get(modelsKey, &models)
	return models, ok
}

func (s *SnapshotStore) SaveModels(models []domain.Model) error {
	return s.set(modelsKey, models)
}
