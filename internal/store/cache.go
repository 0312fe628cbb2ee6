package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/social4sports/sportlink/internal/model"
)

// cacheFileName is the file the conversation snapshot is serialized under.
const cacheFileName = "chat-cache.json"

// Snapshot is the durable subset of chat state. Presence and typing sets are
// session-scoped and deliberately absent.
type Snapshot struct {
	ActivePeer   string                     `json:"activePeer"`
	Messages     map[string][]model.Message `json:"messages"`
	UnreadCounts map[string]int             `json:"unreadCounts"`
}

// Cache persists conversation snapshots across restarts.
type Cache interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
	Clear() error
}

// FileCache stores the snapshot as a JSON file under a state directory.
type FileCache struct {
	path string
}

// NewFileCache creates a file-backed snapshot cache under stateDir.
func NewFileCache(stateDir string) *FileCache {
	return &FileCache{path: filepath.Join(stateDir, cacheFileName)}
}

// Load reads the cached snapshot. A missing file yields (nil, nil).
func (c *FileCache) Load() (*Snapshot, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// Save atomically writes the snapshot via a temp file and rename.
func (c *FileCache) Save(snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Clear removes the cached snapshot.
func (c *FileCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	return nil
}
