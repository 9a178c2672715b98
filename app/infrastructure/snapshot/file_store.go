package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tileworld.ai/sprite-gateway/app/domain/sprite"
	"tileworld.ai/sprite-gateway/config/environment_variables"
)

// FileStore persists the variant table as a single JSON snapshot file,
// replaced atomically on every save.
type FileStore struct {
	path string
}

func NewFileStore() *FileStore {
	return &FileStore{
		path: environment_variables.EnvironmentVariables.CACHE_SNAPSHOT_PATH,
	}
}

// NewFileStoreAt creates a store against an explicit snapshot path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the whole snapshot. A missing file is an empty table;
// unreadable or corrupt content is an error the caller may degrade on.
func (s *FileStore) Load() (sprite.SnapshotTable, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return sprite.SnapshotTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	var table sprite.SnapshotTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", s.path, err)
	}
	return table, nil
}

// Save writes the whole table to a temp file and renames it over the
// snapshot, so readers never observe a partial write.
func (s *FileStore) Save(table sprite.SnapshotTable) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".object_cache-*.json")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace snapshot %s: %w", s.path, err)
	}
	return nil
}
