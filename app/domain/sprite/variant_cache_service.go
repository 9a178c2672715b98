package sprite

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"tileworld.ai/sprite-gateway/app/utils/logger"
	"tileworld.ai/sprite-gateway/config/environment_variables"
)

// PublicImagePrefix is the URL prefix under which generated images are
// served; every cached imageUrl lives under it.
const PublicImagePrefix = "/generated/"

// Variant is one cached generated image for a specific (objectKey,
// orientation) pair.
type Variant struct {
	ObjectKey   string
	Orientation Orientation
	ImageURL    string
	UpdatedAt   time.Time
}

// SnapshotEntry is the persisted form of a variant.
type SnapshotEntry struct {
	ImageURL  string    `json:"imageUrl"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SnapshotTable is the persisted form of the whole cache: objectKey ->
// orientation -> entry.
type SnapshotTable map[string]map[string]SnapshotEntry

// SnapshotStore persists the variant table as a whole-table snapshot.
type SnapshotStore interface {
	Load() (SnapshotTable, error)
	Save(table SnapshotTable) error
}

// VariantCacheService is the in-memory variant table plus its persisted
// snapshot. The table holds at most one variant per (objectKey,
// orientation); writes are last-write-wins and every structural change is
// persisted synchronously before the mutating call returns. The mutex
// serializes mutators and snapshot writes; lookups for different keys during
// a slow generation are not ordered against each other.
type VariantCacheService struct {
	mu      sync.Mutex
	entries map[string]map[Orientation]Variant
	store   SnapshotStore
}

func NewVariantCacheService(store SnapshotStore) *VariantCacheService {
	return &VariantCacheService{
		entries: make(map[string]map[Orientation]Variant),
		store:   store,
	}
}

// Load reads the persisted snapshot once at startup. A missing or corrupt
// snapshot degrades to an empty table rather than failing the process.
func (s *VariantCacheService) Load() {
	table, err := s.store.Load()
	if err != nil {
		logger.GetLogger().Warnf("variant cache: unable to load snapshot, starting empty: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]map[Orientation]Variant, len(table))
	for objectKey, orientations := range table {
		byOrientation := make(map[Orientation]Variant, len(orientations))
		for orientation, entry := range orientations {
			normalized := NormalizeOrientation(orientation)
			byOrientation[normalized] = Variant{
				ObjectKey:   objectKey,
				Orientation: normalized,
				ImageURL:    entry.ImageURL,
				UpdatedAt:   entry.UpdatedAt,
			}
		}
		s.entries[objectKey] = byOrientation
	}
}

// Lookup returns the cached variant for (objectKey, orientation) only if the
// backing image still exists on disk; a stale entry reads as a miss.
func (s *VariantCacheService) Lookup(objectKey string, orientation Orientation) (Variant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	variant, ok := s.entries[objectKey][orientation]
	if !ok || !s.backingFileExists(variant.ImageURL) {
		return Variant{}, false
	}
	return variant, true
}

// LookupAny scans the fixed preference order (south, east, west, north) and
// returns the first variant whose backing image exists. Used to find a
// reuse source when the exact orientation is missing.
func (s *VariantCacheService) LookupAny(objectKey string) (Variant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, orientation := range reusePreference {
		if variant, ok := s.entries[objectKey][orientation]; ok && s.backingFileExists(variant.ImageURL) {
			return variant, true
		}
	}
	return Variant{}, false
}

// Insert records a variant, overwriting any prior entry for the pair, and
// persists the whole table before returning. On a persistence failure the
// in-memory table is rolled back so it never diverges from disk.
func (s *VariantCacheService) Insert(objectKey string, orientation Orientation, imageURL string) (Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	variant := Variant{
		ObjectKey:   objectKey,
		Orientation: orientation,
		ImageURL:    imageURL,
		UpdatedAt:   time.Now().UTC(),
	}

	byOrientation, hadKey := s.entries[objectKey]
	if !hadKey {
		byOrientation = make(map[Orientation]Variant)
		s.entries[objectKey] = byOrientation
	}
	previous, hadPrevious := byOrientation[orientation]
	byOrientation[orientation] = variant

	if err := s.persistLocked(); err != nil {
		if hadPrevious {
			byOrientation[orientation] = previous
		} else {
			delete(byOrientation, orientation)
			if !hadKey {
				delete(s.entries, objectKey)
			}
		}
		return Variant{}, err
	}
	return variant, nil
}

// Remove deletes the entry for the pair if present, dropping the object key
// entirely once its last orientation is gone. Removing an absent entry is a
// no-op reporting removed=false.
func (s *VariantCacheService) Remove(objectKey string, orientation Orientation) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byOrientation, ok := s.entries[objectKey]
	if !ok {
		return false, nil
	}
	previous, ok := byOrientation[orientation]
	if !ok {
		return false, nil
	}

	delete(byOrientation, orientation)
	if len(byOrientation) == 0 {
		delete(s.entries, objectKey)
	}

	if err := s.persistLocked(); err != nil {
		if _, restored := s.entries[objectKey]; !restored {
			s.entries[objectKey] = map[Orientation]Variant{}
		}
		s.entries[objectKey][orientation] = previous
		return false, err
	}
	return true, nil
}

// Sweep drops entries whose backing file vanished and persists once if
// anything was pruned. Returns how many entries were dropped.
func (s *VariantCacheService) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for objectKey, byOrientation := range s.entries {
		for orientation, variant := range byOrientation {
			if !s.backingFileExists(variant.ImageURL) {
				delete(byOrientation, orientation)
				pruned++
			}
		}
		if len(byOrientation) == 0 {
			delete(s.entries, objectKey)
		}
	}
	if pruned > 0 {
		if err := s.persistLocked(); err != nil {
			logger.GetLogger().Warnf("variant cache: sweep persist failed: %v", err)
		}
	}
	return pruned
}

func (s *VariantCacheService) persistLocked() error {
	table := make(SnapshotTable, len(s.entries))
	for objectKey, byOrientation := range s.entries {
		orientations := make(map[string]SnapshotEntry, len(byOrientation))
		for orientation, variant := range byOrientation {
			orientations[string(orientation)] = SnapshotEntry{
				ImageURL:  variant.ImageURL,
				UpdatedAt: variant.UpdatedAt,
			}
		}
		table[objectKey] = orientations
	}
	return s.store.Save(table)
}

func (s *VariantCacheService) backingFileExists(imageURL string) bool {
	filePath, ok := ImagePathForURL(imageURL)
	if !ok {
		return false
	}
	info, err := os.Stat(filePath)
	return err == nil && !info.IsDir()
}

// ImagePathForURL maps a public image URL back to its file under the
// generated-output directory. It rejects anything outside the managed
// prefix or not resolving to a plain file name inside it.
func ImagePathForURL(imageURL string) (string, bool) {
	if !strings.HasPrefix(imageURL, PublicImagePrefix) {
		return "", false
	}
	name := path.Clean(strings.TrimPrefix(imageURL, PublicImagePrefix))
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return "", false
	}
	return filepath.Join(environment_variables.EnvironmentVariables.GENERATED_DIR, name), true
}

// ImageURLFor returns the public URL for a file name in the
// generated-output directory.
func ImageURLFor(fileName string) string {
	return PublicImagePrefix + fileName
}
