package sprite_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "tileworld.ai/sprite-gateway/app/domain/sprite"
	"tileworld.ai/sprite-gateway/app/infrastructure/snapshot"
	"tileworld.ai/sprite-gateway/config/environment_variables"
)

func newTestCache(t *testing.T) (*VariantCacheService, string) {
	t.Helper()
	dir := setupTestEnv(t)
	store := snapshot.NewFileStoreAt(environment_variables.EnvironmentVariables.CACHE_SNAPSHOT_PATH)
	return NewVariantCacheService(store), dir
}

func TestInsertThenLookup(t *testing.T) {
	cache, dir := newTestCache(t)
	writeBackingFile(t, dir, "donut.png")

	inserted, err := cache.Insert("a donut", North, "/generated/donut.png")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, ok := cache.Lookup("a donut", North)
	if !ok {
		t.Fatal("Lookup after Insert must hit")
	}
	if got.ImageURL != inserted.ImageURL || got.Orientation != North || got.ObjectKey != "a donut" {
		t.Errorf("Lookup returned %+v, want inserted variant", got)
	}
}

func TestLookupMissesWhenBackingFileGone(t *testing.T) {
	cache, dir := newTestCache(t)
	writeBackingFile(t, dir, "donut.png")
	if _, err := cache.Insert("a donut", North, "/generated/donut.png"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := os.Remove(filepath.Join(dir, "donut.png")); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Lookup("a donut", North); ok {
		t.Error("Lookup must miss when the backing file is gone")
	}
	if _, ok := cache.LookupAny("a donut"); ok {
		t.Error("LookupAny must miss when the backing file is gone")
	}
}

func TestLookupAnyPreferenceOrder(t *testing.T) {
	cache, dir := newTestCache(t)
	writeBackingFile(t, dir, "east.png")
	writeBackingFile(t, dir, "north.png")
	if _, err := cache.Insert("a donut", North, "/generated/north.png"); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Insert("a donut", East, "/generated/east.png"); err != nil {
		t.Fatal(err)
	}

	// South is absent; east precedes north in the preference order.
	got, ok := cache.LookupAny("a donut")
	if !ok {
		t.Fatal("LookupAny must hit")
	}
	if got.Orientation != East {
		t.Errorf("LookupAny orientation = %q, want east", got.Orientation)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	cache, dir := newTestCache(t)
	writeBackingFile(t, dir, "donut.png")
	if _, err := cache.Insert("a donut", North, "/generated/donut.png"); err != nil {
		t.Fatal(err)
	}

	removed, err := cache.Remove("a donut", North)
	if err != nil || !removed {
		t.Fatalf("Remove = (%v, %v), want (true, nil)", removed, err)
	}
	if _, ok := cache.Lookup("a donut", North); ok {
		t.Error("Lookup after Remove must miss")
	}

	removed, err = cache.Remove("a donut", North)
	if err != nil || removed {
		t.Fatalf("second Remove = (%v, %v), want (false, nil)", removed, err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	cache, dir := newTestCache(t)
	writeBackingFile(t, dir, "donut.png")
	if _, err := cache.Insert("a donut", West, "/generated/donut.png"); err != nil {
		t.Fatal(err)
	}

	snapshotPath := environment_variables.EnvironmentVariables.CACHE_SNAPSHOT_PATH
	data, err := os.ReadFile(snapshotPath)
	if err != nil {
		t.Fatalf("snapshot must be persisted synchronously: %v", err)
	}
	var table map[string]map[string]SnapshotEntry
	if err := json.Unmarshal(data, &table); err != nil {
		t.Fatalf("snapshot must be valid JSON: %v", err)
	}
	if table["a donut"]["west"].ImageURL != "/generated/donut.png" {
		t.Errorf("snapshot content = %+v", table)
	}

	reloaded := NewVariantCacheService(snapshot.NewFileStoreAt(snapshotPath))
	reloaded.Load()
	if _, ok := reloaded.Lookup("a donut", West); !ok {
		t.Error("reloaded cache must hit for persisted variant")
	}
}

func TestLoadDegradesToEmptyOnCorruptSnapshot(t *testing.T) {
	cache, _ := newTestCache(t)
	snapshotPath := environment_variables.EnvironmentVariables.CACHE_SNAPSHOT_PATH
	if err := os.WriteFile(snapshotPath, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	cache.Load()
	if _, ok := cache.Lookup("anything", South); ok {
		t.Error("corrupt snapshot must load as an empty table")
	}
}

type failingStore struct {
	table SnapshotTable
	fail  bool
}

func (s *failingStore) Load() (SnapshotTable, error) {
	return s.table, nil
}

func (s *failingStore) Save(table SnapshotTable) error {
	if s.fail {
		return errors.New("disk full")
	}
	s.table = table
	return nil
}

func TestInsertRollsBackOnPersistFailure(t *testing.T) {
	dir := setupTestEnv(t)
	writeBackingFile(t, dir, "donut.png")

	store := &failingStore{fail: true}
	cache := NewVariantCacheService(store)

	if _, err := cache.Insert("a donut", North, "/generated/donut.png"); err == nil {
		t.Fatal("Insert must surface persistence failure")
	}
	if _, ok := cache.Lookup("a donut", North); ok {
		t.Error("in-memory table must not diverge from persisted state")
	}
}

func TestRemoveRollsBackOnPersistFailure(t *testing.T) {
	dir := setupTestEnv(t)
	writeBackingFile(t, dir, "donut.png")

	store := &failingStore{}
	cache := NewVariantCacheService(store)
	if _, err := cache.Insert("a donut", North, "/generated/donut.png"); err != nil {
		t.Fatal(err)
	}

	store.fail = true
	if _, err := cache.Remove("a donut", North); err == nil {
		t.Fatal("Remove must surface persistence failure")
	}
	if _, ok := cache.Lookup("a donut", North); !ok {
		t.Error("failed Remove must leave the entry in place")
	}
}

func TestSweepPrunesStaleEntries(t *testing.T) {
	cache, dir := newTestCache(t)
	writeBackingFile(t, dir, "keep.png")
	writeBackingFile(t, dir, "stale.png")
	if _, err := cache.Insert("a donut", North, "/generated/keep.png"); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Insert("a barrel", South, "/generated/stale.png"); err != nil {
		t.Fatal(err)
	}

	if err := os.Remove(filepath.Join(dir, "stale.png")); err != nil {
		t.Fatal(err)
	}
	if pruned := cache.Sweep(); pruned != 1 {
		t.Errorf("Sweep pruned %d entries, want 1", pruned)
	}
	if _, ok := cache.Lookup("a donut", North); !ok {
		t.Error("Sweep must keep entries with live backing files")
	}
}
