package sprite_test

import (
	"os"
	"path/filepath"
	"testing"

	"tileworld.ai/sprite-gateway/config/environment_variables"
)

// setupTestEnv points the generated-output area and cache snapshot at a
// temp dir and restores the previous configuration afterwards.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	previous := environment_variables.EnvironmentVariables
	environment_variables.EnvironmentVariables = environment_variables.EnvironmentVariablesType{
		GENERATED_DIR:       dir,
		CACHE_SNAPSHOT_PATH: filepath.Join(dir, "object_cache.json"),
		REFERENCE_DIR:       filepath.Join(dir, "reference"),
	}
	t.Cleanup(func() {
		environment_variables.EnvironmentVariables = previous
	})
	return dir
}

func writeBackingFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("png"), 0o644); err != nil {
		t.Fatalf("write backing file %s: %v", name, err)
	}
}
