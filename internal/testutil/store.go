package testutil

import (
	"context"
	"path/filepath"
	"testing"

	taskservice "github.com/yuchhuang/dodo/internal/services/task"
	"github.com/yuchhuang/dodo/internal/store"
)

// SetupTestStore creates a file store on a temp-dir task file
func SetupTestStore(t *testing.T) *store.FileStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.json")
	fs, err := store.NewFileStore(path)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	return fs
}

// SetupTestArchive creates an archive database in a temp dir
func SetupTestArchive(t *testing.T) *store.Archive {
	t.Helper()

	path := filepath.Join(t.TempDir(), "archive.db")
	archive, err := store.OpenArchive(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to create test archive: %v", err)
	}
	t.Cleanup(func() {
		_ = archive.Close()
	})
	return archive
}

// SetupTestService creates a task service over a temp-dir store
func SetupTestService(t *testing.T) taskservice.Service {
	t.Helper()

	svc := taskservice.NewService(SetupTestStore(t))
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Failed to load test service: %v", err)
	}
	return svc
}

// SetupTestEnv points the CLI at temp-dir data files for the duration of
// the test via the environment overrides the config layer honors.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("DODO_DATA_FILE", filepath.Join(dir, "tasks.json"))
	t.Setenv("DODO_ARCHIVE_FILE", filepath.Join(dir, "archive.db"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	return dir
}
