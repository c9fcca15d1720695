// Package testutil provides shared test helpers for setting up stores and recipe directories.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/recipebox/internal/models"
	"github.com/starford/recipebox/internal/storage"
	"github.com/starford/recipebox/internal/store"
)

// TestDB creates a temporary migrated SQLite store that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipebox-test.db")
	db, err := store.Open(context.Background(), "sqlite://"+path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestDir creates a temporary recipe directory with a storage.Provider.
func TestDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, fs
}

// WriteFile writes content under dir, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	abs := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Toast returns a valid recipe fixture.
func Toast() models.Recipe {
	return models.Recipe{Title: "Toast", Ingredients: "Bread", Instructions: "Toast it"}
}
