package test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"golang.org/x/tools/txtar"
)

func FixtureDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata")
}

func ReadGolden(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(FixtureDir(t), name)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v", path, err)
	}
	return string(b)
}

// ReadArchive parses the txtar archive name from the fixture directory.
func ReadArchive(t *testing.T, name string) *txtar.Archive {
	t.Helper()
	path := filepath.Join(FixtureDir(t), name)
	a, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("failed to read archive %s: %v", path, err)
	}
	return a
}

// ArchiveFile returns the contents of file in the archive name.
func ArchiveFile(t *testing.T, name, file string) []byte {
	t.Helper()
	for _, f := range ReadArchive(t, name).Files {
		if f.Name == file {
			return f.Data
		}
	}
	t.Fatalf("archive %s has no file %s", name, file)
	return nil
}

// ExtractArchive writes every file of the archive name below a fresh
// temporary directory and returns that directory.
func ExtractArchive(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range ReadArchive(t, name).Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
