package fstest

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsio/fs/core"
)

// TestDirStream tests OpenDir and the DirStream contract.
func TestDirStream(t *testing.T, filesystem core.FS, root string) {
	TestDirStreamWithConfig(t, filesystem, root, FSTestConfig{})
}

// TestDirStreamWithConfig tests directory streams with behavior configuration.
func TestDirStreamWithConfig(t *testing.T, filesystem core.FS, root string, config FSTestConfig) {
	dir := join(root, "listing")
	if err := filesystem.MkdirAll(join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("MkdirAll: setup failed: %v", err)
	}
	WriteFile(t, filesystem, join(dir, "a.txt"), []byte("a"))
	WriteFile(t, filesystem, join(dir, "b.txt"), []byte("bb"))

	t.Run("ListsChildren", func(t *testing.T) {
		ds, err := filesystem.OpenDir(dir)
		if err != nil {
			t.Fatalf("OpenDir(%q): got error %v, want nil", dir, err)
		}
		defer func() { _ = ds.Close() }()

		names := listNames(t, ds)
		if len(names) != 3 {
			t.Errorf("OpenDir(%q): got %d entries, want 3: %v", dir, len(names), names)
		}
		for _, skip := range []string{".", ".."} {
			if _, ok := names[skip]; ok {
				t.Errorf("OpenDir(%q): listing contains %q", dir, skip)
			}
		}
		if info, ok := names["sub"]; !ok || !info.IsDir() {
			t.Errorf("OpenDir(%q): entry %q missing or not a directory", dir, "sub")
		}
		if info, ok := names["b.txt"]; !ok || info.Size() != 2 {
			t.Errorf("OpenDir(%q): entry %q missing or wrong size", dir, "b.txt")
		}
	})

	t.Run("EOFRepeats", func(t *testing.T) {
		ds, err := filesystem.OpenDir(dir)
		if err != nil {
			t.Fatalf("OpenDir(%q): got error %v, want nil", dir, err)
		}
		defer func() { _ = ds.Close() }()

		listNames(t, ds)
		if _, err := ds.Next(); err != io.EOF {
			t.Errorf("Next() after end: got error %v, want io.EOF", err)
		}
	})

	t.Run("Rewind", func(t *testing.T) {
		ds, err := filesystem.OpenDir(dir)
		if err != nil {
			t.Fatalf("OpenDir(%q): got error %v, want nil", dir, err)
		}
		defer func() { _ = ds.Close() }()

		first := listNames(t, ds)
		if err := ds.Rewind(); err != nil {
			t.Fatalf("Rewind(): got error %v, want nil", err)
		}
		second := listNames(t, ds)
		if len(first) != len(second) {
			t.Errorf("Rewind(): second pass got %d entries, want %d", len(second), len(first))
		}
	})

	t.Run("CloseIdempotent", func(t *testing.T) {
		ds, err := filesystem.OpenDir(dir)
		if err != nil {
			t.Fatalf("OpenDir(%q): got error %v, want nil", dir, err)
		}
		if err := ds.Close(); err != nil {
			t.Errorf("Close(): got error %v, want nil", err)
		}
		if err := ds.Close(); err != nil {
			t.Errorf("Close() twice: got error %v, want nil", err)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		empty := join(root, "empty")
		if err := filesystem.Mkdir(empty, 0o755); err != nil {
			t.Fatalf("Mkdir: setup failed: %v", err)
		}
		ds, err := filesystem.OpenDir(empty)
		if err != nil {
			t.Fatalf("OpenDir(%q): got error %v, want nil", empty, err)
		}
		defer func() { _ = ds.Close() }()
		if _, err := ds.Next(); err != io.EOF {
			t.Errorf("Next() on empty dir: got error %v, want io.EOF", err)
		}
	})

	t.Run("NotExist", func(t *testing.T) {
		missing := join(root, "no-such-dir")
		if _, err := filesystem.OpenDir(missing); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("OpenDir(%q): got error %v, want fs.ErrNotExist", missing, err)
		}
	})

	t.Run("NotDirectory", func(t *testing.T) {
		file := join(dir, "a.txt")
		if _, err := filesystem.OpenDir(file); err == nil {
			t.Errorf("OpenDir(%q): got nil error, want not-a-directory failure", file)
		}
	})
}
