package fstest

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/jmgilman/go/fsio/fs/core"
)

// TestWriteFS tests file creation and directory creation.
func TestWriteFS(t *testing.T, filesystem core.FS, root string) {
	TestWriteFSWithConfig(t, filesystem, root, FSTestConfig{})
}

// TestWriteFSWithConfig tests write operations with behavior configuration.
func TestWriteFSWithConfig(t *testing.T, filesystem core.FS, root string, config FSTestConfig) {
	t.Run("CreateTruncates", func(t *testing.T) {
		name := join(root, "trunc.txt")
		WriteFile(t, filesystem, name, []byte("long original content"))
		WriteFile(t, filesystem, name, []byte("short"))
		if got := string(ReadFile(t, filesystem, name)); got != "short" {
			t.Errorf("ReadFile(%q): got %q, want %q", name, got, "short")
		}
	})

	t.Run("CreateInNonExistentDir", func(t *testing.T) {
		name := join(root, "missing", "file.txt")
		_, err := filesystem.OpenFile(name, os.O_WRONLY|os.O_CREATE, 0o644)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("OpenFile(%q): got error %v, want fs.ErrNotExist", name, err)
		}
	})

	t.Run("Mkdir", func(t *testing.T) {
		dir := join(root, "newdir")
		if err := filesystem.Mkdir(dir, 0o755); err != nil {
			t.Fatalf("Mkdir(%q): got error %v, want nil", dir, err)
		}
		if err := filesystem.Mkdir(dir, 0o755); !errors.Is(err, fs.ErrExist) {
			t.Errorf("Mkdir(%q) twice: got error %v, want fs.ErrExist", dir, err)
		}
		nested := join(root, "a", "b")
		if err := filesystem.Mkdir(nested, 0o755); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Mkdir(%q): got error %v, want fs.ErrNotExist", nested, err)
		}
	})

	t.Run("MkdirAll", func(t *testing.T) {
		deep := join(root, "x", "y", "z")
		if err := filesystem.MkdirAll(deep, 0o755); err != nil {
			t.Fatalf("MkdirAll(%q): got error %v, want nil", deep, err)
		}
		if err := filesystem.MkdirAll(deep, 0o755); err != nil {
			t.Errorf("MkdirAll(%q) on existing dir: got error %v, want nil", deep, err)
		}
		info, err := filesystem.Stat(deep)
		if err != nil || !info.IsDir() {
			t.Errorf("Stat(%q): got (%v, %v), want a directory", deep, info, err)
		}
	})

	t.Run("OpenDirectoryForWrite", func(t *testing.T) {
		_, err := filesystem.OpenFile(root, os.O_WRONLY, 0)
		if err == nil {
			t.Errorf("OpenFile(%q, O_WRONLY): got nil error, want failure", root)
		}
	})
}
