package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsio/fs/core"
)

// TestManageFS tests Remove and Rename.
func TestManageFS(t *testing.T, filesystem core.FS, root string) {
	TestManageFSWithConfig(t, filesystem, root, FSTestConfig{})
}

// TestManageFSWithConfig tests management operations with behavior configuration.
func TestManageFSWithConfig(t *testing.T, filesystem core.FS, root string, config FSTestConfig) {
	t.Run("RemoveFile", func(t *testing.T) {
		name := join(root, "remove.txt")
		WriteFile(t, filesystem, name, []byte("x"))
		if err := filesystem.Remove(name); err != nil {
			t.Fatalf("Remove(%q): got error %v, want nil", name, err)
		}
		MustNotExist(t, filesystem, name)
	})

	t.Run("RemoveNotExist", func(t *testing.T) {
		name := join(root, "never-existed")
		if err := filesystem.Remove(name); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Remove(%q): got error %v, want fs.ErrNotExist", name, err)
		}
	})

	t.Run("RemoveNonEmptyDir", func(t *testing.T) {
		if config.skip(t, "ManageFS/RemoveNonEmptyDir") {
			return
		}
		dir := join(root, "full")
		if err := filesystem.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll(%q): setup failed: %v", dir, err)
		}
		WriteFile(t, filesystem, join(dir, "f"), []byte("x"))
		if err := filesystem.Remove(dir); err == nil {
			t.Errorf("Remove(%q): got nil error, want a not-empty failure", dir)
		}
		if err := filesystem.Remove(join(dir, "f")); err != nil {
			t.Fatalf("Remove(%q): got error %v", join(dir, "f"), err)
		}
		if err := filesystem.Remove(dir); err != nil {
			t.Errorf("Remove(%q) after emptying: got error %v, want nil", dir, err)
		}
	})

	t.Run("RenameFile", func(t *testing.T) {
		from, to := join(root, "from.txt"), join(root, "to.txt")
		sibling := join(root, "from.txt.bak")
		WriteFile(t, filesystem, from, []byte("moved"))
		WriteFile(t, filesystem, sibling, []byte("stays"))

		if err := filesystem.Rename(from, to); err != nil {
			t.Fatalf("Rename(%q, %q): got error %v, want nil", from, to, err)
		}
		MustNotExist(t, filesystem, from)
		if got := string(ReadFile(t, filesystem, to)); got != "moved" {
			t.Errorf("ReadFile(%q): got %q, want %q", to, got, "moved")
		}
		if got := string(ReadFile(t, filesystem, sibling)); got != "stays" {
			t.Errorf("ReadFile(%q): got %q, want %q", sibling, got, "stays")
		}
	})

	t.Run("RenameReplaces", func(t *testing.T) {
		from, to := join(root, "new.txt"), join(root, "old.txt")
		WriteFile(t, filesystem, from, []byte("new"))
		WriteFile(t, filesystem, to, []byte("old"))
		if err := filesystem.Rename(from, to); err != nil {
			t.Fatalf("Rename(%q, %q): got error %v, want nil", from, to, err)
		}
		if got := string(ReadFile(t, filesystem, to)); got != "new" {
			t.Errorf("ReadFile(%q): got %q, want %q", to, got, "new")
		}
	})

	t.Run("RenameDir", func(t *testing.T) {
		from, to := join(root, "srcdir"), join(root, "dstdir")
		if err := filesystem.MkdirAll(join(from, "sub"), 0o755); err != nil {
			t.Fatalf("MkdirAll: setup failed: %v", err)
		}
		WriteFile(t, filesystem, join(from, "sub", "f.txt"), []byte("deep"))

		if err := filesystem.Rename(from, to); err != nil {
			t.Fatalf("Rename(%q, %q): got error %v, want nil", from, to, err)
		}
		MustNotExist(t, filesystem, from)
		if got := string(ReadFile(t, filesystem, join(to, "sub", "f.txt"))); got != "deep" {
			t.Errorf("ReadFile after rename: got %q, want %q", got, "deep")
		}
	})
}
