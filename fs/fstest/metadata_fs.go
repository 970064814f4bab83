package fstest

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/jmgilman/go/fsio/fs/core"
)

// TestMetadataFS tests Lstat, Chmod and Chtimes.
func TestMetadataFS(t *testing.T, filesystem core.FS, root string) {
	TestMetadataFSWithConfig(t, filesystem, root, FSTestConfig{})
}

// TestMetadataFSWithConfig tests metadata operations with behavior configuration.
func TestMetadataFSWithConfig(t *testing.T, filesystem core.FS, root string, config FSTestConfig) {
	name := join(root, "meta.txt")
	WriteFile(t, filesystem, name, []byte("metadata"))

	t.Run("Chmod", func(t *testing.T) {
		if config.skip(t, "MetadataFS/Chmod") {
			return
		}
		if err := filesystem.Chmod(name, 0o600); err != nil {
			t.Fatalf("Chmod(%q): got error %v, want nil", name, err)
		}
		info, err := filesystem.Stat(name)
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", name, err)
		}
		if got := info.Mode().Perm(); got != 0o600 {
			t.Errorf("Stat(%q): Mode().Perm() = %o, want %o", name, got, 0o600)
		}
	})

	t.Run("ChmodNotExist", func(t *testing.T) {
		missing := join(root, "missing")
		if err := filesystem.Chmod(missing, 0o600); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Chmod(%q): got error %v, want fs.ErrNotExist", missing, err)
		}
	})

	t.Run("Chtimes", func(t *testing.T) {
		if config.skip(t, "MetadataFS/Chtimes") {
			return
		}
		mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
		if err := filesystem.Chtimes(name, mtime, mtime); err != nil {
			t.Fatalf("Chtimes(%q): got error %v, want nil", name, err)
		}
		info, err := filesystem.Stat(name)
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", name, err)
		}
		if !info.ModTime().Equal(mtime) {
			t.Errorf("Stat(%q): ModTime() = %v, want %v", name, info.ModTime(), mtime)
		}
	})

	t.Run("LstatRegular", func(t *testing.T) {
		info, err := filesystem.Lstat(name)
		if err != nil {
			t.Fatalf("Lstat(%q): got error %v, want nil", name, err)
		}
		if !info.Mode().IsRegular() {
			t.Errorf("Lstat(%q): Mode() = %v, want regular file", name, info.Mode())
		}
	})
}
