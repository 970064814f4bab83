package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsio/fs/core"
)

// TestSymlinkFS tests symbolic link operations if the filesystem supports
// them. Providers without core.SymlinkFS are skipped.
func TestSymlinkFS(t *testing.T, filesystem core.FS, root string) {
	TestSymlinkFSWithConfig(t, filesystem, root, FSTestConfig{})
}

// TestSymlinkFSWithConfig tests symlink operations with behavior configuration.
func TestSymlinkFSWithConfig(t *testing.T, filesystem core.FS, root string, config FSTestConfig) {
	sfs, ok := filesystem.(core.SymlinkFS)
	if !ok {
		t.Skip("filesystem does not implement core.SymlinkFS")
	}

	target := join(root, "target.txt")
	link := join(root, "link")
	WriteFile(t, filesystem, target, []byte("through the link"))
	if err := sfs.Symlink(target, link); err != nil {
		t.Fatalf("Symlink(%q, %q): got error %v, want nil", target, link, err)
	}

	t.Run("Readlink", func(t *testing.T) {
		got, err := sfs.Readlink(link)
		if err != nil {
			t.Fatalf("Readlink(%q): got error %v, want nil", link, err)
		}
		if got != target {
			t.Errorf("Readlink(%q) = %q, want %q", link, got, target)
		}
	})

	t.Run("LstatDoesNotFollow", func(t *testing.T) {
		info, err := filesystem.Lstat(link)
		if err != nil {
			t.Fatalf("Lstat(%q): got error %v, want nil", link, err)
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			t.Errorf("Lstat(%q): Mode() = %v, want ModeSymlink set", link, info.Mode())
		}
	})

	t.Run("StatFollows", func(t *testing.T) {
		info, err := filesystem.Stat(link)
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", link, err)
		}
		if !info.Mode().IsRegular() {
			t.Errorf("Stat(%q): Mode() = %v, want regular file", link, info.Mode())
		}
	})

	t.Run("ReadThroughLink", func(t *testing.T) {
		if got := string(ReadFile(t, filesystem, link)); got != "through the link" {
			t.Errorf("ReadFile(%q): got %q, want %q", link, got, "through the link")
		}
	})

	t.Run("RemoveLinkKeepsTarget", func(t *testing.T) {
		extra := join(root, "extra-link")
		if err := sfs.Symlink(target, extra); err != nil {
			t.Fatalf("Symlink: setup failed: %v", err)
		}
		if err := filesystem.Remove(extra); err != nil {
			t.Fatalf("Remove(%q): got error %v, want nil", extra, err)
		}
		MustNotExist(t, filesystem, extra)
		if ok, _ := filesystem.Exists(target); !ok {
			t.Errorf("Exists(%q) = false after removing link, want true", target)
		}
	})

	t.Run("Dangling", func(t *testing.T) {
		dangling := join(root, "dangling")
		if err := sfs.Symlink(join(root, "nowhere"), dangling); err != nil {
			t.Fatalf("Symlink: setup failed: %v", err)
		}
		if _, err := filesystem.Lstat(dangling); err != nil {
			t.Errorf("Lstat(%q): got error %v, want nil", dangling, err)
		}
		if _, err := filesystem.Stat(dangling); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(%q): got error %v, want fs.ErrNotExist", dangling, err)
		}
	})
}
