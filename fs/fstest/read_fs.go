package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsio/fs/core"
)

// TestReadFS tests read-only operations: Stat, Exists, OpenFile for reading.
func TestReadFS(t *testing.T, filesystem core.FS, root string) {
	TestReadFSWithConfig(t, filesystem, root, FSTestConfig{})
}

// TestReadFSWithConfig tests read-only operations with behavior configuration.
func TestReadFSWithConfig(t *testing.T, filesystem core.FS, root string, config FSTestConfig) {
	testContent := []byte("test file content")
	dir := join(root, "testdir")
	file := join(dir, "testfile.txt")

	if err := filesystem.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll(%q): setup failed: %v", dir, err)
	}
	WriteFile(t, filesystem, file, testContent)

	t.Run("ReadContent", func(t *testing.T) {
		if got := ReadFile(t, filesystem, file); !bytes.Equal(got, testContent) {
			t.Errorf("ReadFile(%q): got %q, want %q", file, got, testContent)
		}
	})

	t.Run("StatFile", func(t *testing.T) {
		info, err := filesystem.Stat(file)
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", file, err)
		}
		if info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = true, want false", file)
		}
		if info.Size() != int64(len(testContent)) {
			t.Errorf("Stat(%q): Size() = %d, want %d", file, info.Size(), len(testContent))
		}
		if info.Name() != "testfile.txt" {
			t.Errorf("Stat(%q): Name() = %q, want %q", file, info.Name(), "testfile.txt")
		}
	})

	t.Run("StatDir", func(t *testing.T) {
		info, err := filesystem.Stat(dir)
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = false, want true", dir)
		}
	})

	t.Run("OpenNotExist", func(t *testing.T) {
		missing := join(root, "does-not-exist.txt")
		_, err := filesystem.OpenFile(missing, 0, 0)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("OpenFile(%q): got error %v, want fs.ErrNotExist", missing, err)
		}
	})

	t.Run("Exists", func(t *testing.T) {
		for _, tc := range []struct {
			name string
			want bool
		}{
			{file, true},
			{dir, true},
			{join(root, "nope"), false},
		} {
			got, err := filesystem.Exists(tc.name)
			if err != nil {
				t.Errorf("Exists(%q): got error %v, want nil", tc.name, err)
			}
			if got != tc.want {
				t.Errorf("Exists(%q) = %v, want %v", tc.name, got, tc.want)
			}
		}
	})

	t.Run("Type", func(t *testing.T) {
		if filesystem.Type() == core.FSTypeUnknown {
			t.Errorf("Type() = %s, want a concrete filesystem type", filesystem.Type())
		}
	})
}
