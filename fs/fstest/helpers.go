package fstest

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/fsio/fs/core"
)

// WriteFile creates or truncates name and writes data to it, failing the
// test on error.
func WriteFile(t *testing.T, filesystem core.FS, name string, data []byte) {
	t.Helper()
	f, err := filesystem.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		t.Fatalf("OpenFile(%q): setup failed: %v", name, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		t.Fatalf("Write(%q): setup failed: %v", name, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(%q): setup failed: %v", name, err)
	}
}

// ReadFile returns the full contents of name, failing the test on error.
func ReadFile(t *testing.T, filesystem core.FS, name string) []byte {
	t.Helper()
	f, err := filesystem.OpenFile(name, os.O_RDONLY, 0)
	if err != nil {
		t.Fatalf("OpenFile(%q): got error %v, want nil", name, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll(%q): got error %v, want nil", name, err)
	}
	return data
}

// MustNotExist fails the test if name can still be found with Lstat.
func MustNotExist(t *testing.T, filesystem core.FS, name string) {
	t.Helper()
	if _, err := filesystem.Lstat(name); !os.IsNotExist(err) {
		t.Errorf("Lstat(%q): got error %v, want fs.ErrNotExist", name, err)
	}
}

// listNames drains a directory stream into a set of names.
func listNames(t *testing.T, ds core.DirStream) map[string]fs.FileInfo {
	t.Helper()
	names := make(map[string]fs.FileInfo)
	for {
		info, err := ds.Next()
		if err == io.EOF {
			return names
		}
		if err != nil {
			t.Fatalf("Next(): got error %v, want nil or io.EOF", err)
		}
		names[info.Name()] = info
	}
}

func join(root string, elem ...string) string {
	return filepath.Join(append([]string{root}, elem...)...)
}
