package fstest

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/jmgilman/go/fsio/fs/core"
)

// TestOpenFileFlags tests that OpenFile honors the standard os.O_* flags.
func TestOpenFileFlags(t *testing.T, filesystem core.FS, root string) {
	TestOpenFileFlagsWithConfig(t, filesystem, root, FSTestConfig{})
}

// TestOpenFileFlagsWithConfig tests OpenFile flags with behavior configuration.
func TestOpenFileFlagsWithConfig(t *testing.T, filesystem core.FS, root string, config FSTestConfig) {
	t.Run("O_EXCL", func(t *testing.T) {
		name := join(root, "excl.txt")
		f, err := filesystem.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			t.Fatalf("OpenFile(%q, O_EXCL) on new file: got error %v, want nil", name, err)
		}
		_ = f.Close()

		_, err = filesystem.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if !errors.Is(err, fs.ErrExist) {
			t.Errorf("OpenFile(%q, O_EXCL) on existing file: got error %v, want fs.ErrExist", name, err)
		}
	})

	t.Run("O_APPEND", func(t *testing.T) {
		name := join(root, "append.txt")
		WriteFile(t, filesystem, name, []byte("hello"))

		f, err := filesystem.OpenFile(name, os.O_WRONLY|os.O_APPEND, 0)
		if err != nil {
			t.Fatalf("OpenFile(%q, O_APPEND): got error %v, want nil", name, err)
		}
		if _, err := f.Write([]byte(" world")); err != nil {
			t.Fatalf("Write: got error %v, want nil", err)
		}
		_ = f.Close()

		if got := string(ReadFile(t, filesystem, name)); got != "hello world" {
			t.Errorf("ReadFile(%q): got %q, want %q", name, got, "hello world")
		}
	})

	t.Run("O_APPENDIgnoresSeek", func(t *testing.T) {
		name := join(root, "append-seek.txt")
		WriteFile(t, filesystem, name, []byte("abc"))

		f, err := filesystem.OpenFile(name, os.O_RDWR|os.O_APPEND, 0)
		if err != nil {
			t.Fatalf("OpenFile(%q): got error %v, want nil", name, err)
		}
		if _, err := f.Seek(0, 0); err != nil {
			t.Fatalf("Seek: got error %v, want nil", err)
		}
		if _, err := f.Write([]byte("d")); err != nil {
			t.Fatalf("Write: got error %v, want nil", err)
		}
		_ = f.Close()

		if got := string(ReadFile(t, filesystem, name)); got != "abcd" {
			t.Errorf("ReadFile(%q): got %q, want %q", name, got, "abcd")
		}
	})

	t.Run("O_TRUNC", func(t *testing.T) {
		name := join(root, "trunc-flag.txt")
		WriteFile(t, filesystem, name, []byte("to be removed"))

		f, err := filesystem.OpenFile(name, os.O_WRONLY|os.O_TRUNC, 0)
		if err != nil {
			t.Fatalf("OpenFile(%q, O_TRUNC): got error %v, want nil", name, err)
		}
		_ = f.Close()

		if got := ReadFile(t, filesystem, name); len(got) != 0 {
			t.Errorf("ReadFile(%q) after O_TRUNC: got %q, want empty", name, got)
		}
	})

	t.Run("O_RDONLYRejectsWrite", func(t *testing.T) {
		name := join(root, "readonly.txt")
		WriteFile(t, filesystem, name, []byte("x"))

		f, err := filesystem.OpenFile(name, os.O_RDONLY, 0)
		if err != nil {
			t.Fatalf("OpenFile(%q): got error %v, want nil", name, err)
		}
		defer func() { _ = f.Close() }()
		if _, err := f.Write([]byte("y")); err == nil {
			t.Errorf("Write on O_RDONLY handle: got nil error, want failure")
		}
	})

	t.Run("O_WRONLYRejectsRead", func(t *testing.T) {
		name := join(root, "writeonly.txt")
		WriteFile(t, filesystem, name, []byte("x"))

		f, err := filesystem.OpenFile(name, os.O_WRONLY, 0)
		if err != nil {
			t.Fatalf("OpenFile(%q): got error %v, want nil", name, err)
		}
		defer func() { _ = f.Close() }()
		if _, err := f.Read(make([]byte, 1)); err == nil {
			t.Errorf("Read on O_WRONLY handle: got nil error, want failure")
		}
	})

	t.Run("O_RDWR", func(t *testing.T) {
		name := join(root, "rdwr.txt")
		f, err := filesystem.OpenFile(name, os.O_RDWR|os.O_CREATE, 0o644)
		if err != nil {
			t.Fatalf("OpenFile(%q, O_RDWR|O_CREATE): got error %v, want nil", name, err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.Write([]byte("roundtrip")); err != nil {
			t.Fatalf("Write: got error %v, want nil", err)
		}
		if _, err := f.Seek(0, 0); err != nil {
			t.Fatalf("Seek: got error %v, want nil", err)
		}
		buf := make([]byte, 9)
		if n, err := f.Read(buf); err != nil || string(buf[:n]) != "roundtrip" {
			t.Errorf("Read = (%q, %v), want (%q, nil)", buf[:n], err, "roundtrip")
		}
	})
}
