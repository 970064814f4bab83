package fstest

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/jmgilman/go/fsio/fs/core"
)

// TestFileHandle tests the behavior of open handles: seeking, stat, sync,
// truncation and advisory locks.
func TestFileHandle(t *testing.T, filesystem core.FS, root string) {
	TestFileHandleWithConfig(t, filesystem, root, FSTestConfig{})
}

// TestFileHandleWithConfig tests file handles with behavior configuration.
func TestFileHandleWithConfig(t *testing.T, filesystem core.FS, root string, config FSTestConfig) {
	name := join(root, "handle.txt")
	content := []byte("0123456789")
	WriteFile(t, filesystem, name, content)

	open := func(t *testing.T, flag int) core.File {
		t.Helper()
		f, err := filesystem.OpenFile(name, flag, 0o644)
		if err != nil {
			t.Fatalf("OpenFile(%q): got error %v, want nil", name, err)
		}
		t.Cleanup(func() { _ = f.Close() })
		return f
	}

	t.Run("Name", func(t *testing.T) {
		f := open(t, os.O_RDONLY)
		if f.Name() == "" {
			t.Errorf("Name(): got empty string")
		}
	})

	t.Run("Seek", func(t *testing.T) {
		f := open(t, os.O_RDONLY)
		pos, err := f.Seek(4, io.SeekStart)
		if err != nil || pos != 4 {
			t.Fatalf("Seek(4, SeekStart) = (%d, %v), want (4, nil)", pos, err)
		}
		buf := make([]byte, 3)
		if _, err := io.ReadFull(f, buf); err != nil {
			t.Fatalf("ReadFull: got error %v, want nil", err)
		}
		if string(buf) != "456" {
			t.Errorf("Read after Seek: got %q, want %q", buf, "456")
		}
		if pos, _ := f.Seek(-2, io.SeekCurrent); pos != 5 {
			t.Errorf("Seek(-2, SeekCurrent) = %d, want 5", pos)
		}
		if pos, _ := f.Seek(-1, io.SeekEnd); pos != 9 {
			t.Errorf("Seek(-1, SeekEnd) = %d, want 9", pos)
		}
	})

	t.Run("SeekNegative", func(t *testing.T) {
		f := open(t, os.O_RDONLY)
		if _, err := f.Seek(-1, io.SeekStart); err == nil {
			t.Errorf("Seek(-1, SeekStart): got nil error, want failure")
		}
	})

	t.Run("SeekPastEnd", func(t *testing.T) {
		f := open(t, os.O_RDONLY)
		if _, err := f.Seek(100, io.SeekStart); err != nil {
			t.Fatalf("Seek(100, SeekStart): got error %v, want nil", err)
		}
		n, err := f.Read(make([]byte, 4))
		if n != 0 || err != io.EOF {
			t.Errorf("Read past end = (%d, %v), want (0, io.EOF)", n, err)
		}
	})

	t.Run("Stat", func(t *testing.T) {
		f := open(t, os.O_RDONLY)
		info, err := f.Stat()
		if err != nil {
			t.Fatalf("Stat(): got error %v, want nil", err)
		}
		if info.Size() != int64(len(content)) {
			t.Errorf("Stat(): Size() = %d, want %d", info.Size(), len(content))
		}
	})

	t.Run("Sync", func(t *testing.T) {
		f := open(t, os.O_RDWR)
		if err := f.Sync(); err != nil {
			t.Errorf("Sync(): got error %v, want nil", err)
		}
	})

	t.Run("Truncate", func(t *testing.T) {
		scratch := join(root, "truncate.txt")
		WriteFile(t, filesystem, scratch, content)
		f, err := filesystem.OpenFile(scratch, os.O_RDWR, 0)
		if err != nil {
			t.Fatalf("OpenFile(%q): got error %v, want nil", scratch, err)
		}
		defer func() { _ = f.Close() }()

		tr, ok := f.(core.Truncater)
		if !ok {
			t.Skip("file does not implement core.Truncater")
		}
		if err := tr.Truncate(3); err != nil {
			t.Fatalf("Truncate(3): got error %v, want nil", err)
		}
		info, err := f.Stat()
		if err != nil || info.Size() != 3 {
			t.Errorf("Stat() after Truncate(3) = (%v, %v), want size 3", info, err)
		}
	})

	t.Run("LockExclusiveContention", func(t *testing.T) {
		if config.skip(t, "FileHandle/LockExclusiveContention") {
			return
		}
		a := open(t, os.O_RDWR)
		b := open(t, os.O_RDWR)

		if err := a.Lock(core.LockExclusive, false); err != nil {
			t.Fatalf("Lock(exclusive) on first handle: got error %v, want nil", err)
		}
		if err := b.Lock(core.LockExclusive, false); !errors.Is(err, core.ErrWouldBlock) {
			t.Errorf("Lock(exclusive) on second handle: got error %v, want ErrWouldBlock", err)
		}
		if err := b.Lock(core.LockShared, false); !errors.Is(err, core.ErrWouldBlock) {
			t.Errorf("Lock(shared) on second handle: got error %v, want ErrWouldBlock", err)
		}
		if err := a.Unlock(); err != nil {
			t.Fatalf("Unlock(): got error %v, want nil", err)
		}
		if err := b.Lock(core.LockExclusive, false); err != nil {
			t.Errorf("Lock(exclusive) after release: got error %v, want nil", err)
		}
		_ = b.Unlock()
	})

	t.Run("LockShared", func(t *testing.T) {
		if config.skip(t, "FileHandle/LockShared") {
			return
		}
		a := open(t, os.O_RDONLY)
		b := open(t, os.O_RDONLY)

		if err := a.Lock(core.LockShared, false); err != nil {
			t.Fatalf("Lock(shared) on first handle: got error %v, want nil", err)
		}
		if err := b.Lock(core.LockShared, false); err != nil {
			t.Errorf("Lock(shared) on second handle: got error %v, want nil", err)
		}
		_ = a.Unlock()
		_ = b.Unlock()
	})

	t.Run("CloseReleasesLock", func(t *testing.T) {
		if config.skip(t, "FileHandle/CloseReleasesLock") {
			return
		}
		a, err := filesystem.OpenFile(name, os.O_RDWR, 0)
		if err != nil {
			t.Fatalf("OpenFile(%q): got error %v, want nil", name, err)
		}
		b := open(t, os.O_RDWR)

		if err := a.Lock(core.LockExclusive, false); err != nil {
			t.Fatalf("Lock(exclusive): got error %v, want nil", err)
		}
		if err := a.Close(); err != nil {
			t.Fatalf("Close(): got error %v, want nil", err)
		}
		if err := b.Lock(core.LockExclusive, false); err != nil {
			t.Errorf("Lock(exclusive) after holder closed: got error %v, want nil", err)
		}
		_ = b.Unlock()
	})
}
