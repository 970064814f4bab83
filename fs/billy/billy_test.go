package billy

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/jmgilman/go/fsio/fs/core"
	"github.com/jmgilman/go/fsio/fs/fstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS_Conformance(t *testing.T) {
	fstest.TestSuite(t, func(t *testing.T) (core.FS, string) {
		return NewLocal(), t.TempDir()
	})
}

func TestMemoryFS_Conformance(t *testing.T) {
	fstest.TestSuite(t, func(t *testing.T) (core.FS, string) {
		return NewMemory(), "/"
	})
}

func TestLocalFS_Type(t *testing.T) {
	assert.Equal(t, core.FSTypeLocal, NewLocal().Type())
	assert.NotNil(t, NewLocal().Unwrap())
}

func TestLocalFS_RemoveNotEmpty(t *testing.T) {
	lfs := NewLocal()
	dir := filepath.Join(t.TempDir(), "d")
	require.NoError(t, lfs.Mkdir(dir, 0o755))
	fstest.WriteFile(t, lfs, filepath.Join(dir, "f"), []byte("x"))

	err := lfs.Remove(dir)
	assert.ErrorIs(t, err, syscall.ENOTEMPTY)
}

func TestLocalFS_MkdirPerm(t *testing.T) {
	lfs := NewLocal()
	dir := filepath.Join(t.TempDir(), "private")
	require.NoError(t, lfs.Mkdir(dir, 0o700))

	info, err := lfs.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o700), info.Mode().Perm())
}

func TestLocalFS_RelativePaths(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	lfs := NewLocal()
	fstest.WriteFile(t, lfs, "rel.txt", []byte("relative"))

	f, err := lfs.OpenFile("rel.txt", os.O_RDONLY, 0)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, filepath.Join(dir, "rel.txt"), f.Name())
}

func TestMemoryFS_Type(t *testing.T) {
	assert.Equal(t, core.FSTypeMemory, NewMemory().Type())
	assert.NotNil(t, NewMemory().Unwrap())
}

func TestMemoryFS_RemoveNotEmpty(t *testing.T) {
	mfs := NewMemory()
	require.NoError(t, mfs.MkdirAll("/d", 0o755))
	fstest.WriteFile(t, mfs, "/d/f", []byte("x"))

	assert.ErrorIs(t, mfs.Remove("/d"), syscall.ENOTEMPTY)
}

func TestMemoryFS_SymlinkLoop(t *testing.T) {
	mfs := NewMemory()
	require.NoError(t, mfs.Symlink("/loop", "/loop"))

	_, err := mfs.Stat("/loop")
	assert.ErrorIs(t, err, syscall.ELOOP)

	info, err := mfs.Lstat("/loop")
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink)
}

func TestMemoryFS_RelativeSymlink(t *testing.T) {
	mfs := NewMemory()
	require.NoError(t, mfs.MkdirAll("/dir", 0o755))
	fstest.WriteFile(t, mfs, "/dir/target", []byte("rel"))
	require.NoError(t, mfs.Symlink("target", "/dir/link"))

	assert.Equal(t, "rel", string(fstest.ReadFile(t, mfs, "/dir/link")))
}

func TestMemoryFS_RenameLeavesPrefixSiblings(t *testing.T) {
	mfs := NewMemory()
	fstest.WriteFile(t, mfs, "/a", []byte("a"))
	fstest.WriteFile(t, mfs, "/ab", []byte("ab"))

	require.NoError(t, mfs.Rename("/a", "/c"))

	assert.Equal(t, "a", string(fstest.ReadFile(t, mfs, "/c")))
	assert.Equal(t, "ab", string(fstest.ReadFile(t, mfs, "/ab")))
	fstest.MustNotExist(t, mfs, "/a")
}

func TestMemoryFS_RenameIntoSelf(t *testing.T) {
	mfs := NewMemory()
	require.NoError(t, mfs.MkdirAll("/top/inner", 0o755))

	assert.ErrorIs(t, mfs.Rename("/top", "/top/inner/moved"), syscall.EINVAL)
}

func TestMemoryFS_RenameKindMismatch(t *testing.T) {
	mfs := NewMemory()
	require.NoError(t, mfs.Mkdir("/dir", 0o755))
	fstest.WriteFile(t, mfs, "/file", []byte("x"))

	assert.ErrorIs(t, mfs.Rename("/file", "/dir"), syscall.EISDIR)
	assert.ErrorIs(t, mfs.Rename("/dir", "/file"), syscall.ENOTDIR)
}

func TestMemoryFS_RenameCarriesMetadata(t *testing.T) {
	mfs := NewMemory()
	fstest.WriteFile(t, mfs, "/src", []byte("x"))
	require.NoError(t, mfs.Chmod("/src", 0o640))

	require.NoError(t, mfs.Rename("/src", "/dst"))

	info, err := mfs.Stat("/dst")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o640), info.Mode().Perm())
}

func TestMemoryFS_MkdirAllThroughFile(t *testing.T) {
	mfs := NewMemory()
	fstest.WriteFile(t, mfs, "/file", []byte("x"))

	assert.ErrorIs(t, mfs.MkdirAll("/file/sub", 0o755), syscall.ENOTDIR)
	assert.ErrorIs(t, mfs.MkdirAll("/file", 0o755), syscall.ENOTDIR)
}

func TestMemoryFS_Timestamps(t *testing.T) {
	mfs := NewMemory()

	t.Run("untracked entries report the epoch", func(t *testing.T) {
		f, err := mfs.Unwrap().Create("/raw")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		info, err := mfs.Stat("/raw")
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(time.Unix(0, 0)))
	})

	t.Run("writes advance the modification time", func(t *testing.T) {
		before := time.Now().Add(-time.Second)
		fstest.WriteFile(t, mfs, "/written", []byte("x"))

		info, err := mfs.Stat("/written")
		require.NoError(t, err)
		assert.True(t, info.ModTime().After(before))
	})

	t.Run("chtimes sets access time separately", func(t *testing.T) {
		fstest.WriteFile(t, mfs, "/times", []byte("x"))
		atime := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
		mtime := time.Date(2002, 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, mfs.Chtimes("/times", atime, mtime))

		info, err := mfs.Stat("/times")
		require.NoError(t, err)
		at, ok := info.(interface{ AccessTime() time.Time })
		require.True(t, ok)
		assert.True(t, at.AccessTime().Equal(atime))
		assert.True(t, info.ModTime().Equal(mtime))

		require.NoError(t, mfs.Chtimes("/times", time.Time{}, time.Time{}))
		info, err = mfs.Stat("/times")
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(mtime), "zero time must leave mtime unchanged")
	})
}

func TestMemoryFS_LockBlocking(t *testing.T) {
	mfs := NewMemory()
	fstest.WriteFile(t, mfs, "/lock", nil)

	a, err := mfs.OpenFile("/lock", os.O_RDWR, 0)
	require.NoError(t, err)
	defer func() { _ = a.Close() }()
	b, err := mfs.OpenFile("/lock", os.O_RDWR, 0)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	require.NoError(t, a.Lock(core.LockExclusive, true))

	acquired := make(chan error, 1)
	go func() { acquired <- b.Lock(core.LockShared, true) }()

	select {
	case err := <-acquired:
		t.Fatalf("Lock returned %v while another handle held an exclusive lock", err)
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, a.Unlock())
	select {
	case err := <-acquired:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Lock did not return after the holder unlocked")
	}
}

func TestMemoryFS_LockConversion(t *testing.T) {
	mfs := NewMemory()
	fstest.WriteFile(t, mfs, "/conv", nil)

	f, err := mfs.OpenFile("/conv", os.O_RDWR, 0)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	require.NoError(t, f.Lock(core.LockShared, false))
	require.NoError(t, f.Lock(core.LockExclusive, false))
	require.NoError(t, f.Lock(core.LockShared, false))

	g, err := mfs.OpenFile("/conv", os.O_RDONLY, 0)
	require.NoError(t, err)
	defer func() { _ = g.Close() }()
	assert.NoError(t, g.Lock(core.LockShared, false), "downgraded lock should admit other readers")
}

func TestFile_TruncateNegative(t *testing.T) {
	mfs := NewMemory()
	fstest.WriteFile(t, mfs, "/t", []byte("abc"))

	f, err := mfs.OpenFile("/t", os.O_RDWR, 0)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.ErrorIs(t, f.(core.Truncater).Truncate(-1), syscall.EINVAL)
}

func TestFile_SeekInvalidWhence(t *testing.T) {
	mfs := NewMemory()
	fstest.WriteFile(t, mfs, "/s", []byte("abc"))

	f, err := mfs.OpenFile("/s", os.O_RDONLY, 0)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	_, err = f.Seek(0, 7)
	assert.ErrorIs(t, err, syscall.EINVAL)
}

func TestMemoryFS_HandleStatAndSeekEnd(t *testing.T) {
	mfs := NewMemory()
	f, err := mfs.OpenFile("/s.txt", os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o640)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
	assert.Equal(t, fs.FileMode(0o640), info.Mode().Perm())

	pos, err := f.Seek(-2, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pos)

	buf := make([]byte, 2)
	n, err := f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "lo", string(buf[:n]))
}

func TestMemoryFS_HandleStatAfterRemove(t *testing.T) {
	mfs := NewMemory()
	f, err := mfs.OpenFile("/gone", os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	require.NoError(t, mfs.Remove("/gone"))

	_, err = f.Stat()
	assert.ErrorIs(t, err, syscall.ENOENT)
}
