package file

import (
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/fs/billy"
	"github.com/jmgilman/go/fsio/fs/core"
)

func writeFile(t *testing.T, fsys core.FS, path, content string) {
	t.Helper()
	f := mustOpen(t, fsys, path, "w")
	_, err := f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestCopy(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		src := filepath.Join(root, "src.txt")
		dst := filepath.Join(root, "dst.txt")
		writeFile(t, fsys, src, "payload")
		require.NoError(t, fsys.Chmod(src, 0o640))
		writeFile(t, fsys, dst, "a much longer previous content")

		require.NoError(t, Copy(fsys, src, dst, 0))
		assert.Equal(t, "payload", readFile(t, fsys, dst))

		fresh := filepath.Join(root, "fresh.txt")
		require.NoError(t, Copy(fsys, src, fresh, 0))
		info, err := fsys.Stat(fresh)
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0o640), info.Mode().Perm())
	})
}

func TestCopy_MissingSource(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		err := Copy(fsys, filepath.Join(root, "nope"), filepath.Join(root, "dst"), 0)
		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	})
}

func TestAppend(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		src := filepath.Join(root, "tail.txt")
		dst := filepath.Join(root, "head.txt")
		writeFile(t, fsys, src, "tail")
		writeFile(t, fsys, dst, "head-")

		require.NoError(t, Append(fsys, src, dst, 0))
		assert.Equal(t, "head-tail", readFile(t, fsys, dst))

		created := filepath.Join(root, "created.txt")
		require.NoError(t, Append(fsys, src, created, 0o600))
		assert.Equal(t, "tail", readFile(t, fsys, created))
	})
}

func TestRename(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		from := filepath.Join(root, "from.txt")
		to := filepath.Join(root, "to.txt")
		writeFile(t, fsys, from, "moved")

		require.NoError(t, Rename(fsys, from, to))
		assert.Equal(t, "moved", readFile(t, fsys, to))
		ok, err := fsys.Exists(from)
		require.NoError(t, err)
		assert.False(t, ok)

		err = Rename(fsys, from, to)
		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

		var pe errors.PlatformError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, to, pe.Context()["target"])
	})
}

func TestRemove(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		path := filepath.Join(root, "gone.txt")
		writeFile(t, fsys, path, "x")

		require.NoError(t, Remove(fsys, path))
		ok, err := fsys.Exists(path)
		require.NoError(t, err)
		assert.False(t, ok)

		err = Remove(fsys, path)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	})
}

func TestSetModTime(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		path := filepath.Join(root, "touched.txt")
		writeFile(t, fsys, path, "x")

		mtime := time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)
		require.NoError(t, SetModTime(fsys, path, mtime))

		rec, err := Stat(fsys, path, "mtime")
		require.NoError(t, err)
		assert.True(t, mtime.Equal(rec.MTime), "got %v", rec.MTime)

		err = SetModTime(fsys, filepath.Join(root, "missing"), mtime)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	})
}

func TestSetAttributes(t *testing.T) {
	tests := []struct {
		name  string
		start fs.FileMode
		attrs map[string]bool
		want  fs.FileMode
	}{
		{"readonly", 0o664, map[string]bool{AttrReadOnly: true}, 0o444},
		{"writable", 0o444, map[string]bool{AttrReadOnly: false}, 0o644},
		{"executable", 0o640, map[string]bool{AttrExecutable: true}, 0o750},
		{"not executable", 0o755, map[string]bool{AttrExecutable: false}, 0o644},
		{"hidden", 0o600, map[string]bool{AttrHidden: true}, 0o600},
		{"combined", 0o644, map[string]bool{AttrReadOnly: true, AttrExecutable: true}, 0o555},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := billy.NewMemory()
			writeFile(t, mfs, "/attr", "x")
			require.NoError(t, mfs.Chmod("/attr", tt.start))

			require.NoError(t, SetAttributes(mfs, "/attr", tt.attrs))
			info, err := mfs.Stat("/attr")
			require.NoError(t, err)
			assert.Equal(t, tt.want, info.Mode().Perm())
		})
	}
}

func TestSetAttributes_InvalidKey(t *testing.T) {
	mfs := billy.NewMemory()
	writeFile(t, mfs, "/attr", "x")
	require.NoError(t, mfs.Chmod("/attr", 0o644))

	err := SetAttributes(mfs, "/attr", map[string]bool{AttrReadOnly: true, "archive": true})
	require.Error(t, err)
	assert.True(t, errors.IsContract(err))

	info, err := mfs.Stat("/attr")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o644), info.Mode().Perm(), "nothing changes")
}

func TestSetAttributes_Local(t *testing.T) {
	lfs := billy.NewLocal()
	path := filepath.Join(t.TempDir(), "script.sh")
	writeFile(t, lfs, path, "#!/bin/sh\n")
	require.NoError(t, lfs.Chmod(path, 0o644))

	require.NoError(t, SetAttributes(lfs, path, map[string]bool{AttrExecutable: true}))
	info, err := lfs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o755), info.Mode().Perm())
}

func TestStat_Ops(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		path := filepath.Join(root, "rec.txt")
		writeFile(t, fsys, path, "1234")

		rec, err := Stat(fsys, path, "size", "type")
		require.NoError(t, err)
		assert.Equal(t, int64(4), rec.Size)
		assert.Equal(t, "file", string(rec.Type))

		_, err = Stat(fsys, filepath.Join(root, "missing"))
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

		_, err = Stat(fsys, path, "colour")
		assert.True(t, errors.IsContract(err))
	})
}
