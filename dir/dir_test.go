package dir

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/fs/billy"
	"github.com/jmgilman/go/fsio/fs/core"
	"github.com/jmgilman/go/fsio/fs/fstest"
	"github.com/jmgilman/go/fsio/pool"
	"github.com/jmgilman/go/fsio/stat"
)

type provider struct {
	name string
	new  func(t *testing.T) (core.FS, string)
}

var providers = []provider{
	{"local", func(t *testing.T) (core.FS, string) { return billy.NewLocal(), t.TempDir() }},
	{"memory", func(t *testing.T) (core.FS, string) { return billy.NewMemory(), "/" }},
}

func eachProvider(t *testing.T, fn func(t *testing.T, fsys core.FS, root string)) {
	for _, p := range providers {
		t.Run(p.name, func(t *testing.T) {
			fsys, root := p.new(t)
			fn(t, fsys, root)
		})
	}
}

// populate creates a.txt, b.txt and sub/ under root.
func populate(t *testing.T, fsys core.FS, root string) string {
	t.Helper()
	base := filepath.Join(root, "listing")
	require.NoError(t, fsys.Mkdir(base, 0o755))
	fstest.WriteFile(t, fsys, filepath.Join(base, "a.txt"), []byte("a"))
	fstest.WriteFile(t, fsys, filepath.Join(base, "b.txt"), []byte("bb"))
	require.NoError(t, fsys.Mkdir(filepath.Join(base, "sub"), 0o755))
	return base
}

func mustOpen(t *testing.T, fsys core.FS, path string, opts ...Option) *Dir {
	t.Helper()
	d, err := Open(fsys, path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func readAll(t *testing.T, d *Dir, names ...string) map[string]*stat.Record {
	t.Helper()
	out := map[string]*stat.Record{}
	for {
		rec, ok, err := d.Read(names...)
		require.NoError(t, err)
		if !ok {
			return out
		}
		out[rec.Name] = rec
	}
}

func TestDir_Read(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		base := populate(t, fsys, root)
		d := mustOpen(t, fsys, base)

		got := readAll(t, d, "name", "type", "size", "path")
		require.Len(t, got, 3)
		assert.NotContains(t, got, ".")
		assert.NotContains(t, got, "..")

		assert.Equal(t, stat.TypeFile, got["a.txt"].Type)
		assert.Equal(t, int64(2), got["b.txt"].Size)
		assert.Equal(t, stat.TypeDirectory, got["sub"].Type)
		assert.Equal(t, filepath.Join(base, "sub"), got["sub"].Path)

		rec, ok, err := d.Read()
		require.NoError(t, err)
		assert.False(t, ok, "exhaustion is not an error")
		assert.Nil(t, rec)
	})
}

func TestDir_ReadInvalidField(t *testing.T) {
	mfs := billy.NewMemory()
	d := mustOpen(t, mfs, populate(t, mfs, "/"))

	_, _, err := d.Read("name", "colour")
	assert.True(t, errors.IsContract(err))
}

func TestDir_ReadSymlink(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		sfs, ok := fsys.(core.SymlinkFS)
		require.True(t, ok)

		base := populate(t, fsys, root)
		require.NoError(t, sfs.Symlink(filepath.Join(base, "sub"), filepath.Join(base, "link")))
		require.NoError(t, sfs.Symlink(filepath.Join(base, "missing"), filepath.Join(base, "dangling")))

		d := mustOpen(t, fsys, base)
		followed := readAll(t, d, "name", "type")
		assert.Equal(t, stat.TypeDirectory, followed["link"].Type)
		assert.Equal(t, stat.TypeLink, followed["dangling"].Type)

		require.NoError(t, d.Rewind())
		raw := readAll(t, d, "name", "type", "link")
		assert.Equal(t, stat.TypeLink, raw["link"].Type)
	})
}

func TestDir_Entries(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		base := populate(t, fsys, root)
		d := mustOpen(t, fsys, base)

		entries, err := d.Entries("name")
		require.NoError(t, err)

		var names []string
		for rec, err := range entries.All() {
			require.NoError(t, err)
			assert.Equal(t, []stat.Field{stat.FieldName}, rec.Fields())
			names = append(names, rec.Name)
		}
		sort.Strings(names)
		assert.Equal(t, []string{"a.txt", "b.txt", "sub"}, names)

		for range entries.All() {
			t.Fatal("an exhausted cursor yields nothing until rewound")
		}

		require.NoError(t, d.Rewind())
		rec, ok, err := entries.Next()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Contains(t, names, rec.Name)
	})
}

func TestDir_EntriesBreak(t *testing.T) {
	mfs := billy.NewMemory()
	d := mustOpen(t, mfs, populate(t, mfs, "/"))

	entries, err := d.Entries()
	require.NoError(t, err)

	count := 0
	for range entries.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)

	remaining := readAll(t, d, "name")
	assert.Len(t, remaining, 2, "breaking leaves the stream where it stopped")
}

func TestDir_EntriesInvalidField(t *testing.T) {
	mfs := billy.NewMemory()
	d := mustOpen(t, mfs, populate(t, mfs, "/"))

	_, err := d.Entries("bogus")
	assert.True(t, errors.IsContract(err))
}

func TestDir_OpenErrors(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		_, err := Open(fsys, filepath.Join(root, "missing"))
		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

		path := filepath.Join(root, "plain")
		fstest.WriteFile(t, fsys, path, []byte("x"))
		_, err = Open(fsys, path)
		assert.Equal(t, errors.CodeNotDirectory, errors.GetCode(err))
	})
}

func TestDir_Close(t *testing.T) {
	mfs := billy.NewMemory()
	alloc := pool.NewAllocator()
	d := mustOpen(t, mfs, populate(t, mfs, "/"), WithAllocator(alloc))
	assert.Equal(t, 1, alloc.Live())
	assert.Contains(t, d.String(), "directory (0x")

	require.NoError(t, d.Close())
	assert.NoError(t, d.Close())
	assert.True(t, d.Closed())
	assert.Equal(t, "directory (closed)", d.String())
	assert.Equal(t, 0, alloc.Live())

	_, _, err := d.Read()
	assert.Equal(t, errors.CodeClosed, errors.GetCode(err))
	assert.Equal(t, errors.CodeClosed, errors.GetCode(d.Rewind()))
	_, err = d.Entries()
	assert.True(t, errors.IsContract(err))
}

func TestDir_ParentPool(t *testing.T) {
	mfs := billy.NewMemory()
	parent := pool.MustCreate(nil)
	d := mustOpen(t, mfs, populate(t, mfs, "/"), WithParent(parent))

	require.NoError(t, parent.Destroy())
	assert.True(t, d.Closed())
}

func TestDir_ReclaimAfterParentDestroyed(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	mfs := billy.NewMemory()
	alloc := pool.NewAllocator()
	parent := alloc.MustCreate(nil)
	d := mustOpen(t, mfs, populate(t, mfs, "/"), WithParent(parent), WithAllocator(alloc), WithLogger(log))

	require.NoError(t, parent.Destroy())
	d.h.reclaim()

	assert.Equal(t, 0, alloc.Live())
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.WarnLevel, e.Level, e.Message)
	}
}

func TestDir_ReclaimWarns(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	alloc := pool.NewAllocator()
	mfs := billy.NewMemory()
	d := mustOpen(t, mfs, populate(t, mfs, "/"), WithAllocator(alloc), WithLogger(log))

	d.h.reclaim()
	assert.True(t, d.Closed())
	assert.Equal(t, 0, alloc.Live())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestDir_PoolExhaustionPanics(t *testing.T) {
	mfs := billy.NewMemory()
	base := populate(t, mfs, "/")
	alloc := pool.NewAllocator(pool.WithLimit(1))
	held := alloc.MustCreate(nil)
	defer func() { _ = held.Destroy() }()

	assert.Panics(t, func() {
		_, _ = Open(mfs, base, WithAllocator(alloc))
	})
}

func TestMake(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		path := filepath.Join(root, "made")
		require.NoError(t, Make(fsys, path, 0o750))

		info, err := fsys.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		err = Make(fsys, path, 0o750)
		assert.Equal(t, errors.CodeAlreadyExists, errors.GetCode(err))

		err = Make(fsys, filepath.Join(root, "x", "y"), 0o750)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	})
}

func TestMakeAll(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		path := filepath.Join(root, "p", "q", "r")
		require.NoError(t, MakeAll(fsys, path, 0o755))
		require.NoError(t, MakeAll(fsys, path, 0o755))

		info, err := fsys.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestRemove(t *testing.T) {
	eachProvider(t, func(t *testing.T, fsys core.FS, root string) {
		base := populate(t, fsys, root)

		err := Remove(fsys, base)
		assert.Equal(t, errors.CodeNotEmpty, errors.GetCode(err))

		err = Remove(fsys, filepath.Join(base, "a.txt"))
		assert.Equal(t, errors.CodeNotDirectory, errors.GetCode(err))
		fstest.ReadFile(t, fsys, filepath.Join(base, "a.txt"))

		require.NoError(t, Remove(fsys, filepath.Join(base, "sub")))
		fstest.MustNotExist(t, fsys, filepath.Join(base, "sub"))
	})
}
