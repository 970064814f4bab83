package core

import (
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

// CopyFromFS copies all files from a read-only filesystem (typically embed.FS
// or testing/fstest.MapFS) into dst below dstRoot, preserving the directory
// structure and permission bits.
//
// The srcRoot parameter specifies the root directory in the source filesystem to copy from.
// Use "." to copy the entire source filesystem.
//
// Example:
//
//	err := core.CopyFromFS(fstest.MapFS{
//	    "a/b/f.txt": {Data: []byte("hi")},
//	}, billy.NewMemory(), ".", "/tmp/t")
func CopyFromFS(src fs.FS, dst FS, srcRoot, dstRoot string) error {
	return fs.WalkDir(src, srcRoot, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := filePath
		if srcRoot != "." && srcRoot != "" {
			rel = strings.TrimPrefix(strings.TrimPrefix(filePath, srcRoot), "/")
		}
		dstPath := path.Join(dstRoot, rel)

		if d.IsDir() {
			return dst.MkdirAll(dstPath, 0o755)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		if dir := path.Dir(dstPath); dir != "." && dir != "" {
			if err := dst.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}

		return copyOne(src, filePath, dst, dstPath, info.Mode().Perm())
	})
}

func copyOne(src fs.FS, srcPath string, dst FS, dstPath string, perm fs.FileMode) error {
	in, err := src.Open(srcPath)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := dst.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
