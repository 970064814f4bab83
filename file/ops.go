package file

import (
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/fs/core"
	"github.com/jmgilman/go/fsio/stat"
)

// Copy copies source to target, replacing target if it exists. A perm of
// zero gives target the permission bits of source.
func Copy(fsys core.FS, source, target string, perm fs.FileMode) error {
	return transfer(fsys, "copy", source, target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
}

// Append appends the contents of source to target, creating target if it
// does not exist. A perm of zero gives a created target the permission bits
// of source.
func Append(fsys core.FS, source, target string, perm fs.FileMode) error {
	return transfer(fsys, "append", source, target, os.O_WRONLY|os.O_CREATE|os.O_APPEND, perm)
}

func transfer(fsys core.FS, op, source, target string, flag int, perm fs.FileMode) error {
	in, err := fsys.OpenFile(source, os.O_RDONLY, 0)
	if err != nil {
		return errors.FromOS(op, source, err)
	}
	defer func() { _ = in.Close() }()

	if perm == 0 {
		info, err := in.Stat()
		if err != nil {
			return errors.FromOS(op, source, err)
		}
		perm = info.Mode().Perm()
	}

	out, err := fsys.OpenFile(target, flag, perm)
	if err != nil {
		return errors.FromOS(op, target, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.WithContext(errors.FromOS(op, target, err), "source", source)
	}
	if err := out.Close(); err != nil {
		return errors.FromOS(op, target, err)
	}
	return nil
}

// Rename renames source to target, replacing target if it exists.
func Rename(fsys core.FS, source, target string) error {
	if err := fsys.Rename(source, target); err != nil {
		return errors.WithContext(errors.FromOS("rename", source, err), "target", target)
	}
	return nil
}

// Remove deletes the file at path.
func Remove(fsys core.FS, path string) error {
	if err := fsys.Remove(path); err != nil {
		return errors.FromOS("remove", path, err)
	}
	return nil
}

// SetModTime sets the modification time of path, leaving its access time
// unchanged.
func SetModTime(fsys core.FS, path string, mtime time.Time) error {
	if err := fsys.Chtimes(path, time.Time{}, mtime); err != nil {
		return errors.FromOS("chtimes", path, err)
	}
	return nil
}

// Attribute names accepted by SetAttributes.
const (
	AttrReadOnly   = "readonly"
	AttrHidden     = "hidden"
	AttrExecutable = "executable"
)

// SetAttributes applies portable attributes to path. Keys must be
// AttrReadOnly, AttrHidden or AttrExecutable; any other key is a contract
// error and nothing is changed.
//
// On Unix, readonly true clears every write bit and readonly false grants
// the owner write permission; executable true grants execute wherever read
// is granted and executable false clears every execute bit. hidden has no
// effect.
func SetAttributes(fsys core.FS, path string, attrs map[string]bool) error {
	for key := range attrs {
		switch key {
		case AttrReadOnly, AttrHidden, AttrExecutable:
		default:
			return errors.Contract("attributes", "invalid attribute key %q", key)
		}
	}

	info, err := fsys.Stat(path)
	if err != nil {
		return errors.FromOS("chmod", path, err)
	}
	mode := info.Mode().Perm()
	orig := mode

	if readonly, ok := attrs[AttrReadOnly]; ok {
		if readonly {
			mode &^= 0o222
		} else {
			mode |= 0o200
		}
	}
	if executable, ok := attrs[AttrExecutable]; ok {
		if executable {
			mode |= (mode & 0o444) >> 2
		} else {
			mode &^= 0o111
		}
	}

	if mode == orig {
		return nil
	}
	if err := fsys.Chmod(path, mode|info.Mode()&(fs.ModeSetuid|fs.ModeSetgid|fs.ModeSticky)); err != nil {
		return errors.FromOS("chmod", path, err)
	}
	return nil
}

// Stat returns metadata for path. names selects fields as in
// stat.ParseRequest, including the "link" pseudo-field; none selects all
// fields.
func Stat(fsys core.FS, path string, names ...string) (*stat.Record, error) {
	req, err := stat.ParseRequest(names...)
	if err != nil {
		return nil, err
	}
	return stat.Query(fsys, path, req)
}
