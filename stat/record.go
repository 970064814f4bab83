package stat

import (
	"io/fs"
	"os/user"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/fs/core"
)

// Record holds the requested metadata of one entry. Only the fields listed
// by Fields are populated.
type Record struct {
	fields []Field

	Name  string
	Path  string
	Type  Type
	User  string
	Group string
	Size  int64
	CSize int64
	CTime time.Time
	ATime time.Time
	MTime time.Time
	NLink uint64
	Inode uint64
	Dev   uint64
}

// Fields returns the populated fields in request order.
func (r *Record) Fields() []Field {
	return r.fields
}

// Has reports whether f was requested.
func (r *Record) Has(f Field) bool {
	for _, g := range r.fields {
		if g == f {
			return true
		}
	}
	return false
}

// Value returns the value of f, or nil when f was not requested.
func (r *Record) Value(f Field) any {
	if !r.Has(f) {
		return nil
	}
	switch f {
	case FieldName:
		return r.Name
	case FieldPath:
		return r.Path
	case FieldType:
		return r.Type
	case FieldUser:
		return r.User
	case FieldGroup:
		return r.Group
	case FieldSize:
		return r.Size
	case FieldCSize:
		return r.CSize
	case FieldCTime:
		return r.CTime
	case FieldATime:
		return r.ATime
	case FieldMTime:
		return r.MTime
	case FieldNLink:
		return r.NLink
	case FieldInode:
		return r.Inode
	case FieldDev:
		return r.Dev
	}
	return nil
}

// Map returns the populated fields keyed by field name. Types are rendered
// as strings.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.fields))
	for _, f := range r.fields {
		v := r.Value(f)
		if t, ok := v.(Type); ok {
			v = string(t)
		}
		m[f.String()] = v
	}
	return m
}

// accessTimer is implemented by FileInfo values that track access time
// without a platform stat record, such as those of the memory provider.
type accessTimer interface {
	AccessTime() time.Time
}

// platform holds the fields only a platform stat record provides.
type platform struct {
	ok       bool
	uid, gid uint32
	csize    int64
	atime    time.Time
	ctime    time.Time
	nlink    uint64
	inode    uint64
	dev      uint64
}

// FromFileInfo builds a record from info. path is reported as the path
// field; an empty path falls back to the entry name.
func FromFileInfo(path string, info fs.FileInfo, req Request) *Record {
	fields := req.fields()
	r := &Record{fields: fields}
	if path == "" {
		path = info.Name()
	}

	p := fromSys(info)
	for _, f := range fields {
		switch f {
		case FieldName:
			r.Name = info.Name()
		case FieldPath:
			r.Path = path
		case FieldType:
			r.Type = TypeOf(info.Mode())
		case FieldUser:
			if p.ok {
				r.User = lookupUser(p.uid)
			}
		case FieldGroup:
			if p.ok {
				r.Group = lookupGroup(p.gid)
			}
		case FieldSize:
			r.Size = info.Size()
		case FieldCSize:
			r.CSize = info.Size()
			if p.ok {
				r.CSize = p.csize
			}
		case FieldMTime:
			r.MTime = info.ModTime()
		case FieldATime:
			switch {
			case p.ok:
				r.ATime = p.atime
			case hasAccessTime(info):
				r.ATime = info.(accessTimer).AccessTime()
			default:
				r.ATime = info.ModTime()
			}
		case FieldCTime:
			r.CTime = info.ModTime()
			if p.ok {
				r.CTime = p.ctime
			}
		case FieldNLink:
			r.NLink = 1
			if p.ok {
				r.NLink = p.nlink
			}
		case FieldInode:
			r.Inode = p.inode
		case FieldDev:
			r.Dev = p.dev
		}
	}
	return r
}

func hasAccessTime(info fs.FileInfo) bool {
	_, ok := info.(accessTimer)
	return ok
}

// Query returns metadata for path. Symbolic links are followed unless
// req.NoFollow is set.
func Query(fsys core.FS, path string, req Request) (*Record, error) {
	op, statFn := "stat", fsys.Stat
	if req.NoFollow {
		op, statFn = "lstat", fsys.Lstat
	}

	info, err := statFn(path)
	if err != nil {
		return nil, errors.FromOS(op, path, err)
	}
	return FromFileInfo(filepath.Clean(path), info, req), nil
}

// Owner names are cached for the life of the process; lookups hit the user
// database on every miss.
var (
	userNames  sync.Map
	groupNames sync.Map
)

func lookupUser(uid uint32) string {
	id := strconv.FormatUint(uint64(uid), 10)
	if name, ok := userNames.Load(id); ok {
		return name.(string)
	}
	name := id
	if u, err := user.LookupId(id); err == nil {
		name = u.Username
	}
	userNames.Store(id, name)
	return name
}

func lookupGroup(gid uint32) string {
	id := strconv.FormatUint(uint64(gid), 10)
	if name, ok := groupNames.Load(id); ok {
		return name.(string)
	}
	name := id
	if g, err := user.LookupGroupId(id); err == nil {
		name = g.Name
	}
	groupNames.Store(id, name)
	return name
}
