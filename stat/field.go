package stat

import (
	"github.com/jmgilman/go/fsio/errors"
)

// Field identifies one metadata field.
type Field int

const (
	FieldName Field = iota
	FieldPath
	FieldType
	FieldUser
	FieldGroup
	FieldSize
	FieldCSize
	FieldCTime
	FieldATime
	FieldMTime
	FieldNLink
	FieldInode
	FieldDev
)

var fieldNames = [...]string{
	FieldName:  "name",
	FieldPath:  "path",
	FieldType:  "type",
	FieldUser:  "user",
	FieldGroup: "group",
	FieldSize:  "size",
	FieldCSize: "csize",
	FieldCTime: "ctime",
	FieldATime: "atime",
	FieldMTime: "mtime",
	FieldNLink: "nlink",
	FieldInode: "inode",
	FieldDev:   "dev",
}

// AllFields lists every field in canonical order.
var AllFields = []Field{
	FieldName, FieldPath, FieldType, FieldUser, FieldGroup, FieldSize, FieldCSize,
	FieldCTime, FieldATime, FieldMTime, FieldNLink, FieldInode, FieldDev,
}

// String returns the field name.
func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// ParseField returns the field with the given name.
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, errors.Contract("field", "unknown stat field %q", name)
}

// linkField is the pseudo-field that disables symlink following.
const linkField = "link"

// Request selects the fields of a query.
type Request struct {
	// Fields lists the requested fields in order. An empty list selects
	// AllFields.
	Fields []Field
	// NoFollow reports metadata of a symbolic link itself.
	NoFollow bool
}

// ParseRequest builds a Request from field names. "link" sets NoFollow and
// produces no field of its own.
func ParseRequest(names ...string) (Request, error) {
	var req Request
	for _, name := range names {
		if name == linkField {
			req.NoFollow = true
			continue
		}
		f, err := ParseField(name)
		if err != nil {
			return Request{}, err
		}
		req.Fields = append(req.Fields, f)
	}
	return req, nil
}

// All requests every field.
func All() Request {
	return Request{}
}

func (r Request) fields() []Field {
	if len(r.Fields) == 0 {
		return AllFields
	}
	return r.Fields
}

func (r Request) wants(f Field) bool {
	for _, g := range r.fields() {
		if g == f {
			return true
		}
	}
	return false
}
