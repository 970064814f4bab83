package dir

import (
	"iter"

	"github.com/jmgilman/go/fsio/stat"
)

// Cursor iterates the entries of a Dir with a fixed field selection. It
// shares the position of its Dir, so the sequence restarts only after
// Dir.Rewind.
type Cursor struct {
	d   *Dir
	req stat.Request
}

// Entries returns a Cursor over the remaining entries of d. names are
// validated once, here.
func (d *Dir) Entries(names ...string) (*Cursor, error) {
	if _, err := d.live(); err != nil {
		return nil, err
	}
	req, err := stat.ParseRequest(names...)
	if err != nil {
		return nil, err
	}
	return &Cursor{d: d, req: req}, nil
}

// Next returns the next entry. ok is false once the stream is exhausted.
func (c *Cursor) Next() (*stat.Record, bool, error) {
	return c.d.read(c.req)
}

// All returns the remaining entries as a sequence. An error ends the
// sequence after being yielded.
func (c *Cursor) All() iter.Seq2[*stat.Record, error] {
	return func(yield func(*stat.Record, error) bool) {
		for {
			rec, ok, err := c.Next()
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok || !yield(rec, nil) {
				return
			}
		}
	}
}
