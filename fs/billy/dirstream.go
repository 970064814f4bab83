package billy

import (
	"io"
	"io/fs"
	"os"
	"syscall"
)

// dirBatch is the number of entries fetched from the OS per read.
const dirBatch = 64

// osDir streams entries from an open directory descriptor. billy only offers
// whole-directory ReadDir, so the local provider reads through *os.File in
// fixed-size batches instead.
type osDir struct {
	f       *os.File
	pending []fs.DirEntry
}

func openOSDir(name string) (*osDir, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, pathError("opendir", name, syscall.ENOTDIR)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &osDir{f: f}, nil
}

func (d *osDir) Next() (fs.FileInfo, error) {
	if d.f == nil {
		return nil, fs.ErrClosed
	}
	for {
		if len(d.pending) == 0 {
			batch, err := d.f.ReadDir(dirBatch)
			if len(batch) == 0 {
				if err == nil {
					err = io.EOF
				}
				return nil, err
			}
			d.pending = batch
		}

		entry := d.pending[0]
		d.pending = d.pending[1:]

		info, err := entry.Info()
		if os.IsNotExist(err) {
			// removed between readdir and lstat
			continue
		}
		return info, err
	}
}

func (d *osDir) Rewind() error {
	if d.f == nil {
		return fs.ErrClosed
	}
	d.pending = nil
	_, err := d.f.Seek(0, io.SeekStart)
	return err
}

func (d *osDir) Close() error {
	if d.f == nil {
		return nil
	}
	f := d.f
	d.f = nil
	d.pending = nil
	return f.Close()
}

// snapshotDir iterates over a directory listing taken when the stream was
// opened or last rewound.
type snapshotDir struct {
	list   func() ([]fs.FileInfo, error)
	infos  []fs.FileInfo
	closed bool
}

func newSnapshotDir(list func() ([]fs.FileInfo, error)) (*snapshotDir, error) {
	d := &snapshotDir{list: list}
	if err := d.Rewind(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *snapshotDir) Next() (fs.FileInfo, error) {
	if d.closed {
		return nil, fs.ErrClosed
	}
	if len(d.infos) == 0 {
		return nil, io.EOF
	}
	info := d.infos[0]
	d.infos = d.infos[1:]
	return info, nil
}

func (d *snapshotDir) Rewind() error {
	if d.closed {
		return fs.ErrClosed
	}
	infos, err := d.list()
	if err != nil {
		return err
	}
	d.infos = infos
	return nil
}

func (d *snapshotDir) Close() error {
	d.closed = true
	d.infos = nil
	return nil
}
