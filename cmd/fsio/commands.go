package main

import (
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmgilman/go/fsio/buffer"
	"github.com/jmgilman/go/fsio/dir"
	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/file"
	"github.com/jmgilman/go/fsio/perm"
)

func commands(e *env) []*cli.Command {
	permFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:  "perm",
			Usage: "permission bits, octal (0644) or symbolic (rw-r--r--)",
		}
	}
	statFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringSliceFlag{Name: "fields", Usage: "metadata fields to report"},
			&cli.BoolFlag{Name: "link", Usage: "report symbolic links instead of their targets"},
		}
	}

	return []*cli.Command{
		{
			Name:      "cat",
			Usage:     "print file contents",
			ArgsUsage: "PATH...",
			Action:    e.cat,
		},
		{
			Name:      "head",
			Usage:     "print the first lines of a file",
			ArgsUsage: "PATH",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "lines", Aliases: []string{"n"}, Value: 10, Usage: "number of lines"},
			},
			Action: e.head,
		},
		{
			Name:      "read",
			Usage:     "read values with format requests (l, a, n or a byte count)",
			ArgsUsage: "PATH FORMAT...",
			Action:    e.read,
		},
		{
			Name:      "write",
			Usage:     "write values to a file, replacing its contents",
			ArgsUsage: "PATH VALUE...",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "append", Aliases: []string{"a"}, Usage: "append instead of truncating"},
				permFlag(),
			},
			Action: e.write,
		},
		{
			Name:      "append-file",
			Usage:     "append one file to another",
			ArgsUsage: "SOURCE TARGET",
			Flags:     []cli.Flag{permFlag()},
			Action:    e.appendFile,
		},
		{
			Name:      "copy",
			Usage:     "copy a file",
			ArgsUsage: "SOURCE TARGET",
			Flags:     []cli.Flag{permFlag()},
			Action:    e.copy,
		},
		{
			Name:      "rename",
			Usage:     "rename a file or directory",
			ArgsUsage: "SOURCE TARGET",
			Action:    e.rename,
		},
		{
			Name:      "rm",
			Usage:     "remove a file or an empty directory",
			ArgsUsage: "PATH",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "dir", Aliases: []string{"d"}, Usage: "remove an empty directory"},
			},
			Action: e.rm,
		},
		{
			Name:      "rmtree",
			Usage:     "remove a directory and everything beneath it",
			ArgsUsage: "PATH",
			Action:    e.rmtree,
		},
		{
			Name:      "mkdir",
			Usage:     "create a directory",
			ArgsUsage: "PATH",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "parents", Aliases: []string{"p"}, Usage: "create missing parents"},
				permFlag(),
			},
			Action: e.mkdir,
		},
		{
			Name:   "tempdir",
			Usage:  "print a directory suitable for temporary files",
			Action: e.tempdir,
		},
		{
			Name:      "ls",
			Usage:     "list directory entries",
			ArgsUsage: "PATH",
			Flags:     statFlags(),
			Action:    e.ls,
		},
		{
			Name:      "stat",
			Usage:     "print file metadata as YAML",
			ArgsUsage: "PATH",
			Flags:     statFlags(),
			Action:    e.stat,
		},
		{
			Name:      "touch",
			Usage:     "create a file or set its modification time",
			ArgsUsage: "PATH",
			Flags: []cli.Flag{
				&cli.TimestampFlag{Name: "time", Layout: time.RFC3339, Usage: "modification time (RFC 3339)"},
			},
			Action: e.touch,
		},
		{
			Name:      "chattr",
			Usage:     "set readonly, hidden or executable",
			ArgsUsage: "PATH ATTR=BOOL...",
			Action:    e.chattr,
		},
		{
			Name:      "seek",
			Usage:     "print the bytes of a file starting at an offset",
			ArgsUsage: "PATH OFFSET",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "whence", Value: "set", Usage: "set, cur or end"},
				&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Usage: "bytes to read; 0 reads to the end"},
			},
			Action: e.seek,
		},
	}
}

// withFile opens path, runs fn and closes the file, keeping the first error.
func (e *env) withFile(path, mode string, fn func(*file.File) error, opts ...file.Option) (err error) {
	f, err := file.Open(e.fsys, path, mode, append(e.fileOptions(), opts...)...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}

// permFrom parses the --perm flag, returning def when it is not set.
func permFrom(c *cli.Context, def fs.FileMode) (fs.FileMode, error) {
	if !c.IsSet("perm") {
		return def, nil
	}
	return perm.Parse(c.String("perm"), def)
}

func (e *env) cat(c *cli.Context) error {
	paths, err := args(c, 1)
	if err != nil {
		return err
	}
	for _, path := range paths {
		err := e.withFile(path, "r", func(f *file.File) error {
			_, err := io.Copy(e.stdout, f)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *env) head(c *cli.Context) error {
	a, err := args(c, 1)
	if err != nil {
		return err
	}
	return e.withFile(a[0], "r", func(f *file.File) error {
		for range c.Int("lines") {
			line, ok, err := f.ReadLine()
			if err != nil || !ok {
				return err
			}
			fmt.Fprintln(e.stdout, line)
		}
		return nil
	})
}

func (e *env) read(c *cli.Context) error {
	a, err := args(c, 2)
	if err != nil {
		return err
	}
	reqs := make([]buffer.Request, 0, len(a)-1)
	for _, s := range a[1:] {
		req, err := buffer.ParseRequest(s)
		if err != nil {
			return err
		}
		reqs = append(reqs, req)
	}

	return e.withFile(a[0], "r", func(f *file.File) error {
		results, err := f.ReadFormats(reqs...)
		if err != nil {
			return err
		}
		for _, r := range results {
			switch {
			case !r.OK:
				fmt.Fprintln(e.stdout, "nil")
			case r.Request.Format == buffer.FormatNumber:
				fmt.Fprintln(e.stdout, strconv.FormatFloat(r.Number, 'g', -1, 64))
			default:
				fmt.Fprintln(e.stdout, r.Text)
			}
		}
		return nil
	})
}

func (e *env) write(c *cli.Context) error {
	a, err := args(c, 1)
	if err != nil {
		return err
	}
	p, err := permFrom(c, file.DefaultPerm)
	if err != nil {
		return err
	}
	mode := "w"
	if c.Bool("append") {
		mode = "a"
	}

	values := make([]any, 0, len(a)-1)
	for _, v := range a[1:] {
		values = append(values, v)
	}
	return e.withFile(a[0], mode, func(f *file.File) error {
		return f.WriteValues(values...)
	}, file.WithPerm(p))
}

func (e *env) appendFile(c *cli.Context) error {
	a, err := args(c, 2)
	if err != nil {
		return err
	}
	p, err := permFrom(c, 0)
	if err != nil {
		return err
	}
	return file.Append(e.fsys, a[0], a[1], p)
}

func (e *env) copy(c *cli.Context) error {
	a, err := args(c, 2)
	if err != nil {
		return err
	}
	p, err := permFrom(c, 0)
	if err != nil {
		return err
	}
	return file.Copy(e.fsys, a[0], a[1], p)
}

func (e *env) rename(c *cli.Context) error {
	a, err := args(c, 2)
	if err != nil {
		return err
	}
	return file.Rename(e.fsys, a[0], a[1])
}

func (e *env) rm(c *cli.Context) error {
	a, err := args(c, 1)
	if err != nil {
		return err
	}
	if c.Bool("dir") {
		return dir.Remove(e.fsys, a[0])
	}
	return file.Remove(e.fsys, a[0])
}

func (e *env) rmtree(c *cli.Context) error {
	a, err := args(c, 1)
	if err != nil {
		return err
	}
	return dir.RemoveAll(e.fsys, a[0], e.dirOptions()...)
}

func (e *env) mkdir(c *cli.Context) error {
	a, err := args(c, 1)
	if err != nil {
		return err
	}
	p, err := permFrom(c, 0o755)
	if err != nil {
		return err
	}
	if c.Bool("parents") {
		return dir.MakeAll(e.fsys, a[0], p)
	}
	return dir.Make(e.fsys, a[0], p)
}

func (e *env) tempdir(*cli.Context) error {
	path, err := dir.Temp(e.fsys)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, path)
	return nil
}

// fieldNames returns the --fields and --link selection as stat field names.
func fieldNames(c *cli.Context, def ...string) []string {
	names := c.StringSlice("fields")
	if len(names) == 0 {
		names = def
	}
	if c.Bool("link") {
		names = append(names, "link")
	}
	return names
}

func (e *env) ls(c *cli.Context) (err error) {
	a, err := args(c, 1)
	if err != nil {
		return err
	}
	d, err := dir.Open(e.fsys, a[0], e.dirOptions()...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := d.Close(); err == nil {
			err = cerr
		}
	}()

	entries, err := d.Entries(fieldNames(c, "name", "type")...)
	if err != nil {
		return err
	}
	for rec, err := range entries.All() {
		if err != nil {
			return err
		}
		cols := make([]string, 0, len(rec.Fields()))
		for _, f := range rec.Fields() {
			cols = append(cols, fmt.Sprint(rec.Value(f)))
		}
		fmt.Fprintln(e.stdout, strings.Join(cols, "\t"))
	}
	return nil
}

func (e *env) stat(c *cli.Context) error {
	a, err := args(c, 1)
	if err != nil {
		return err
	}
	rec, err := file.Stat(e.fsys, a[0], fieldNames(c)...)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(e.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(rec.Map()); err != nil {
		return err
	}
	return enc.Close()
}

func (e *env) touch(c *cli.Context) error {
	a, err := args(c, 1)
	if err != nil {
		return err
	}
	mtime := time.Now()
	if t := c.Timestamp("time"); t != nil {
		mtime = *t
	}

	exists, err := e.fsys.Exists(a[0])
	if err != nil {
		return errors.FromOS("stat", a[0], err)
	}
	if !exists {
		if err := e.withFile(a[0], "a", func(*file.File) error { return nil }); err != nil {
			return err
		}
	}
	return file.SetModTime(e.fsys, a[0], mtime)
}

func (e *env) chattr(c *cli.Context) error {
	a, err := args(c, 2)
	if err != nil {
		return err
	}
	attrs := make(map[string]bool, len(a)-1)
	for _, kv := range a[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return errors.Contract("attributes", "expected ATTR=BOOL, got %q", kv)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Contract("attributes", "invalid value for %s: %q", key, value)
		}
		attrs[key] = b
	}
	return file.SetAttributes(e.fsys, a[0], attrs)
}

func (e *env) seek(c *cli.Context) error {
	a, err := args(c, 2)
	if err != nil {
		return err
	}
	offset, err := strconv.ParseFloat(a[1], 64)
	if err != nil {
		return errors.Contract("offset", "invalid offset %q", a[1])
	}

	return e.withFile(a[0], "r", func(f *file.File) error {
		if _, err := f.SeekNumber(c.String("whence"), offset); err != nil {
			return err
		}
		var s string
		var err error
		if n := c.Int("count"); n > 0 {
			s, _, err = f.ReadN(n)
		} else {
			s, err = f.ReadAll()
		}
		if err != nil {
			return err
		}
		_, err = io.WriteString(e.stdout, s)
		return err
	})
}
