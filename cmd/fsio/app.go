package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/jmgilman/go/fsio/config"
	"github.com/jmgilman/go/fsio/dir"
	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/file"
	"github.com/jmgilman/go/fsio/fs/billy"
	"github.com/jmgilman/go/fsio/fs/core"
	"github.com/jmgilman/go/fsio/pool"
)

// env is the state shared by every command, built once flags are parsed.
type env struct {
	fsys   core.FS
	cfg    *config.Config
	log    *logrus.Logger
	alloc  *pool.Allocator
	stdout io.Writer
	stderr io.Writer

	jsonErrors bool
}

// run executes the command line args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	app, e := newApp(stdout, stderr)
	if err := app.Run(args); err != nil {
		e.report(err)
		return 1
	}
	return 0
}

// report writes err to stderr as text or, with --json-errors, as a JSON
// error response.
func (e *env) report(err error) {
	if e.jsonErrors {
		_ = json.NewEncoder(e.stderr).Encode(errors.ToJSON(err))
		return
	}
	fmt.Fprintln(e.stderr, err)
}

func (e *env) fileOptions() []file.Option {
	return e.cfg.FileOptions(e.alloc, e.log)
}

func (e *env) dirOptions() []dir.Option {
	return e.cfg.DirOptions(e.alloc, e.log)
}

func newApp(stdout, stderr io.Writer) (*cli.App, *env) {
	e := &env{fsys: billy.NewLocal(), stdout: stdout, stderr: stderr}

	app := &cli.App{
		Name:      "fsio",
		Usage:     "buffered file and directory operations",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
				EnvVars: []string{"FSIO_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override the configured log level",
			},
			&cli.BoolFlag{
				Name:  "json-errors",
				Usage: "report failures as JSON",
			},
		},
		Before: func(c *cli.Context) error {
			return e.setup(c)
		},
		Commands: commands(e),
	}
	return app, e
}

func (e *env) setup(c *cli.Context) error {
	e.jsonErrors = c.Bool("json-errors")

	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	e.cfg = cfg
	e.log = cfg.Logger(e.stderr)
	e.alloc = cfg.Allocator(e.log)
	return nil
}

// args returns the positional arguments of c, failing unless there are at
// least n of them.
func args(c *cli.Context, n int) ([]string, error) {
	if c.NArg() < n {
		return nil, errors.Contract("args", "%s: expected %d arguments, got %d (usage: %s %s)",
			c.Command.Name, n, c.NArg(), c.Command.Name, c.Command.ArgsUsage)
	}
	return c.Args().Slice(), nil
}
