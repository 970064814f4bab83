// Package config loads fsio settings from YAML and turns them into loggers,
// allocators and handle options.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jmgilman/go/fsio/buffer"
	"github.com/jmgilman/go/fsio/dir"
	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/file"
	"github.com/jmgilman/go/fsio/fs/billy"
	"github.com/jmgilman/go/fsio/fs/core"
	"github.com/jmgilman/go/fsio/pool"
)

// Log format names.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the fsio configuration file.
type Config struct {
	BufferSize int          `yaml:"buffer_size"`
	MaxPools   int          `yaml:"max_pools"`
	Remove     RemoveConfig `yaml:"remove"`
	Log        LogConfig    `yaml:"log"`
}

// RemoveConfig tunes recursive directory removal.
type RemoveConfig struct {
	FileClearInterval int `yaml:"file_clear_interval"`
	DirClearInterval  int `yaml:"dir_clear_interval"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		BufferSize: buffer.DefaultSize,
		Remove: RemoveConfig{
			FileClearInterval: dir.DefaultFileClearInterval,
			DirClearInterval:  dir.DefaultDirClearInterval,
		},
		Log: LogConfig{
			Level:  logrus.InfoLevel.String(),
			Format: FormatText,
		},
	}
}

// Load reads a YAML configuration from path on fsys. Keys missing from the
// file keep their default values; unknown keys are rejected.
func Load(fsys core.FS, path string) (*Config, error) {
	f, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, errors.FromOS("open", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.FromOS("read", path, err)
	}
	return Parse(data)
}

// LoadFromFile reads a YAML configuration from the local filesystem.
func LoadFromFile(path string) (*Config, error) {
	return Load(billy.NewLocal(), path)
}

// Parse decodes a YAML configuration over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "failed to parse configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.BufferSize <= 0 {
		return errors.Contract("buffer_size", "buffer_size must be positive, got %d", c.BufferSize)
	}
	if c.MaxPools < 0 {
		return errors.Contract("max_pools", "max_pools must not be negative, got %d", c.MaxPools)
	}
	if c.Remove.FileClearInterval <= 0 {
		return errors.Contract("remove.file_clear_interval", "remove.file_clear_interval must be positive, got %d", c.Remove.FileClearInterval)
	}
	if c.Remove.DirClearInterval <= 0 {
		return errors.Contract("remove.dir_clear_interval", "remove.dir_clear_interval must be positive, got %d", c.Remove.DirClearInterval)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Contract("log.level", "invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case FormatText, FormatJSON:
	default:
		return errors.Contract("log.format", "log.format must be %q or %q, got %q", FormatText, FormatJSON, c.Log.Format)
	}
	return nil
}

// Logger builds a logger writing to out. Text output is coloured only when
// out is a terminal.
func (c *Config) Logger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	log.SetLevel(level)

	if c.Log.Format == FormatJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			DisableColors: !isTerminal(out),
			FullTimestamp: true,
		})
	}
	return log
}

// Allocator returns a pool allocator limited to MaxPools live pools.
func (c *Config) Allocator(log logrus.FieldLogger) *pool.Allocator {
	return pool.NewAllocator(pool.WithLimit(c.MaxPools), pool.WithLogger(log))
}

// FileOptions returns the file.Open options for this configuration.
func (c *Config) FileOptions(alloc *pool.Allocator, log logrus.FieldLogger) []file.Option {
	return []file.Option{
		file.WithBufferSize(c.BufferSize),
		file.WithAllocator(alloc),
		file.WithLogger(log),
	}
}

// DirOptions returns the dir.Open and dir.RemoveAll options for this
// configuration.
func (c *Config) DirOptions(alloc *pool.Allocator, log logrus.FieldLogger) []dir.Option {
	return []dir.Option{
		dir.WithAllocator(alloc),
		dir.WithLogger(log),
		dir.WithClearIntervals(c.Remove.FileClearInterval, c.Remove.DirClearInterval),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
