package dir

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/fs/core"
)

// tempEnv lists the environment variables consulted by Temp, in order.
var tempEnv = []string{"TMPDIR", "TMP", "TEMP"}

// tempFallbacks are tried after the environment and before the working
// directory.
var tempFallbacks = []string{"/tmp", "/var/tmp", "/usr/tmp"}

// Temp returns a directory suitable for temporary files.
//
// Candidates are the TMPDIR, TMP and TEMP environment variables, then /tmp,
// /var/tmp and /usr/tmp, then the working directory. The first candidate that
// is a directory in which a file can be created is returned. When none
// qualifies Temp fails with CodeNotFound.
func Temp(fsys core.FS) (string, error) {
	candidates := make([]string, 0, len(tempEnv)+len(tempFallbacks)+1)
	for _, key := range tempEnv {
		if v := os.Getenv(key); v != "" {
			candidates = append(candidates, v)
		}
	}
	candidates = append(candidates, tempFallbacks...)
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, wd)
	}

	for _, c := range candidates {
		if writable(fsys, c) {
			return filepath.Clean(c), nil
		}
	}
	return "", errors.New(errors.CodeNotFound, "no usable temporary directory")
}

// writable reports whether path is a directory that accepts new files.
func writable(fsys core.FS, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}

	name := filepath.Join(path, ".fsio-"+uuid.NewString())
	f, err := fsys.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return false
	}
	_ = f.Close()
	_ = fsys.Remove(name)
	return true
}
