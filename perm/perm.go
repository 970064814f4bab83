// Package perm parses and formats Unix permission bits.
//
// Permissions are accepted as integers, octal strings ("0644", "755") or
// symbolic strings in the style of ls -l ("rwxr-x---"). The symbolic form
// honours setuid, setgid and sticky markers: "s"/"S" in the user or group
// execute slot, "t"/"T" in the other execute slot, lowercase meaning the
// execute bit is also set.
package perm

import (
	"io/fs"
	"strconv"
	"strings"

	"github.com/jmgilman/go/fsio/errors"
)

// Mask covers the permission and special bits Parse can produce.
const Mask = fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky

// Parse converts value to permission bits. A nil value yields def.
//
// Accepted values are fs.FileMode, any integer type holding Unix mode bits
// (0o4000 setuid, 0o2000 setgid, 0o1000 sticky) and strings in octal or
// symbolic form. Anything else is a contract error.
func Parse(value any, def fs.FileMode) (fs.FileMode, error) {
	switch v := value.(type) {
	case nil:
		return def, nil
	case fs.FileMode:
		return v & Mask, nil
	case int:
		return fromUnix(int64(v))
	case int32:
		return fromUnix(int64(v))
	case int64:
		return fromUnix(v)
	case uint:
		return fromUnix(int64(v))
	case uint32:
		return fromUnix(int64(v))
	case uint64:
		if v > 0o7777 {
			return 0, outOfRange(v)
		}
		return fromUnix(int64(v))
	case string:
		return ParseString(v)
	default:
		return 0, errors.Contract("permissions", "cannot use %T as permissions", value)
	}
}

// ParseString parses an octal or symbolic permission string.
func ParseString(s string) (fs.FileMode, error) {
	if s == "" {
		return 0, errors.Contract("permissions", "empty permission string")
	}
	if isOctal(s) {
		n, err := strconv.ParseUint(strings.TrimPrefix(s, "0o"), 8, 32)
		if err != nil || n > 0o7777 {
			return 0, errors.Contract("permissions", "invalid octal permissions %q", s)
		}
		return fromUnix(int64(n))
	}
	return parseSymbolic(s)
}

func isOctal(s string) bool {
	s = strings.TrimPrefix(s, "0o")
	if s == "" || len(s) > 5 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '7' {
			return false
		}
	}
	return true
}

func fromUnix(n int64) (fs.FileMode, error) {
	if n < 0 || n > 0o7777 {
		return 0, outOfRange(n)
	}
	mode := fs.FileMode(n) & fs.ModePerm
	if n&0o4000 != 0 {
		mode |= fs.ModeSetuid
	}
	if n&0o2000 != 0 {
		mode |= fs.ModeSetgid
	}
	if n&0o1000 != 0 {
		mode |= fs.ModeSticky
	}
	return mode, nil
}

func outOfRange(v any) error {
	return errors.Contract("permissions", "permission bits %v out of range", v)
}

// slot describes one character position of the symbolic form.
type slot struct {
	bit     fs.FileMode
	letter  byte
	special fs.FileMode
	marker  byte
}

var slots = [9]slot{
	{bit: 0o400, letter: 'r'},
	{bit: 0o200, letter: 'w'},
	{bit: 0o100, letter: 'x', special: fs.ModeSetuid, marker: 's'},
	{bit: 0o040, letter: 'r'},
	{bit: 0o020, letter: 'w'},
	{bit: 0o010, letter: 'x', special: fs.ModeSetgid, marker: 's'},
	{bit: 0o004, letter: 'r'},
	{bit: 0o002, letter: 'w'},
	{bit: 0o001, letter: 'x', special: fs.ModeSticky, marker: 't'},
}

func parseSymbolic(s string) (fs.FileMode, error) {
	if len(s) != len(slots) {
		return 0, errors.Contract("permissions", "invalid permission string %q", s)
	}

	var mode fs.FileMode
	for i, sl := range slots {
		c := s[i]
		switch {
		case c == '-':
		case c == sl.letter:
			mode |= sl.bit
		case sl.special != 0 && c == sl.marker:
			mode |= sl.bit | sl.special
		case sl.special != 0 && c == sl.marker-'a'+'A':
			mode |= sl.special
		default:
			return 0, errors.Contract("permissions", "invalid character %q at position %d in %q", c, i+1, s)
		}
	}
	return mode, nil
}

// Format renders mode in the symbolic form accepted by Parse.
func Format(mode fs.FileMode) string {
	var b [9]byte
	for i, sl := range slots {
		set := mode&sl.bit != 0
		switch {
		case sl.special != 0 && mode&sl.special != 0 && set:
			b[i] = sl.marker
		case sl.special != 0 && mode&sl.special != 0:
			b[i] = sl.marker - 'a' + 'A'
		case set:
			b[i] = sl.letter
		default:
			b[i] = '-'
		}
	}
	return string(b[:])
}

// Unix returns mode as traditional Unix mode bits.
func Unix(mode fs.FileMode) uint32 {
	n := uint32(mode.Perm())
	if mode&fs.ModeSetuid != 0 {
		n |= 0o4000
	}
	if mode&fs.ModeSetgid != 0 {
		n |= 0o2000
	}
	if mode&fs.ModeSticky != 0 {
		n |= 0o1000
	}
	return n
}
