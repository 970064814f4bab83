package file

import (
	"os"
	"strings"

	"github.com/jmgilman/go/fsio/errors"
)

// Mode describes how a file is opened.
type Mode struct {
	Read     bool
	Write    bool
	Create   bool
	Truncate bool
	Append   bool
	// Binary is accepted for compatibility and has no effect.
	Binary bool
}

// ParseMode parses an fopen-style mode string: one of "r", "w" or "a",
// optionally followed by "+" and "b" in either order. The empty string
// means "r". Any other character is a contract error.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return Mode{Read: true}, nil
	}

	var m Mode
	switch s[0] {
	case 'r':
		m.Read = true
	case 'w':
		m.Write, m.Create, m.Truncate = true, true, true
	case 'a':
		m.Write, m.Create, m.Append = true, true, true
	default:
		return Mode{}, invalidMode(s)
	}

	var plus bool
	for _, c := range s[1:] {
		switch {
		case c == '+' && !plus:
			plus = true
			m.Read, m.Write = true, true
		case c == 'b' && !m.Binary:
			m.Binary = true
		default:
			return Mode{}, invalidMode(s)
		}
	}

	if !m.Write {
		m.Read = true
	}
	return m, nil
}

func invalidMode(s string) error {
	return errors.Contract("mode", "invalid mode %q", s)
}

// Flags returns the os.OpenFile flags for the mode.
func (m Mode) Flags() int {
	var flag int
	switch {
	case m.Read && m.Write:
		flag = os.O_RDWR
	case m.Write:
		flag = os.O_WRONLY
	default:
		flag = os.O_RDONLY
	}
	if m.Create {
		flag |= os.O_CREATE
	}
	if m.Truncate {
		flag |= os.O_TRUNC
	}
	if m.Append {
		flag |= os.O_APPEND
	}
	return flag
}

// String returns the canonical mode string.
func (m Mode) String() string {
	var b strings.Builder
	switch {
	case m.Append:
		b.WriteByte('a')
	case m.Truncate:
		b.WriteByte('w')
	default:
		b.WriteByte('r')
	}
	if m.Read && m.Write {
		b.WriteByte('+')
	}
	if m.Binary {
		b.WriteByte('b')
	}
	return b.String()
}
