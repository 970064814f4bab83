package buffer

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jmgilman/go/fsio/errors"
)

// maxNumberLen is the longest numeral ReadNumber will consider.
const maxNumberLen = 64

// maxExact is the largest magnitude a float64 holds without losing integer
// precision.
const maxExact = 1 << 53

const space = " \n\t\r\f\v"

// ReadNumber consumes leading whitespace and parses a number: a decimal
// with optional fraction and exponent, or a 0x-prefixed hexadecimal integer.
// When no number follows the whitespace ok is false and nothing else is
// consumed.
func (b *Buffer) ReadNumber() (float64, bool, error) {
	var eof bool
	for {
		for b.Buffered() > 0 && strings.IndexByte(space, b.avail()[0]) >= 0 {
			b.index++
		}
		if eof || b.Buffered() >= maxNumberLen {
			break
		}

		err := b.fill()
		if err == io.EOF {
			eof = true
			continue
		}
		if err != nil {
			return 0, false, err
		}
	}

	value, n := parseNumber(b.avail())
	if n == 0 {
		return 0, false, nil
	}
	b.index += n
	return value, true, nil
}

// parseNumber parses the longest numeral at the start of p and returns its
// value and length. A length of zero means no numeral was found.
func parseNumber(p []byte) (float64, int) {
	if len(p) > maxNumberLen {
		p = p[:maxNumberLen]
	}

	sign := 0
	if len(p) > 0 && (p[0] == '+' || p[0] == '-') {
		sign = 1
	}
	if len(p) > sign+1 && p[sign] == '0' && (p[sign+1] == 'x' || p[sign+1] == 'X') {
		end := sign + 2
		for end < len(p) && isHex(p[end]) {
			end++
		}
		if end > sign+2 {
			v, err := strconv.ParseUint(string(p[sign+2:end]), 16, 64)
			if err == nil || errors.Is(err, strconv.ErrRange) {
				f := float64(v)
				if err != nil {
					f = math.Inf(1)
				}
				if p[0] == '-' {
					f = -f
				}
				return f, end
			}
		}
	}

	end := 0
	for end < len(p) && strings.IndexByte("0123456789+-.eE", p[end]) >= 0 {
		end++
	}
	for ; end > 0; end-- {
		v, err := strconv.ParseFloat(string(p[:end]), 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return v, end
		}
	}
	return 0, 0
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// ExactNumber converts a stream offset to float64. Offsets whose magnitude
// exceeds 2^53 cannot be represented exactly and are rejected with
// CodeOutOfRange rather than rounded.
func ExactNumber(off int64) (float64, error) {
	if off > maxExact || off < -maxExact {
		return 0, errors.WithContext(
			errors.Newf(errors.CodeOutOfRange, "offset %d exceeds the exact range of a float64", off),
			"offset", off,
		)
	}
	return float64(off), nil
}

// Offset converts a float64 to a stream offset. The value must be integral
// and within ±2^53.
func Offset(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > maxExact || f < -maxExact {
		return 0, errors.WithContext(
			errors.Newf(errors.CodeOutOfRange, "offset %v is outside the exact integer range", f),
			"offset", f,
		)
	}
	if f != math.Trunc(f) {
		return 0, errors.Contract("offset", "offset must be an integer, got %v", f)
	}
	return int64(f), nil
}
