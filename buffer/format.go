package buffer

import (
	"strconv"
	"strings"

	"github.com/jmgilman/go/fsio/errors"
)

// Format selects what a single read request returns.
type Format int

const (
	// FormatLine reads one line without its newline.
	FormatLine Format = iota
	// FormatAll reads to the end of the stream.
	FormatAll
	// FormatNumber reads a number.
	FormatNumber
	// FormatBytes reads up to N bytes.
	FormatBytes
)

// String returns the textual form of the format.
func (f Format) String() string {
	switch f {
	case FormatLine:
		return "line"
	case FormatAll:
		return "all"
	case FormatNumber:
		return "number"
	case FormatBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Request is one read request.
type Request struct {
	Format Format
	// N is the byte count for FormatBytes.
	N int
}

// Line, All and Number are the fixed-format requests.
var (
	Line   = Request{Format: FormatLine}
	All    = Request{Format: FormatAll}
	Number = Request{Format: FormatNumber}
)

// Bytes returns a request for up to n bytes.
func Bytes(n int) Request {
	return Request{Format: FormatBytes, N: n}
}

// ParseRequest parses a request string: "*l" or "l" for a line, "*a" or "a"
// for the rest of the stream, "*n" or "n" for a number, or a non-negative
// decimal byte count.
func ParseRequest(s string) (Request, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return Request{}, errors.Contract("format", "byte count must not be negative, got %d", n)
		}
		return Bytes(n), nil
	}

	switch strings.TrimPrefix(s, "*") {
	case "l":
		return Line, nil
	case "a":
		return All, nil
	case "n":
		return Number, nil
	}
	return Request{}, errors.Contract("format", "invalid format %q", s)
}

// Result is the outcome of one read request. Text holds the data for line,
// all and byte requests; Number holds the value for number requests. OK is
// false when the request found nothing to return.
type Result struct {
	Request Request
	Text    string
	Number  float64
	OK      bool
}

// ReadFormats runs the requests in order and stops after the first one that
// returns nothing; that result is included with OK false. With no requests
// a single line is read.
func (b *Buffer) ReadFormats(reqs ...Request) ([]Result, error) {
	if len(reqs) == 0 {
		reqs = []Request{Line}
	}

	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		r := Result{Request: req}
		var err error
		switch req.Format {
		case FormatLine:
			r.Text, r.OK, err = b.ReadLine()
		case FormatAll:
			r.Text, err = b.ReadAll()
			r.OK = err == nil
		case FormatNumber:
			r.Number, r.OK, err = b.ReadNumber()
		case FormatBytes:
			r.Text, r.OK, err = b.ReadN(req.N)
		default:
			err = errors.Contract("format", "invalid format %d", int(req.Format))
		}
		if err != nil {
			return nil, err
		}
		results = append(results, r)
		if !r.OK {
			break
		}
	}
	return results, nil
}
