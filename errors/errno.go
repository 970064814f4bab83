package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrWouldBlock is reported when a non-blocking lock request finds the lock
// held by someone else.
var ErrWouldBlock = stderrors.New("operation would block")

// FromOS translates an error returned by a filesystem provider into a
// PlatformError. The operation name and path are attached as context along
// with the symbolic errno name when one is available.
//
// An error that is already a PlatformError keeps its code and only gains the
// op and path context fields. Returns nil if err is nil.
//
// Example:
//
//	f, err := sys.OpenFile(path, os.O_RDONLY, 0)
//	if err != nil {
//	    return errors.FromOS("open", path, err)
//	}
func FromOS(op, path string, err error) PlatformError {
	if err == nil {
		return nil
	}

	ctx := map[string]interface{}{"op": op, "path": path}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return WithContextMap(platformErr, ctx)
	}

	cause := err
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	switch {
	case stderrors.As(err, &pathErr):
		cause = pathErr.Err
	case stderrors.As(err, &linkErr):
		cause = linkErr.Err
	}

	if sym := errnoSymbol(cause); sym != "" {
		ctx["errno"] = sym
	}

	return WrapWithContext(cause, codeOf(cause), fmt.Sprintf("%s %s", op, path), ctx)
}

// Symbol returns the symbolic errno name carried by err (for example
// "ENOENT"), or an empty string when none is known.
func Symbol(err error) string {
	if err == nil {
		return ""
	}
	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		if sym, ok := platformErr.Context()["errno"].(string); ok {
			return sym
		}
	}
	return errnoSymbol(err)
}

// codeOf picks the error code for a provider error. Errno values are checked
// before the io/fs sentinels since ENOTEMPTY also matches fs.ErrExist.
func codeOf(err error) ErrorCode {
	if code, ok := errnoCode(err); ok {
		return code
	}

	switch {
	case stderrors.Is(err, ErrWouldBlock):
		return CodeWouldBlock
	case stderrors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	case stderrors.Is(err, fs.ErrExist):
		return CodeAlreadyExists
	case stderrors.Is(err, fs.ErrPermission):
		return CodeForbidden
	case stderrors.Is(err, fs.ErrClosed):
		return CodeClosed
	case stderrors.Is(err, os.ErrDeadlineExceeded):
		return CodeTimeout
	case stderrors.Is(err, stderrors.ErrUnsupported):
		return CodeNotImplemented
	case stderrors.Is(err, fs.ErrInvalid):
		return CodeInvalidInput
	}
	return CodeIO
}
