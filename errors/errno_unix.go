//go:build unix

package errors

import (
	stderrors "errors"

	"golang.org/x/sys/unix"
)

var errnoCodes = map[unix.Errno]ErrorCode{
	unix.ENOENT:       CodeNotFound,
	unix.EEXIST:       CodeAlreadyExists,
	unix.ENOTEMPTY:    CodeNotEmpty,
	unix.ENOTDIR:      CodeNotDirectory,
	unix.EISDIR:       CodeIsDirectory,
	unix.EXDEV:        CodeCrossDevice,
	unix.EACCES:       CodeForbidden,
	unix.EPERM:        CodeForbidden,
	unix.EROFS:        CodeForbidden,
	unix.EAGAIN:       CodeWouldBlock,
	unix.ETIMEDOUT:    CodeTimeout,
	unix.EBUSY:        CodeUnavailable,
	unix.ENOSPC:       CodeNoSpace,
	unix.EDQUOT:       CodeNoSpace,
	unix.EINVAL:       CodeInvalidInput,
	unix.ENAMETOOLONG: CodeInvalidInput,
	unix.EBADF:        CodeClosed,
	unix.EMFILE:       CodeExhausted,
	unix.ENFILE:       CodeExhausted,
	unix.ENOSYS:       CodeNotImplemented,
	unix.EOPNOTSUPP:   CodeNotImplemented,
}

func errnoCode(err error) (ErrorCode, bool) {
	var errno unix.Errno
	if !stderrors.As(err, &errno) {
		return "", false
	}
	code, ok := errnoCodes[errno]
	if !ok {
		return CodeIO, true
	}
	return code, true
}

func errnoSymbol(err error) string {
	var errno unix.Errno
	if !stderrors.As(err, &errno) {
		return ""
	}
	return unix.ErrnoName(errno)
}
