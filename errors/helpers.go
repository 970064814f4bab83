package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target. It is the
// standard library errors.Is, re-exported so callers importing this package
// as "errors" keep access to it.
//
//	if errors.Is(err, fs.ErrNotExist) {
//	    // missing file
//	}
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target. It is the
// standard library errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode returns the code of the outermost PlatformError in err's chain,
// or CodeUnknown when there is none.
//
//	if errors.GetCode(err) == errors.CodeNotEmpty {
//	    // directory still has entries
//	}
func GetCode(err error) ErrorCode {
	var platformErr PlatformError
	if err != nil && stderrors.As(err, &platformErr) {
		return platformErr.Code()
	}
	return CodeUnknown
}

// HasCode reports whether err carries one of codes.
func HasCode(err error, codes ...ErrorCode) bool {
	if err == nil {
		return false
	}
	got := GetCode(err)
	for _, c := range codes {
		if got == c {
			return true
		}
	}
	return false
}

// IsExhausted reports whether err is a pool allocator exhaustion failure.
// Handle opens panic with such an error; RemoveAll returns it.
func IsExhausted(err error) bool {
	return HasCode(err, CodeExhausted)
}

// GetClassification returns the classification of the outermost
// PlatformError in err's chain. Anything else is permanent, so unknown
// failures are never retried.
func GetClassification(err error) ErrorClassification {
	var platformErr PlatformError
	if err != nil && stderrors.As(err, &platformErr) {
		return platformErr.Classification()
	}
	return ClassificationPermanent
}

// IsRetryable reports whether err is classified as retryable. A contended
// non-blocking lock is the typical case:
//
//	if err := f.Lock(core.LockExclusive, false); errors.IsRetryable(err) {
//	    // someone else holds the lock; try again later
//	}
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
