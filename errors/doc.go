// Package errors provides the structured error model shared by every fsio
// package.
//
// It extends Go's standard error handling with error codes, classification
// (retryable vs permanent), context metadata, and JSON serialization. It stays
// compatible with the standard library errors package (errors.Is, errors.As,
// errors.Unwrap).
//
// # Failure Kinds
//
// fsio distinguishes four kinds of outcome:
//
//   - Operation failures (missing file, permission denied, full disk, a
//     contended non-blocking lock) are returned as PlatformError values.
//   - Caller contract violations (a closed handle, an unknown mode string or
//     attribute key) are also returned, but wrap ErrContract so callers can
//     tell programming mistakes apart from filesystem failures.
//   - Pool exhaustion when opening a handle panics with a CodeExhausted error.
//   - End of stream is never an error; read operations report it through a
//     boolean result.
//
// # Quick Start
//
// Translating provider errors:
//
//	f, err := sys.OpenFile(path, os.O_RDONLY, 0)
//	if err != nil {
//	    return errors.FromOS("open", path, err)
//	}
//
// The resulting error carries the op, path and errno name as context:
//
//	errors.GetCode(err)  // CodeNotFound
//	errors.Symbol(err)   // "ENOENT"
//	errors.Is(err, fs.ErrNotExist) // true
//
// Wrapping errors:
//
//	if err := buf.Flush(); err != nil {
//	    return errors.Wrap(err, errors.CodeIO, "failed to flush file")
//	}
//
// Retry logic:
//
//	if errors.IsRetryable(err) {
//	    // only WOULD_BLOCK, TIMEOUT and SERVICE_UNAVAILABLE land here
//	}
//
// # Error Codes
//
//   - Resource errors: CodeNotFound, CodeAlreadyExists, CodeNotEmpty,
//     CodeNotDirectory, CodeIsDirectory, CodeCrossDevice
//   - Permission errors: CodeForbidden
//   - Contention errors: CodeWouldBlock, CodeTimeout
//   - Storage errors: CodeIO, CodeNoSpace
//   - Caller errors: CodeInvalidInput, CodeClosed, CodeOutOfRange
//   - System errors: CodeExhausted, CodeInternal, CodeNotImplemented, CodeUnavailable
//   - Generic: CodeUnknown
//
// Each error code has a default classification that can be overridden with
// WithClassification. Classification is preserved when wrapping.
//
// # Context Metadata
//
// Context is included in JSON serialization but not in the error text:
//
//	err = errors.WithContextMap(err, map[string]interface{}{
//	    "op":   "rmdir",
//	    "path": "/tmp/t/a",
//	})
package errors
