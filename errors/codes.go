package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// Resource errors.

	// CodeNotFound indicates a file, directory, or other resource does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates a resource already exists and cannot be created again.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeNotEmpty indicates a directory still has entries and cannot be removed.
	CodeNotEmpty ErrorCode = "NOT_EMPTY"

	// CodeNotDirectory indicates a directory was expected but something else was found.
	CodeNotDirectory ErrorCode = "NOT_DIRECTORY"

	// CodeIsDirectory indicates a non-directory was expected but a directory was found.
	CodeIsDirectory ErrorCode = "IS_DIRECTORY"

	// CodeCrossDevice indicates an operation cannot span two devices.
	CodeCrossDevice ErrorCode = "CROSS_DEVICE"

	// Permission errors.

	// CodeForbidden indicates the caller lacks permission for the operation.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// Contention errors.

	// CodeWouldBlock indicates a non-blocking request could not be satisfied
	// without waiting (for example a contended file lock).
	CodeWouldBlock ErrorCode = "WOULD_BLOCK"

	// CodeTimeout indicates an operation exceeded its time limit.
	CodeTimeout ErrorCode = "TIMEOUT"

	// Storage errors.

	// CodeIO indicates the underlying read, write, or seek failed.
	CodeIO ErrorCode = "IO_ERROR"

	// CodeNoSpace indicates the device has no space left.
	CodeNoSpace ErrorCode = "NO_SPACE"

	// Caller errors.

	// CodeInvalidInput indicates an argument is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeClosed indicates a handle was used after it was closed.
	CodeClosed ErrorCode = "CLOSED"

	// CodeOutOfRange indicates a value cannot be represented exactly in the
	// requested numeric type.
	CodeOutOfRange ErrorCode = "OUT_OF_RANGE"

	// System errors.

	// CodeExhausted indicates a resource allocation failed because a limit
	// was reached. Handle constructors raise it instead of returning it.
	CodeExhausted ErrorCode = "RESOURCE_EXHAUSTED"

	// CodeInternal indicates an internal system error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeNotImplemented indicates the requested functionality is not implemented.
	CodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// CodeUnavailable indicates the resource is temporarily unavailable.
	CodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
