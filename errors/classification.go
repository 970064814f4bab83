package errors

// ErrorClassification indicates whether an error should trigger a retry.
// Retries are always a caller concern; nothing in fsio retries on its own.
type ErrorClassification string

const (
	// ClassificationRetryable indicates temporary failures that may succeed on retry.
	// Examples: contended non-blocking locks, timeouts.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on retry.
	// Examples: missing files, permission denials, invalid arguments.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// defaultClassifications maps error codes to their default classification.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	// Retryable errors (temporary failures)
	CodeWouldBlock:  ClassificationRetryable,
	CodeTimeout:     ClassificationRetryable,
	CodeUnavailable: ClassificationRetryable,

	// Permanent errors (will not succeed on retry)
	CodeNotFound:       ClassificationPermanent,
	CodeAlreadyExists:  ClassificationPermanent,
	CodeNotEmpty:       ClassificationPermanent,
	CodeNotDirectory:   ClassificationPermanent,
	CodeIsDirectory:    ClassificationPermanent,
	CodeCrossDevice:    ClassificationPermanent,
	CodeForbidden:      ClassificationPermanent,
	CodeIO:             ClassificationPermanent,
	CodeNoSpace:        ClassificationPermanent,
	CodeInvalidInput:   ClassificationPermanent,
	CodeClosed:         ClassificationPermanent,
	CodeOutOfRange:     ClassificationPermanent,
	CodeNotImplemented: ClassificationPermanent,

	// System errors
	CodeExhausted: ClassificationPermanent,
	CodeInternal:  ClassificationPermanent,
	CodeUnknown:   ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error code.
// Returns ClassificationPermanent if the code is not in the map (safe default).
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
