//go:build !unix

package errors

func errnoCode(error) (ErrorCode, bool) {
	return "", false
}

func errnoSymbol(error) string {
	return ""
}
