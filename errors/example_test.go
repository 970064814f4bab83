package errors_test

import (
	"fmt"
	"io/fs"

	"github.com/jmgilman/go/fsio/errors"
)

func ExampleNew() {
	err := errors.New(errors.CodeNotFound, "file not found")
	fmt.Println(err.Error())
	// Output: [NOT_FOUND] file not found
}

func ExampleWrap() {
	err := errors.Wrap(fmt.Errorf("short write"), errors.CodeIO, "failed to flush file")
	fmt.Println(err.Error())
	// Output: [IO_ERROR] failed to flush file: short write
}

func ExampleFromOS() {
	err := errors.FromOS("open", "/missing", &fs.PathError{Op: "open", Path: "/missing", Err: fs.ErrNotExist})
	fmt.Println(errors.GetCode(err))
	fmt.Println(errors.Is(err, fs.ErrNotExist))
	// Output:
	// NOT_FOUND
	// true
}

func ExampleContract() {
	err := errors.Contract("whence", "invalid whence %q", "middle")
	fmt.Println(err.Error())
	fmt.Println(errors.IsContract(err))
	// Output:
	// [INVALID_INPUT] invalid whence "middle"
	// true
}

func ExampleIsRetryable() {
	fmt.Println(errors.IsRetryable(errors.New(errors.CodeWouldBlock, "lock held")))
	fmt.Println(errors.IsRetryable(errors.New(errors.CodeNotFound, "open /x")))
	// Output:
	// true
	// false
}
