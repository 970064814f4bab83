package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil", err: nil, want: CodeUnknown},
		{name: "standard error", err: stderrors.New("x"), want: CodeUnknown},
		{name: "platform error", err: New(CodeNotDirectory, "x"), want: CodeNotDirectory},
		{name: "wrapped by fmt", err: fmt.Errorf("ctx: %w", New(CodeNoSpace, "x")), want: CodeNoSpace},
		{name: "outermost wins", err: Wrap(New(CodeNotFound, "x"), CodeIO, "y"), want: CodeIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestGetClassification(t *testing.T) {
	assert.Equal(t, ClassificationPermanent, GetClassification(nil))
	assert.Equal(t, ClassificationPermanent, GetClassification(stderrors.New("x")))
	assert.Equal(t, ClassificationRetryable, GetClassification(New(CodeWouldBlock, "x")))
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(New(CodeTimeout, "x")))
	assert.False(t, IsRetryable(New(CodeForbidden, "x")))
}

func TestIsAs(t *testing.T) {
	err := Wrap(fs.ErrNotExist, CodeNotFound, "open /missing")

	assert.True(t, Is(err, fs.ErrNotExist))

	var platformErr PlatformError
	assert.True(t, As(err, &platformErr))
	assert.Equal(t, CodeNotFound, platformErr.Code())
}

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "open /missing")

	assert.True(t, HasCode(err, CodeNotFound))
	assert.True(t, HasCode(err, CodeForbidden, CodeNotFound))
	assert.False(t, HasCode(err, CodeForbidden))
	assert.False(t, HasCode(nil, CodeUnknown))
	assert.False(t, HasCode(err))
}

func TestIsExhausted(t *testing.T) {
	assert.True(t, IsExhausted(Newf(CodeExhausted, "pool limit of %d reached", 4)))
	assert.False(t, IsExhausted(New(CodeIO, "x")))
}
