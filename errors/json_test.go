package errors

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToJSON(t *testing.T) {
	err := New(CodeNotFound, "open /missing")
	resp := ToJSON(err)

	require.NotNil(t, resp)
	require.Equal(t, "NOT_FOUND", resp.Code)
	require.Equal(t, "open /missing", resp.Message)
	require.Equal(t, "PERMANENT", resp.Classification)
	require.Nil(t, resp.Context)
}

func TestToJSON_LiftsOSContext(t *testing.T) {
	err := FromOS("rmdir", "/tmp/t", &fs.PathError{Op: "rmdir", Path: "/tmp/t", Err: syscall.ENOTEMPTY})
	err = WithContext(err, "root", "/tmp")

	resp := ToJSON(err)

	require.Equal(t, "NOT_EMPTY", resp.Code)
	require.Equal(t, "rmdir", resp.Op)
	require.Equal(t, "/tmp/t", resp.Path)
	require.Equal(t, "ENOTEMPTY", resp.Errno)
	require.Equal(t, map[string]interface{}{"root": "/tmp"}, resp.Context)
}

func TestToJSON_StandardError(t *testing.T) {
	resp := ToJSON(stderrors.New("something went wrong"))

	require.Equal(t, "UNKNOWN", resp.Code)
	require.Equal(t, "something went wrong", resp.Message)
	require.Equal(t, "PERMANENT", resp.Classification)
}

func TestToJSON_NilError(t *testing.T) {
	require.Nil(t, ToJSON(nil))
}

func TestToJSON_ExcludesCause(t *testing.T) {
	err := Wrap(stderrors.New("secret detail"), CodeIO, "read failed")

	data, jerr := json.Marshal(ToJSON(err))
	require.NoError(t, jerr)
	require.NotContains(t, string(data), "secret detail")
}

func TestMarshalJSON(t *testing.T) {
	err := WithContext(New(CodeWouldBlock, "lock held"), "kind", "exclusive")

	data, jerr := json.Marshal(err)
	require.NoError(t, jerr)
	require.JSONEq(t, `{"code":"WOULD_BLOCK","message":"lock held","classification":"RETRYABLE","context":{"kind":"exclusive"}}`, string(data))
}
