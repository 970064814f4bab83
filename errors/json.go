package errors

import (
	"encoding/json"
)

// ErrorResponse is the JSON form of an error, as printed by the fsio
// command with --json-errors. The op, path and errno context entries
// attached by FromOS are lifted into their own fields; the wrapped cause is
// left out.
type ErrorResponse struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Classification string                 `json:"classification"`
	Op             string                 `json:"op,omitempty"`
	Path           string                 `json:"path,omitempty"`
	Errno          string                 `json:"errno,omitempty"`
	Context        map[string]interface{} `json:"context,omitempty"`
}

// ToJSON converts err to an ErrorResponse. Returns nil if err is nil.
// An error that is not a PlatformError is reported as CodeUnknown with its
// Error text as the message.
//
// Example:
//
//	if err := dir.RemoveAll(sys, root); err != nil {
//	    _ = json.NewEncoder(os.Stderr).Encode(errors.ToJSON(err))
//	}
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	resp := &ErrorResponse{
		Code:           string(GetCode(err)),
		Message:        err.Error(),
		Classification: string(GetClassification(err)),
	}

	var platformErr PlatformError
	if !As(err, &platformErr) {
		return resp
	}
	resp.Message = platformErr.Message()

	ctx := platformErr.Context()
	resp.Op = lift(ctx, "op")
	resp.Path = lift(ctx, "path")
	resp.Errno = lift(ctx, "errno")
	if len(ctx) > 0 {
		resp.Context = ctx
	}
	return resp
}

// lift removes key from ctx and returns it when it holds a string.
func lift(ctx map[string]interface{}, key string) string {
	s, ok := ctx[key].(string)
	if ok {
		delete(ctx, key)
	}
	return s
}

// MarshalJSON implements json.Marshaler with the ErrorResponse layout.
func (e *platformError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(ToJSON(e))
	if err != nil {
		return nil, Wrap(err, CodeInternal, "failed to marshal error response")
	}
	return data, nil
}
