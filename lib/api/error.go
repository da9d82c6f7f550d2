package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	convCtx "github.com/sofmon/backoffice/lib/ctx"
)

type ErrorCode string

const (
	ErrorCodeInternalError ErrorCode = "internal_error"
	ErrorCodeNotFound      ErrorCode = "not_found"
	ErrorCodeBadRequest    ErrorCode = "bad_request"
	ErrorCodeRequestFailed ErrorCode = "request_failed"
)

func ErrorHasCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

func newError(ctx convCtx.Context, status int, code ErrorCode, message string, inner error) (err *Error) {

	err = &Error{
		Status:  status,
		Code:    code,
		Message: message,
		Scope:   ctx.Scope(),
	}

	r := ctx.Request()
	if r != nil {
		err.Method = r.Method
		err.URL = r.URL.Path
	}
	if inner != nil {
		if apiErr, ok := inner.(*Error); ok {
			err.Inner = apiErr
		} else {
			err.Message += " → " + inner.Error()
		}
	}

	return
}

type Error struct {
	URL     string    `json:"url,omitempty"`
	Method  string    `json:"method,omitempty"`
	Status  int       `json:"status,omitempty"`
	Code    ErrorCode `json:"code,omitempty"`
	Scope   string    `json:"scope,omitempty"`
	Message string    `json:"message,omitempty"`
	Inner   *Error    `json:"inner,omitempty"`
}

func (e Error) Error() string {
	sb := strings.Builder{}
	sb.WriteString("✘")
	if e.Method != "" || e.URL != "" {
		sb.WriteRune(' ')
		sb.WriteString(strings.TrimSpace(e.Method + " " + e.URL))
		sb.WriteString(" →")
	}
	if e.Status != 0 {
		sb.WriteRune(' ')
		sb.WriteString(strconv.Itoa(e.Status))
	}
	sb.WriteRune(' ')
	sb.WriteString(string(e.Code))
	if e.Message != "" {
		sb.WriteString(" → ")
		sb.WriteString(e.Message)
	}
	if e.Inner != nil {
		sb.WriteString(" → ")
		sb.WriteString(e.Inner.Error())
	}
	return sb.String()
}

// Is matches any *Error carrying the same code, so code-only values can be
// used as sentinels with errors.Is.
func (e Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return t.Code == e.Code
}

func ServeError(ctx convCtx.Context, w http.ResponseWriter, status int, code ErrorCode, message string, inner error) {
	serveError(w, newError(ctx, status, code, message, inner))
}

func serveError(w http.ResponseWriter, err *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status)
	json.NewEncoder(w).Encode(err)
}

// NewStatusError reports that res carried a status other than the one the
// call accepts. A well formed remote *Error in the body becomes Inner.
func NewStatusError(ctx convCtx.Context, code ErrorCode, req *http.Request, res *http.Response) error {

	var (
		inner *Error
	)
	inner = &Error{} // reserve memory for inner error
	if e := json.NewDecoder(io.LimitReader(res.Body, maxBodySize)).Decode(inner); e != nil {
		inner = nil // no inner error
	}

	if inner != nil &&
		(inner.Code == "" || inner.Status == 0) { // inner is not complete
		inner = nil
	}

	return &Error{
		URL:     req.URL.Path,
		Method:  req.Method,
		Status:  res.StatusCode,
		Code:    code,
		Scope:   ctx.Scope(),
		Message: "unexpected status code: " + res.Status,
		Inner:   inner,
	}
}
