package ctx

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

func (ctx Context) WithScope(scope string, args ...any) Context {

	scope = ctx.Scope() + " → " + scope

	if len(args) > 0 {
		scope += " {" + formatArgs(args...) + "}"
	}

	return Context{
		context.WithValue(
			ctx.Context,
			contextKeyScope,
			scope,
		),
	}
}

func (ctx Context) Scope() string {
	scope, _ := ctx.Value(contextKeyScope).(string)
	return scope
}

func (ctx Context) wrapErr(err error) error {

	if err == nil {
		return nil
	}

	prefix := "✘ " + ctx.Scope()

	if strings.HasPrefix(err.Error(), prefix) {
		// already wrapped by a nested scope of the same call
		return err
	}

	return fmt.Errorf("%s: %w", prefix, err)
}

// Exit wraps a non-nil *errPtr with the current scope, unless it matches
// one of except.
func (ctx Context) Exit(errPtr *error, except ...error) {
	if errPtr == nil || *errPtr == nil {
		return
	}
	for _, ex := range except {
		if errors.Is(*errPtr, ex) {
			return
		}
	}
	*errPtr = ctx.wrapErr(*errPtr)
	ctx.Logger().Debug("exiting scope", "error", (*errPtr).Error())
}

// formatArgs renders key/value pairs as `k=v`; a trailing key or a
// non-string key is printed as `!BAD_KEY!=value`.
func formatArgs(args ...any) string {

	const badKey = "!BAD_KEY!"

	pairs := make([]string, 0, len(args)/2+1)

	for len(args) > 0 {
		key, ok := args[0].(string)
		if !ok || len(args) == 1 {
			pairs = append(pairs, badKey+"="+formatValue(args[0]))
			args = args[1:]
			continue
		}
		pairs = append(pairs, escapeKey(key)+"="+formatValue(args[1]))
		args = args[2:]
	}

	return strings.Join(pairs, " ")
}

func escapeKey(key string) string {
	if key == "" || strings.ContainsAny(key, " \t\r\n=") {
		return strconv.Quote(key)
	}
	return key
}

func formatValue(v any) string {
	if v == nil {
		return "null"
	}
	s := fmt.Sprint(v)
	if s != "" && !strings.ContainsAny(s, " \t\r\n\"=") {
		return s
	}
	return strconv.Quote(s)
}
