package ctx

import (
	"context"
	"net/http"
)

type Workflow string

const (
	HttpHeaderWorkflow = "Workflow"
	HttpHeaderAgent    = "Agent"
)

// WithRequest attaches an incoming request. The caller's workflow is
// continued when the request carries one, otherwise a new one is started.
func (ctx Context) WithRequest(r *http.Request) (res Context) {

	res = Context{
		context.WithValue(
			ctx.Context,
			contextKeyRequest,
			r,
		),
	}

	if r == nil {
		return
	}

	if wf, ok := ParseWorkflow(r.Header.Get(HttpHeaderWorkflow)); ok {
		res = res.WithWorkflow(wf)
	} else {
		res = res.WithNewWorkflow()
	}

	res = res.WithScope(r.Method + " " + r.URL.Path)

	return
}

func (ctx Context) Request() (r *http.Request) {
	obj := ctx.Value(contextKeyRequest)
	if obj == nil {
		return
	}
	return obj.(*http.Request)
}

// SetHttpHeaders propagates the workflow and agent of ctx onto an outgoing request.
func (ctx Context) SetHttpHeaders(r *http.Request) {
	if wf := ctx.Workflow(); wf != "" {
		r.Header.Set(HttpHeaderWorkflow, string(wf))
	}
	if agent := ctx.Agent(); agent != "" {
		r.Header.Set(HttpHeaderAgent, string(agent))
	}
}
