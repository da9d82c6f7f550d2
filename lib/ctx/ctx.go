package ctx

import (
	"context"
)

type Context struct {
	context.Context
}

type contextKey int

const (
	contextKeyAgent contextKey = iota
	contextKeyEnv
	contextKeyRequest
	contextKeyWorkflow
	contextKeyScope
	contextKeyLogger

	loggerKeyEnv      = "env"
	loggerKeyAgent    = "agent"
	loggerKeyWorkflow = "workflow"
	loggerKeyScope    = "scope"
)

// Agent names the application issuing calls, e.g. "hr-portal".
type Agent string

func New(agent Agent) (ctx Context) {
	return WrapContext(context.Background(), agent)
}

func WrapContext(parent context.Context, agent Agent) (ctx Context) {

	env := getEnv()                        // determine the environment
	workflow := NewWorkflow()              // generate a new workflow ID
	scope := string(agent)                 // initial scope is the agent name

	ctx.Context = context.WithValue(parent, contextKeyEnv, env)
	ctx.Context = context.WithValue(ctx.Context, contextKeyAgent, agent)
	ctx.Context = context.WithValue(ctx.Context, contextKeyWorkflow, workflow)
	ctx.Context = context.WithValue(ctx.Context, contextKeyScope, scope)

	ctx.Context = context.WithValue(ctx.Context, contextKeyLogger,
		defaultLogger().
			With(
				loggerKeyEnv, env,
				loggerKeyAgent, agent,
				loggerKeyWorkflow, workflow,
				loggerKeyScope, scope,
			),
	)

	return
}

func (ctx Context) Agent() Agent {
	obj := ctx.Value(contextKeyAgent)
	if obj == nil {
		return ""
	}
	return obj.(Agent)
}
