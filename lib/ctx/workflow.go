package ctx

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// maxWorkflowLength caps workflow ids accepted from remote callers.
const maxWorkflowLength = 128

func NewWorkflow() Workflow {
	return Workflow(uuid.NewString())
}

// ParseWorkflow accepts a workflow id received from a remote party. Empty,
// oversized or non printable values are rejected.
func ParseWorkflow(s string) (wf Workflow, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxWorkflowLength {
		return
	}
	for _, r := range s {
		if r < 0x21 || r > 0x7e {
			return
		}
	}
	return Workflow(s), true
}

func (ctx Context) WithNewWorkflow() Context {
	return ctx.WithWorkflow(NewWorkflow())
}

// WithWorkflow replaces the workflow of ctx and of its logger.
func (ctx Context) WithWorkflow(workflow Workflow) Context {
	return Context{
		context.WithValue(
			ctx.Context,
			contextKeyWorkflow,
			workflow,
		),
	}.WithLogger(
		ctx.Logger().With(loggerKeyWorkflow, workflow),
	)
}

func (ctx Context) Workflow() Workflow {
	wf, _ := ctx.Value(contextKeyWorkflow).(Workflow)
	return wf
}
