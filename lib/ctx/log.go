package ctx

import (
	"context"
	"io"
	"log/slog"
	"os"
)

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(
		slog.NewJSONHandler(
			w,
			&slog.HandlerOptions{
				Level:     level,
				AddSource: true,
			},
		),
	)
}

// defaultLogger logs at Info in production and at Debug elsewhere.
func defaultLogger() *slog.Logger {
	level := slog.LevelDebug
	if getEnv() == EnvironmentProduction {
		level = slog.LevelInfo
	}
	return newLogger(os.Stdout, level)
}

func (ctx Context) Logger() *slog.Logger {
	logger, _ := ctx.Value(contextKeyLogger).(*slog.Logger)
	if logger == nil {
		logger = defaultLogger()
	}
	return logger
}

func (ctx Context) WithLogger(logger *slog.Logger) Context {
	return Context{
		context.WithValue(
			ctx.Context,
			contextKeyLogger,
			logger,
		),
	}
}

// WithLogWriter redirects the context logger to w, keeping the context attributes.
func (ctx Context) WithLogWriter(w io.Writer, level slog.Level) Context {
	return ctx.WithLogger(
		newLogger(w, level).
			With(
				loggerKeyEnv, ctx.Environment(),
				loggerKeyAgent, ctx.Agent(),
				loggerKeyWorkflow, ctx.Workflow(),
				loggerKeyScope, ctx.Scope(),
			),
	)
}
