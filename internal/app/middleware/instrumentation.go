package middleware

import (
	"context"
	"time"

	"pousada/internal/app/commands"
	"pousada/internal/app/queries"
)

// Observer receives the outcome of every message passing through the buses.
type Observer interface {
	Observe(kind, key string, elapsed time.Duration, err error)
}

func Instrumentation(o Observer) CommandMiddleware {
	if o == nil {
		panic("middleware: observer required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			started := time.Now()
			res, err := nextFn(ctx, cmd)
			o.Observe("command", cmd.Key(), time.Since(started), err)
			return res, err
		})
	}
}

func QueryInstrumentation(o Observer) QueryMiddleware {
	if o == nil {
		panic("middleware: observer required")
	}
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			started := time.Now()
			res, err := nextFn(ctx, q)
			o.Observe("query", q.Key(), time.Since(started), err)
			return res, err
		})
	}
}
