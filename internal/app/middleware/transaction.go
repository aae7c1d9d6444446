package middleware

import (
	"context"

	"pousada/internal/app/commands"
	"pousada/internal/app/queries"
	"pousada/internal/app/uow"
)

type TxOptionsProvider func(cmd commands.Command) uow.TxOptions

// ReadOnlyCommands marks commands that expose ReadOnly() true as read-only transactions.
func ReadOnlyCommands(cmd commands.Command) uow.TxOptions {
	if ro, ok := cmd.(interface{ ReadOnly() bool }); ok {
		return uow.TxOptions{ReadOnly: ro.ReadOnly()}
	}
	return uow.TxOptions{}
}

// Transaction runs the handler inside a unit of work and commits only when it succeeds.
func Transaction(factory uow.UoWFactory, optsProvider TxOptionsProvider) CommandMiddleware {
	if factory == nil {
		panic("middleware: uow factory required")
	}
	if optsProvider == nil {
		optsProvider = ReadOnlyCommands
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			unit, err := factory.Begin(ctx, optsProvider(cmd))
			if err != nil {
				return nil, err
			}
			execCtx := uow.ContextWithUnitOfWork(uow.InjectContext(ctx, unit), unit)
			execCtx, runHooks := uow.WithCommitHooks(execCtx)
			committed := false
			defer func() {
				if !committed {
					_ = unit.Rollback(execCtx)
				}
			}()

			res, err := nextFn(execCtx, cmd)
			if err != nil {
				return nil, err
			}
			if err := unit.Commit(execCtx); err != nil {
				return nil, err
			}
			committed = true
			runHooks(context.WithoutCancel(ctx))
			return res, nil
		})
	}
}

// QuerySnapshot gives every query one read-only unit so all of its reads see the same catalog state.
func QuerySnapshot(factory uow.UoWFactory) QueryMiddleware {
	if factory == nil {
		panic("middleware: uow factory required")
	}
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			if _, ok := uow.FromContext(ctx); ok {
				return nextFn(ctx, q)
			}
			unit, err := factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
			if err != nil {
				return nil, err
			}
			execCtx := uow.ContextWithUnitOfWork(uow.InjectContext(ctx, unit), unit)
			defer func() { _ = unit.Rollback(execCtx) }()
			return nextFn(execCtx, q)
		})
	}
}
