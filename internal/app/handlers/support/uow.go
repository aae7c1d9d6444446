package support

import (
	"context"

	"pousada/internal/app/uow"
)

// BeginReadOnlyUnit reuses the unit already in ctx or opens a read-only one. cleanup is nil when the unit was reused.
func BeginReadOnlyUnit(ctx context.Context, factory uow.UoWFactory) (uow.UnitOfWork, context.Context, func(), error) {
	return begin(ctx, factory, uow.TxOptions{ReadOnly: true})
}

// Unit is a unit of work that may have been opened by the handler itself.
type Unit struct {
	uow.UnitOfWork
	managed   bool
	committed bool
	after     []func(context.Context)
}

// BeginUnit reuses the unit from ctx (the transaction middleware) or opens one the caller must Finish.
func BeginUnit(ctx context.Context, factory uow.UoWFactory) (*Unit, context.Context, error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return &Unit{UnitOfWork: unit}, ctx, nil
	}
	unit, execCtx, _, err := begin(ctx, factory, uow.TxOptions{})
	if err != nil {
		return nil, ctx, err
	}
	return &Unit{UnitOfWork: unit, managed: true}, execCtx, nil
}

// Commit commits only units opened by BeginUnit.
func (u *Unit) Commit(ctx context.Context) error {
	if !u.managed {
		return nil
	}
	if err := u.UnitOfWork.Commit(ctx); err != nil {
		return err
	}
	u.committed = true
	for _, fn := range u.after {
		fn(context.WithoutCancel(ctx))
	}
	u.after = nil
	return nil
}

// AfterCommit runs fn once the unit's changes are durable: after Commit for units opened here,
// after the transaction middleware commits for reused ones.
func (u *Unit) AfterCommit(ctx context.Context, fn func(context.Context)) {
	if u.managed {
		u.after = append(u.after, fn)
		return
	}
	if !uow.OnCommit(ctx, fn) {
		fn(ctx)
	}
}

// Finish rolls back a managed unit that was never committed.
func (u *Unit) Finish(ctx context.Context) {
	if u.managed && !u.committed {
		_ = u.UnitOfWork.Rollback(ctx)
	}
}

func begin(ctx context.Context, factory uow.UoWFactory, opts uow.TxOptions) (uow.UnitOfWork, context.Context, func(), error) {
	unit, ok := uow.FromContext(ctx)
	if ok {
		return unit, ctx, nil, nil
	}
	if factory == nil {
		return nil, ctx, nil, uow.ErrUnitOfWorkMissing
	}
	newUnit, err := factory.Begin(ctx, opts)
	if err != nil {
		return nil, ctx, nil, err
	}
	execCtx := uow.ContextWithUnitOfWork(uow.InjectContext(ctx, newUnit), newUnit)
	cleanup := func() {
		_ = newUnit.Rollback(execCtx)
	}
	return newUnit, execCtx, cleanup, nil
}
