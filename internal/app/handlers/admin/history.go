package admin

import (
	"context"

	"pousada/internal/app/commands"
	"pousada/internal/app/dto"
	"pousada/internal/app/handlers/support"
	"pousada/internal/app/history"
	"pousada/internal/app/uow"
)

const (
	undoKey = "admin.undo"
	redoKey = "admin.redo"
)

type UndoCommand struct{}

func (UndoCommand) Key() string { return undoKey }

type RedoCommand struct{}

func (RedoCommand) Key() string { return redoKey }

type HistoryHandlers struct {
	UoWFactory uow.UoWFactory
	History    *history.Stack
}

func (h *HistoryHandlers) Undo() commands.Handler[UndoCommand, dto.HistoryState] {
	return commands.HandlerFunc[UndoCommand, dto.HistoryState](
		func(ctx context.Context, _ UndoCommand) (dto.HistoryState, error) {
			return h.step(ctx, h.History.Undo, func(c history.Change) history.Snapshot { return c.Before })
		})
}

func (h *HistoryHandlers) Redo() commands.Handler[RedoCommand, dto.HistoryState] {
	return commands.HandlerFunc[RedoCommand, dto.HistoryState](
		func(ctx context.Context, _ RedoCommand) (dto.HistoryState, error) {
			return h.step(ctx, h.History.Redo, func(c history.Change) history.Snapshot { return c.After })
		})
}

func (h *HistoryHandlers) step(
	ctx context.Context,
	move func(func(history.Change) error) (history.Change, error),
	side func(history.Change) history.Snapshot,
) (dto.HistoryState, error) {
	unit, ctx, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.HistoryState{}, err
	}
	defer unit.Finish(ctx)

	change, err := move(func(c history.Change) error {
		if err := history.Restore(ctx, unit, side(c)); err != nil {
			return err
		}
		return unit.Commit(ctx)
	})
	if err != nil {
		return dto.HistoryState{}, err
	}
	return dto.HistoryState{Label: change.Label, CanUndo: h.History.CanUndo(), CanRedo: h.History.CanRedo()}, nil
}
