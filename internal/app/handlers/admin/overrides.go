package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pousada/internal/app/commands"
	"pousada/internal/app/dto"
	"pousada/internal/app/handlers/support"
	"pousada/internal/app/history"
	"pousada/internal/app/uow"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

const (
	setOverrideKey      = "admin.override.set"
	clearOverrideKey    = "admin.override.clear"
	replaceOverridesKey = "admin.override.replace"
)

var ErrOverrideNotFound = errors.New("admin: no override on that date")

type SetOverrideCommand struct {
	RoomID   string
	Override dto.Override
}

func (c SetOverrideCommand) Key() string { return setOverrideKey }

func (c SetOverrideCommand) Validate() error { return c.Override.Domain().Validate() }

type ClearOverrideCommand struct {
	RoomID string
	Date   daterange.Date
}

func (c ClearOverrideCommand) Key() string { return clearOverrideKey }

func (c ClearOverrideCommand) Validate() error {
	if c.Date.IsZero() {
		return rooms.ErrOverrideDate
	}
	return nil
}

type ReplaceOverridesCommand struct {
	RoomID    string
	Overrides []dto.Override
}

func (c ReplaceOverridesCommand) Key() string { return replaceOverridesKey }

// OverrideHandlers edit a room's date overrides and record each edit for undo.
type OverrideHandlers struct {
	UoWFactory uow.UoWFactory
	History    *history.Stack
	Now        func() time.Time
}

func (h *OverrideHandlers) Set() commands.Handler[SetOverrideCommand, dto.RoomDetail] {
	return commands.HandlerFunc[SetOverrideCommand, dto.RoomDetail](
		func(ctx context.Context, cmd SetOverrideCommand) (dto.RoomDetail, error) {
			label := fmt.Sprintf("set override %s %s", cmd.RoomID, cmd.Override.Date)
			return h.edit(ctx, cmd.RoomID, label, func(r *rooms.Room) error {
				return r.SetOverride(cmd.Override.Domain())
			})
		})
}

func (h *OverrideHandlers) Clear() commands.Handler[ClearOverrideCommand, dto.RoomDetail] {
	return commands.HandlerFunc[ClearOverrideCommand, dto.RoomDetail](
		func(ctx context.Context, cmd ClearOverrideCommand) (dto.RoomDetail, error) {
			label := fmt.Sprintf("clear override %s %s", cmd.RoomID, cmd.Date)
			return h.edit(ctx, cmd.RoomID, label, func(r *rooms.Room) error {
				if !r.ClearOverride(cmd.Date) {
					return fmt.Errorf("%w: %s", ErrOverrideNotFound, cmd.Date)
				}
				return nil
			})
		})
}

func (h *OverrideHandlers) Replace() commands.Handler[ReplaceOverridesCommand, dto.RoomDetail] {
	return commands.HandlerFunc[ReplaceOverridesCommand, dto.RoomDetail](
		func(ctx context.Context, cmd ReplaceOverridesCommand) (dto.RoomDetail, error) {
			list := make([]rooms.DateOverride, 0, len(cmd.Overrides))
			for _, o := range cmd.Overrides {
				list = append(list, o.Domain())
			}
			label := fmt.Sprintf("replace overrides %s", cmd.RoomID)
			return h.edit(ctx, cmd.RoomID, label, func(r *rooms.Room) error {
				return r.ReplaceOverrides(list)
			})
		})
}

func (h *OverrideHandlers) edit(ctx context.Context, roomID, label string, mutate func(*rooms.Room) error) (dto.RoomDetail, error) {
	unit, ctx, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.RoomDetail{}, err
	}
	defer unit.Finish(ctx)

	room, err := unit.Rooms().ByID(ctx, rooms.RoomID(roomID))
	if err != nil {
		return dto.RoomDetail{}, err
	}
	before := history.RoomSnapshot(room)
	if err := mutate(room); err != nil {
		return dto.RoomDetail{}, err
	}
	if err := unit.Rooms().Save(ctx, room); err != nil {
		return dto.RoomDetail{}, err
	}
	if err := unit.Commit(ctx); err != nil {
		return dto.RoomDetail{}, err
	}
	if h.History != nil {
		h.History.Record(history.Change{Label: label, Before: before, After: history.RoomSnapshot(room), At: now(h.Now)})
	}
	return dto.MapRoomDetail(room), nil
}

func now(clock func() time.Time) time.Time {
	if clock != nil {
		return clock()
	}
	return time.Now().UTC()
}
