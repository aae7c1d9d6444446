package admin

import (
	"context"
	"errors"
	"time"

	"pousada/internal/app/commands"
	"pousada/internal/app/dto"
	"pousada/internal/app/handlers/support"
	"pousada/internal/app/history"
	"pousada/internal/app/uow"
	"pousada/internal/domain/promotions"
)

const (
	upsertDiscountKey = "admin.discount.upsert"
	deleteDiscountKey = "admin.discount.delete"
)

type UpsertDiscountCommand struct {
	Discount dto.Discount
}

func (c UpsertDiscountCommand) Key() string { return upsertDiscountKey }

func (c UpsertDiscountCommand) Validate() error { return c.Discount.Domain().Validate() }

type DeleteDiscountCommand struct {
	Code string
}

func (c DeleteDiscountCommand) Key() string { return deleteDiscountKey }

func (c DeleteDiscountCommand) Validate() error {
	if promotions.NormalizeCode(c.Code) == "" {
		return promotions.ErrDiscountCode
	}
	return nil
}

type DiscountHandlers struct {
	UoWFactory uow.UoWFactory
	History    *history.Stack
	Now        func() time.Time
}

func (h *DiscountHandlers) Upsert() commands.Handler[UpsertDiscountCommand, dto.Discount] {
	return commands.HandlerFunc[UpsertDiscountCommand, dto.Discount](
		func(ctx context.Context, cmd UpsertDiscountCommand) (dto.Discount, error) {
			unit, ctx, err := support.BeginUnit(ctx, h.UoWFactory)
			if err != nil {
				return dto.Discount{}, err
			}
			defer unit.Finish(ctx)

			next := cmd.Discount.Domain()
			before, err := existing(ctx, unit, next.Code)
			if err != nil {
				return dto.Discount{}, err
			}
			if err := unit.Discounts().Save(ctx, next); err != nil {
				return dto.Discount{}, err
			}
			if err := unit.Commit(ctx); err != nil {
				return dto.Discount{}, err
			}
			h.record("upsert discount "+next.Code, next.Code, before, next)
			return dto.MapDiscountCode(next), nil
		})
}

func (h *DiscountHandlers) Delete() commands.Handler[DeleteDiscountCommand, struct{}] {
	return commands.HandlerFunc[DeleteDiscountCommand, struct{}](
		func(ctx context.Context, cmd DeleteDiscountCommand) (struct{}, error) {
			unit, ctx, err := support.BeginUnit(ctx, h.UoWFactory)
			if err != nil {
				return struct{}{}, err
			}
			defer unit.Finish(ctx)

			code := promotions.NormalizeCode(cmd.Code)
			before, err := unit.Discounts().ByCode(ctx, code)
			if err != nil {
				return struct{}{}, err
			}
			if err := unit.Discounts().Delete(ctx, code); err != nil {
				return struct{}{}, err
			}
			if err := unit.Commit(ctx); err != nil {
				return struct{}{}, err
			}
			h.record("delete discount "+code, code, before, nil)
			return struct{}{}, nil
		})
}

func (h *DiscountHandlers) record(label, code string, before, after *promotions.DiscountCode) {
	if h.History == nil {
		return
	}
	h.History.Record(history.Change{
		Label:  label,
		Before: history.DiscountSnapshot(code, before),
		After:  history.DiscountSnapshot(code, after),
		At:     now(h.Now),
	})
}

func existing(ctx context.Context, unit uow.UnitOfWork, code string) (*promotions.DiscountCode, error) {
	dc, err := unit.Discounts().ByCode(ctx, code)
	if errors.Is(err, promotions.ErrDiscountNotFound) {
		return nil, nil
	}
	return dc, err
}
