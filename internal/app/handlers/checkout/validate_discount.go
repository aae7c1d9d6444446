package checkout

import (
	"context"
	"errors"

	"pousada/internal/app/dto"
	"pousada/internal/app/handlers/support"
	"pousada/internal/app/policies"
	"pousada/internal/app/queries"
	"pousada/internal/app/uow"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/shared/daterange"
)

const validateDiscountKey = "discounts.validate"

var ErrCodeRequired = errors.New("checkout: discount code is required")

// ValidateDiscountQuery checks a code against a stay. Subtotal is optional and only sizes the amount.
type ValidateDiscountQuery struct {
	Code     string
	CheckIn  daterange.Date
	CheckOut daterange.Date
	Subtotal int64
}

func (q ValidateDiscountQuery) Key() string { return validateDiscountKey }

func (q ValidateDiscountQuery) Validate() error {
	if promotions.NormalizeCode(q.Code) == "" {
		return ErrCodeRequired
	}
	return nil
}

type ValidateDiscountHandler struct {
	UoWFactory uow.UoWFactory
	Telemetry  policies.Telemetry
}

func (h *ValidateDiscountHandler) Handle(ctx context.Context, q ValidateDiscountQuery) (dto.DiscountOutcome, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.DiscountOutcome{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	codes, err := unit.Discounts().List(ctx)
	if err != nil {
		return dto.DiscountOutcome{}, err
	}
	stay := daterange.DateRange{CheckIn: q.CheckIn, CheckOut: q.CheckOut}
	res := promotions.ApplyDiscount(codes, q.Code, q.Subtotal, stay)
	policies.Or(h.Telemetry).DiscountEvaluated(res.Accepted, string(res.Reason))
	return dto.MapDiscount(res, q.Code), nil
}

var _ queries.Handler[ValidateDiscountQuery, dto.DiscountOutcome] = (*ValidateDiscountHandler)(nil)
