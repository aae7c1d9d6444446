package checkout

import (
	"context"

	"pousada/internal/app/dto"
	"pousada/internal/app/handlers/support"
	"pousada/internal/app/policies"
	"pousada/internal/app/queries"
	"pousada/internal/app/uow"
	domaincheckout "pousada/internal/domain/checkout"
)

const quoteKey = "checkout.quote"

type QuoteQuery struct {
	Cart dto.CartRequest
}

func (q QuoteQuery) Key() string { return quoteKey }

func (q QuoteQuery) Validate() error {
	if len(q.Cart.Rooms) == 0 {
		return domaincheckout.ErrEmptyCart
	}
	return nil
}

// QuoteHandler prices a cart without holding anything.
type QuoteHandler struct {
	UoWFactory uow.UoWFactory
	Currency   string
	Telemetry  policies.Telemetry
}

func (h *QuoteHandler) Handle(ctx context.Context, q QuoteQuery) (dto.CheckoutSummary, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.CheckoutSummary{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	loaded, err := support.LoadCart(ctx, unit, q.Cart)
	if err != nil {
		return dto.CheckoutSummary{}, err
	}
	summary, err := domaincheckout.Quote(loaded.Cart, loaded.Codes)
	if err != nil {
		return dto.CheckoutSummary{}, err
	}
	t := policies.Or(h.Telemetry)
	t.QuoteComputed(len(summary.Rooms))
	if summary.DiscountRequested() {
		t.DiscountEvaluated(summary.Discount.Accepted, string(summary.Discount.Reason))
	}
	return dto.MapCheckoutSummary(summary, q.Cart.DiscountCode, h.Currency), nil
}

var _ queries.Handler[QuoteQuery, dto.CheckoutSummary] = (*QuoteHandler)(nil)
