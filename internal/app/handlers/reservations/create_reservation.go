package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pousada/internal/app/commands"
	"pousada/internal/app/dto"
	"pousada/internal/app/handlers/support"
	"pousada/internal/app/middleware"
	"pousada/internal/app/outbox"
	"pousada/internal/app/policies"
	"pousada/internal/app/uow"
	"pousada/internal/domain/checkout"
	"pousada/internal/domain/reservation"
)

const createReservationKey = "reservation.create"

var ErrDiscountRejected = errors.New("reservations: discount code rejected")

type CreateReservationCommand struct {
	ReservationID   string `json:"-"`
	Cart            dto.CartRequest
	Guest           dto.ReservationGuest
	IdempotencyKeyV string `json:"-"`
}

func (c CreateReservationCommand) Key() string { return createReservationKey }

func (c CreateReservationCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c CreateReservationCommand) ResultPrototype() any { return &dto.Reservation{} }

func (c CreateReservationCommand) Validate() error {
	if c.Guest.Name == "" || c.Guest.Email == "" {
		return reservation.ErrGuestRequired
	}
	if len(c.Cart.Rooms) == 0 {
		return checkout.ErrEmptyCart
	}
	return nil
}

// CreateReservationHandler prices the cart, holds inventory for every night and stores a PENDING reservation.
type CreateReservationHandler struct {
	UoWFactory uow.UoWFactory
	Ledger     policies.InventoryLedger
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Telemetry  policies.Telemetry
	Currency   string
	Now        func() time.Time
}

func (h *CreateReservationHandler) Handle(ctx context.Context, cmd CreateReservationCommand) (*dto.Reservation, error) {
	unit, ctx, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	defer unit.Finish(ctx)

	now := h.now()
	if err := reservation.ValidateStayStart(cmd.Cart.Stay(), now); err != nil {
		return nil, err
	}
	loaded, err := support.LoadCart(ctx, unit, cmd.Cart)
	if err != nil {
		return nil, err
	}
	summary, err := checkout.Quote(loaded.Cart, loaded.Codes)
	if err != nil {
		return nil, err
	}
	if summary.DiscountRequested() && !summary.Discount.Accepted {
		return nil, fmt.Errorf("%w: %s", ErrDiscountRejected, summary.Discount.Reason)
	}

	id := cmd.ReservationID
	if id == "" {
		id = uuid.NewString()
	}
	res, err := reservation.New(reservation.CreateParams{
		ID: reservation.ID(id),
		Guest: reservation.Guest{
			Name:  cmd.Guest.Name,
			Email: cmd.Guest.Email,
			Phone: cmd.Guest.Phone,
		},
		Summary:   summary,
		Currency:  h.Currency,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	var holds []policies.UnitHold
	for _, line := range loaded.Cart.Rooms {
		holds = append(holds, policies.StayHolds(line.Room, summary.Stay)...)
	}
	if err := h.Ledger.Hold(ctx, id, holds); err != nil {
		return nil, err
	}
	kept := false
	defer func() {
		if !kept {
			_ = h.Ledger.Release(context.WithoutCancel(ctx), id)
		}
	}()

	if err := unit.Reservations().Save(ctx, res); err != nil {
		return nil, err
	}
	if err := outbox.Drain(ctx, h.Outbox, h.Encoder, res); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	kept = true
	policies.Or(h.Telemetry).ReservationTransitioned(string(res.State))

	out := dto.MapReservation(res)
	return &out, nil
}

func (h *CreateReservationHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[CreateReservationCommand, *dto.Reservation] = (*CreateReservationHandler)(nil)
var _ middleware.IdempotentCommand = (*CreateReservationCommand)(nil)
