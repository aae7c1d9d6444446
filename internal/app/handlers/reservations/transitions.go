package reservations

import (
	"context"
	"log/slog"
	"time"

	"pousada/internal/app/commands"
	"pousada/internal/app/dto"
	"pousada/internal/app/handlers/support"
	"pousada/internal/app/outbox"
	"pousada/internal/app/policies"
	"pousada/internal/app/uow"
	"pousada/internal/domain/reservation"
)

const (
	confirmReservationKey = "reservation.confirm"
	cancelReservationKey  = "reservation.cancel"
)

type ConfirmReservationCommand struct {
	ReservationID string
}

func (c ConfirmReservationCommand) Key() string { return confirmReservationKey }

type CancelReservationCommand struct {
	ReservationID string
	Reason        string
}

func (c CancelReservationCommand) Key() string { return cancelReservationKey }

// TransitionHandler confirms or cancels a PENDING reservation. Canceling gives its units back to the ledger.
type TransitionHandler struct {
	UoWFactory uow.UoWFactory
	Ledger     policies.InventoryLedger
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Telemetry  policies.Telemetry
	Logger     *slog.Logger
	Now        func() time.Time
}

func (h *TransitionHandler) Confirm() commands.Handler[ConfirmReservationCommand, *dto.Reservation] {
	return commands.HandlerFunc[ConfirmReservationCommand, *dto.Reservation](
		func(ctx context.Context, cmd ConfirmReservationCommand) (*dto.Reservation, error) {
			return h.transition(ctx, cmd.ReservationID, func(r *reservation.Reservation, now time.Time) error {
				return r.Confirm(now)
			}, nil)
		})
}

func (h *TransitionHandler) Cancel() commands.Handler[CancelReservationCommand, *dto.Reservation] {
	return commands.HandlerFunc[CancelReservationCommand, *dto.Reservation](
		func(ctx context.Context, cmd CancelReservationCommand) (*dto.Reservation, error) {
			return h.transition(ctx, cmd.ReservationID, func(r *reservation.Reservation, now time.Time) error {
				return r.Cancel(cmd.Reason, now)
			}, h.release)
		})
}

// transition runs afterCommit only once the new state is stored, so a failed save keeps the ledger untouched.
func (h *TransitionHandler) transition(ctx context.Context, id string, apply func(*reservation.Reservation, time.Time) error, afterCommit func(context.Context, reservation.ID)) (*dto.Reservation, error) {
	unit, ctx, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	defer unit.Finish(ctx)

	res, err := unit.Reservations().ByID(ctx, reservation.ID(id))
	if err != nil {
		return nil, err
	}
	if err := apply(res, h.now()); err != nil {
		return nil, err
	}
	if err := unit.Reservations().Save(ctx, res); err != nil {
		return nil, err
	}
	if err := outbox.Drain(ctx, h.Outbox, h.Encoder, res); err != nil {
		return nil, err
	}
	if afterCommit != nil {
		unit.AfterCommit(ctx, func(c context.Context) { afterCommit(c, res.ID) })
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	policies.Or(h.Telemetry).ReservationTransitioned(string(res.State))
	out := dto.MapReservation(res)
	return &out, nil
}

// release is best effort: the cancel is already committed, and a leftover hold expires with its slot keys.
func (h *TransitionHandler) release(ctx context.Context, id reservation.ID) {
	if err := h.Ledger.Release(ctx, string(id)); err != nil {
		h.logger().WarnContext(ctx, "inventory release failed", "reservation_id", id, "error", err)
	}
}

func (h *TransitionHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *TransitionHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}
