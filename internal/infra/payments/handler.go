package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/IBM/sarama"

	"pousada/internal/app/commands"
	"pousada/internal/app/dto"
	"pousada/internal/app/handlers/reservations"
	"pousada/internal/app/policies"
	"pousada/internal/domain/reservation"
	"pousada/internal/infra/broker/kafka"
)

// Inbox records consumed event ids. Forget undoes Seen when processing failed and must be retried.
type Inbox interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Forget(ctx context.Context, eventID string) error
}

// Handler turns payment outcome messages into confirm and cancel commands.
type Handler struct {
	Commands commands.Bus
	Inbox    Inbox
	Logger   *slog.Logger
}

type cloudEvent struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (h *Handler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	evt, err := decode(msg.Value)
	if err != nil {
		return fmt.Errorf("%w: %w", kafka.ErrPermanent, err)
	}
	confirms, err := evt.Confirms()
	if err != nil {
		return fmt.Errorf("%w: %w", kafka.ErrPermanent, err)
	}
	seen, err := h.Inbox.Seen(ctx, evt.EventID)
	if err != nil {
		return err
	}
	if seen {
		h.logger().Debug("payment event already handled", "event_id", evt.EventID)
		return nil
	}

	if confirms {
		_, err = commands.Dispatch[reservations.ConfirmReservationCommand, *dto.Reservation](ctx, h.Commands,
			reservations.ConfirmReservationCommand{ReservationID: evt.ReservationID})
	} else {
		reason := evt.Reason
		if reason == "" {
			reason = string(evt.Outcome)
		}
		_, err = commands.Dispatch[reservations.CancelReservationCommand, *dto.Reservation](ctx, h.Commands,
			reservations.CancelReservationCommand{ReservationID: evt.ReservationID, Reason: reason})
	}
	switch {
	case err == nil:
		h.logger().Info("payment outcome applied", "reservation_id", evt.ReservationID, "outcome", evt.Outcome)
		return nil
	case errors.Is(err, reservation.ErrInvalidState), errors.Is(err, reservation.ErrReservationNotFound):
		h.logger().Warn("payment outcome ignored", "reservation_id", evt.ReservationID, "outcome", evt.Outcome, "error", err)
		return nil
	default:
		if forgetErr := h.Inbox.Forget(context.WithoutCancel(ctx), evt.EventID); forgetErr != nil {
			return errors.Join(err, forgetErr)
		}
		return err
	}
}

// decode accepts a CloudEvents envelope or a bare payment event.
func decode(raw []byte) (policies.PaymentEvent, error) {
	var envelope cloudEvent
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return policies.PaymentEvent{}, err
	}
	var evt policies.PaymentEvent
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &evt); err != nil {
			return policies.PaymentEvent{}, err
		}
		if evt.EventID == "" {
			evt.EventID = envelope.ID
		}
		if evt.Outcome == "" {
			evt.Outcome = policies.PaymentOutcome(strings.TrimSuffix(envelope.Type, ".v1"))
		}
	} else if err := json.Unmarshal(raw, &evt); err != nil {
		return policies.PaymentEvent{}, err
	}
	if evt.EventID == "" || evt.ReservationID == "" {
		return policies.PaymentEvent{}, errors.New("payments: event id and reservation id are required")
	}
	return evt, nil
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

var _ kafka.MessageHandler = (*Handler)(nil)
