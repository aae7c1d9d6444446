package policies

import "errors"

var ErrUnknownPaymentOutcome = errors.New("payments: unknown payment outcome")

// PaymentOutcome is what the payment provider reports about a reservation.
type PaymentOutcome string

const (
	PaymentCaptured PaymentOutcome = "payment.captured"
	PaymentFailed   PaymentOutcome = "payment.failed"
	PaymentExpired  PaymentOutcome = "payment.expired"
)

// PaymentEvent is the body of a message on the payments topic.
type PaymentEvent struct {
	EventID       string         `json:"event_id"`
	ReservationID string         `json:"reservation_id"`
	Outcome       PaymentOutcome `json:"outcome"`
	Reason        string         `json:"reason,omitempty"`
}

// Confirms reports whether the outcome moves the reservation to CONFIRMED.
// Any other known outcome cancels it.
func (e PaymentEvent) Confirms() (bool, error) {
	switch e.Outcome {
	case PaymentCaptured:
		return true, nil
	case PaymentFailed, PaymentExpired:
		return false, nil
	default:
		return false, ErrUnknownPaymentOutcome
	}
}
