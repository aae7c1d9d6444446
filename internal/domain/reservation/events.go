package reservation

import (
	"time"

	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
	"pousada/internal/domain/shared/money"
)

type ReservationRequested struct {
	ReservationID ID
	Stay          daterange.DateRange
	RoomIDs       []rooms.RoomID
	GuestEmail    string
	Total         money.Money
	At            time.Time
}

func (e ReservationRequested) EventName() string     { return "reservation.requested" }
func (e ReservationRequested) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationRequested) OccurredAt() time.Time { return e.At }

type ReservationConfirmed struct {
	ReservationID ID
	Stay          daterange.DateRange
	Total         money.Money
	At            time.Time
}

func (e ReservationConfirmed) EventName() string     { return "reservation.confirmed" }
func (e ReservationConfirmed) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationConfirmed) OccurredAt() time.Time { return e.At }

type ReservationCanceled struct {
	ReservationID ID
	Reason        string
	At            time.Time
}

func (e ReservationCanceled) EventName() string     { return "reservation.canceled" }
func (e ReservationCanceled) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCanceled) OccurredAt() time.Time { return e.At }
