package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"pousada/internal/domain/checkout"
	"pousada/internal/domain/extras"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
	"pousada/internal/domain/shared/events"
	"pousada/internal/domain/shared/money"
)

var (
	ErrInvalidState        = errors.New("reservation: invalid state transition")
	ErrReservationNotFound = errors.New("reservation: not found")
	ErrGuestRequired       = errors.New("reservation: guest name and email are required")
	ErrIDRequired          = errors.New("reservation: id is required")
	ErrEmptySummary        = errors.New("reservation: priced summary has no rooms")
)

type ID string

type State string

const (
	StatePending   State = "PENDING"
	StateConfirmed State = "CONFIRMED"
	StateCanceled  State = "CANCELED"
)

type Guest struct {
	Name  string
	Email string
	Phone string
}

type RoomLine struct {
	RoomID    rooms.RoomID
	RoomName  string
	PackageID promotions.PackageID
	Total     int64
}

type ExtraLine struct {
	ServiceID extras.ServiceID
	Name      string
	Quantity  int
	UnitPrice int64
	Total     int64
}

// Reservation stores the price computed at checkout verbatim. It is never repriced from later room data.
type Reservation struct {
	ID                    ID
	Guest                 Guest
	Stay                  daterange.DateRange
	Rooms                 []RoomLine
	Extras                []ExtraLine
	DiscountCode          string
	AccommodationSubtotal money.Money
	Discount              money.Money
	ExtrasTotal           money.Money
	Total                 money.Money
	State                 State
	CancelReason          string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	Version               int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Reservation, error)
	Save(ctx context.Context, r *Reservation) error
}

type CreateParams struct {
	ID        ID
	Guest     Guest
	Summary   checkout.Summary
	Currency  string
	CreatedAt time.Time
}

func New(params CreateParams) (*Reservation, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(params.Guest.Name) == "" || strings.TrimSpace(params.Guest.Email) == "" {
		return nil, ErrGuestRequired
	}
	if len(params.Summary.Rooms) == 0 {
		return nil, ErrEmptySummary
	}
	zero, err := money.New(0, params.Currency)
	if err != nil {
		return nil, err
	}
	amount := func(v int64) money.Money { return money.Money{Amount: v, Currency: zero.Currency} }

	s := params.Summary
	now := params.CreatedAt.UTC()
	r := &Reservation{
		ID:                    params.ID,
		Guest:                 params.Guest,
		Stay:                  s.Stay,
		AccommodationSubtotal: amount(s.AccommodationSubtotal),
		ExtrasTotal:           amount(s.ExtrasTotal),
		Total:                 amount(s.Total),
		State:                 StatePending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if s.Discount.Accepted {
		r.DiscountCode = s.Discount.Code.Code
		r.Discount = amount(s.Discount.Amount)
	} else {
		r.Discount = zero
	}
	for _, line := range s.Rooms {
		r.Rooms = append(r.Rooms, RoomLine{RoomID: line.RoomID, RoomName: line.RoomName, PackageID: line.PackageID, Total: line.Total})
	}
	for _, line := range s.Extras {
		r.Extras = append(r.Extras, ExtraLine{ServiceID: line.ServiceID, Name: line.Name, Quantity: line.Quantity, UnitPrice: line.UnitPrice, Total: line.Total})
	}
	r.Record(ReservationRequested{
		ReservationID: r.ID,
		Stay:          r.Stay,
		RoomIDs:       r.RoomIDs(),
		GuestEmail:    r.Guest.Email,
		Total:         r.Total,
		At:            now,
	})
	return r, nil
}

func (r *Reservation) RoomIDs() []rooms.RoomID {
	ids := make([]rooms.RoomID, 0, len(r.Rooms))
	for _, line := range r.Rooms {
		ids = append(ids, line.RoomID)
	}
	return ids
}

func (r *Reservation) Confirm(now time.Time) error {
	if r.State != StatePending {
		return ErrInvalidState
	}
	r.State = StateConfirmed
	r.UpdatedAt = now.UTC()
	r.Record(ReservationConfirmed{ReservationID: r.ID, Stay: r.Stay, Total: r.Total, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) Cancel(reason string, now time.Time) error {
	if r.State != StatePending {
		return ErrInvalidState
	}
	r.State = StateCanceled
	r.CancelReason = reason
	r.UpdatedAt = now.UTC()
	r.Record(ReservationCanceled{ReservationID: r.ID, Reason: reason, At: r.UpdatedAt})
	return nil
}
