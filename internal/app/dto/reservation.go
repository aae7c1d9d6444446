package dto

import (
	"time"

	"pousada/internal/domain/reservation"
	"pousada/internal/domain/shared/daterange"
)

type ReservationRoom struct {
	RoomID    string `json:"room_id"`
	RoomName  string `json:"room_name"`
	PackageID string `json:"package_id,omitempty"`
	Total     int64  `json:"total"`
}

type ReservationGuest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type Reservation struct {
	ID                    string            `json:"id"`
	State                 string            `json:"state"`
	Guest                 ReservationGuest  `json:"guest"`
	CheckIn               daterange.Date    `json:"check_in"`
	CheckOut              daterange.Date    `json:"check_out"`
	Nights                int               `json:"nights"`
	Rooms                 []ReservationRoom `json:"rooms"`
	Extras                []ExtraLinePrice  `json:"extras"`
	DiscountCode          string            `json:"discount_code,omitempty"`
	AccommodationSubtotal MoneyDTO          `json:"accommodation_subtotal"`
	Discount              MoneyDTO          `json:"discount"`
	ExtrasTotal           MoneyDTO          `json:"extras_total"`
	Total                 MoneyDTO          `json:"total"`
	CancelReason          string            `json:"cancel_reason,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

func MapReservation(r *reservation.Reservation) Reservation {
	out := Reservation{
		ID:                    string(r.ID),
		State:                 string(r.State),
		Guest:                 ReservationGuest{Name: r.Guest.Name, Email: r.Guest.Email, Phone: r.Guest.Phone},
		CheckIn:               r.Stay.CheckIn,
		CheckOut:              r.Stay.CheckOut,
		Nights:                r.Stay.Nights(),
		Rooms:                 make([]ReservationRoom, 0, len(r.Rooms)),
		Extras:                make([]ExtraLinePrice, 0, len(r.Extras)),
		DiscountCode:          r.DiscountCode,
		AccommodationSubtotal: MapMoney(r.AccommodationSubtotal),
		Discount:              MapMoney(r.Discount),
		ExtrasTotal:           MapMoney(r.ExtrasTotal),
		Total:                 MapMoney(r.Total),
		CancelReason:          r.CancelReason,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
	for _, line := range r.Rooms {
		out.Rooms = append(out.Rooms, ReservationRoom{
			RoomID:    string(line.RoomID),
			RoomName:  line.RoomName,
			PackageID: string(line.PackageID),
			Total:     line.Total,
		})
	}
	for _, line := range r.Extras {
		out.Extras = append(out.Extras, ExtraLinePrice{
			ServiceID: string(line.ServiceID),
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.Total,
		})
	}
	return out
}
