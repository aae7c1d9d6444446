package dto

import (
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

// Override is the wire form of a date override. Omitted fields fall back to the room's base terms.
type Override struct {
	Date              daterange.Date `json:"date"`
	Price             *int64         `json:"price,omitempty"`
	AvailableQuantity *int           `json:"available_quantity,omitempty"`
	Closed            *bool          `json:"closed,omitempty"`
	NoCheckIn         *bool          `json:"no_check_in,omitempty"`
	NoCheckOut        *bool          `json:"no_check_out,omitempty"`
}

func (o Override) Domain() rooms.DateOverride {
	return rooms.DateOverride{
		Date:              o.Date,
		Price:             o.Price,
		AvailableQuantity: o.AvailableQuantity,
		Closed:            o.Closed,
		NoCheckIn:         o.NoCheckIn,
		NoCheckOut:        o.NoCheckOut,
	}
}

func MapOverride(o rooms.DateOverride) Override {
	return Override{
		Date:              o.Date,
		Price:             o.Price,
		AvailableQuantity: o.AvailableQuantity,
		Closed:            o.Closed,
		NoCheckIn:         o.NoCheckIn,
		NoCheckOut:        o.NoCheckOut,
	}
}

type RoomDetail struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	BasePrice    int64      `json:"base_price"`
	BaseQuantity int        `json:"base_quantity"`
	Active       bool       `json:"active"`
	Overrides    []Override `json:"overrides"`
}

func MapRoomDetail(r *rooms.Room) RoomDetail {
	out := RoomDetail{
		ID:           string(r.ID),
		Name:         r.Name,
		BasePrice:    r.BasePrice,
		BaseQuantity: r.BaseQuantity,
		Active:       r.Active,
		Overrides:    make([]Override, 0, len(r.Overrides)),
	}
	for _, o := range r.SortedOverrides() {
		out.Overrides = append(out.Overrides, MapOverride(o))
	}
	return out
}

type Discount struct {
	Code               string         `json:"code"`
	Percentage         float64        `json:"percentage"`
	Active             bool           `json:"active"`
	StartDate          daterange.Date `json:"start_date"`
	EndDate            daterange.Date `json:"end_date"`
	MinNights          int            `json:"min_nights"`
	FullPeriodRequired bool           `json:"full_period_required"`
}

func (d Discount) Domain() *promotions.DiscountCode {
	return &promotions.DiscountCode{
		Code:               promotions.NormalizeCode(d.Code),
		Percentage:         d.Percentage,
		Active:             d.Active,
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		MinNights:          d.MinNights,
		FullPeriodRequired: d.FullPeriodRequired,
	}
}

func MapDiscountCode(d *promotions.DiscountCode) Discount {
	return Discount{
		Code:               d.Code,
		Percentage:         d.Percentage,
		Active:             d.Active,
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		MinNights:          d.MinNights,
		FullPeriodRequired: d.FullPeriodRequired,
	}
}

// HistoryState tells the admin UI which of undo and redo are possible after a change.
type HistoryState struct {
	Label   string `json:"label,omitempty"`
	CanUndo bool   `json:"can_undo"`
	CanRedo bool   `json:"can_redo"`
}
