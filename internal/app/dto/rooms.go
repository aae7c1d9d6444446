package dto

import (
	"pousada/internal/domain/availability"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
	"pousada/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func MapMoney(value money.Money) MoneyDTO {
	return MoneyDTO{Amount: value.Amount, Currency: value.Currency}
}

// RoomSummary is one row of the room listing. StayPrice is the base price when no dates are chosen.
type RoomSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BasePrice    int64  `json:"base_price"`
	BaseQuantity int    `json:"base_quantity"`
	Available    bool   `json:"available"`
	Nights       int    `json:"nights"`
	StayPrice    int64  `json:"stay_price"`
	Currency     string `json:"currency"`
}

type RoomCollection struct {
	CheckIn  string        `json:"check_in,omitempty"`
	CheckOut string        `json:"check_out,omitempty"`
	Items    []RoomSummary `json:"items"`
}

type CalendarDay struct {
	Date        daterange.Date `json:"date"`
	Rate        int64          `json:"rate"`
	Quantity    int            `json:"quantity"`
	Available   bool           `json:"available"`
	Closed      bool           `json:"closed"`
	Status      string         `json:"status"`
	CanCheckIn  bool           `json:"can_check_in"`
	CanCheckOut bool           `json:"can_check_out"`
	Packages    []string       `json:"packages,omitempty"`
}

type Calendar struct {
	RoomID   string        `json:"room_id"`
	Currency string        `json:"currency"`
	Days     []CalendarDay `json:"days"`
}

func MapCalendar(roomID rooms.RoomID, currency string, days []availability.CalendarDay) Calendar {
	out := Calendar{RoomID: string(roomID), Currency: currency, Days: make([]CalendarDay, 0, len(days))}
	for _, d := range days {
		day := CalendarDay{
			Date:        d.Date,
			Rate:        d.Rate,
			Quantity:    d.Quantity,
			Available:   d.Verdict == availability.NightOpen,
			Closed:      d.Verdict == availability.NightClosed,
			Status:      string(d.Verdict),
			CanCheckIn:  d.CanCheckIn,
			CanCheckOut: d.CanCheckOut,
		}
		for _, id := range d.Packages {
			day.Packages = append(day.Packages, string(id))
		}
		out.Days = append(out.Days, day)
	}
	return out
}

type PackageSummary struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	StartDate       string           `json:"start_date,omitempty"`
	EndDate         string           `json:"end_date,omitempty"`
	RoomPrices      map[string]int64 `json:"room_prices"`
	NoCheckInDates  []string         `json:"no_check_in_dates,omitempty"`
	NoCheckOutDates []string         `json:"no_check_out_dates,omitempty"`
}

type PackageCollection struct {
	Items []PackageSummary `json:"items"`
}

func MapPackage(p *promotions.Package) PackageSummary {
	out := PackageSummary{
		ID:              string(p.ID),
		Name:            p.Name,
		StartDate:       p.StartDate.String(),
		EndDate:         p.EndDate.String(),
		RoomPrices:      make(map[string]int64, len(p.RoomPrices)),
		NoCheckInDates:  sortedDates(p.NoCheckInDates),
		NoCheckOutDates: sortedDates(p.NoCheckOutDates),
	}
	for id, price := range p.RoomPrices {
		out.RoomPrices[string(id)] = price
	}
	return out
}
