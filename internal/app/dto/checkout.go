package dto

import (
	"slices"

	"pousada/internal/domain/checkout"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/shared/daterange"
)

type NightPrice struct {
	Date   daterange.Date `json:"date"`
	Rate   float64        `json:"rate"`
	Source string         `json:"source"`
}

type RoomLinePrice struct {
	RoomID    string       `json:"room_id"`
	RoomName  string       `json:"room_name"`
	PackageID string       `json:"package_id,omitempty"`
	Nights    []NightPrice `json:"nights,omitempty"`
	Total     int64        `json:"total"`
}

type ExtraLinePrice struct {
	ServiceID string `json:"service_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Total     int64  `json:"total"`
}

type DiscountOutcome struct {
	Code       string  `json:"code,omitempty"`
	Accepted   bool    `json:"accepted"`
	Percentage float64 `json:"percentage,omitempty"`
	Amount     int64   `json:"amount"`
	Reason     string  `json:"reason,omitempty"`
}

type CheckoutSummary struct {
	CheckIn               daterange.Date   `json:"check_in"`
	CheckOut              daterange.Date   `json:"check_out"`
	Nights                int              `json:"nights"`
	Rooms                 []RoomLinePrice  `json:"rooms"`
	Extras                []ExtraLinePrice `json:"extras"`
	AccommodationSubtotal int64            `json:"accommodation_subtotal"`
	Discount              *DiscountOutcome `json:"discount,omitempty"`
	AccommodationTotal    int64            `json:"accommodation_total"`
	ExtrasTotal           int64            `json:"extras_total"`
	Total                 int64            `json:"total"`
	Currency              string           `json:"currency"`
}

func MapDiscount(res promotions.DiscountResult, requested string) DiscountOutcome {
	out := DiscountOutcome{
		Code:     promotions.NormalizeCode(requested),
		Accepted: res.Accepted,
		Amount:   res.Amount,
		Reason:   string(res.Reason),
	}
	if res.Code != nil {
		out.Code = res.Code.Code
		out.Percentage = res.Code.Percentage
	}
	return out
}

func MapCheckoutSummary(s checkout.Summary, requestedCode, currency string) CheckoutSummary {
	out := CheckoutSummary{
		CheckIn:               s.Stay.CheckIn,
		CheckOut:              s.Stay.CheckOut,
		Nights:                s.Nights,
		Rooms:                 make([]RoomLinePrice, 0, len(s.Rooms)),
		Extras:                make([]ExtraLinePrice, 0, len(s.Extras)),
		AccommodationSubtotal: s.AccommodationSubtotal,
		AccommodationTotal:    s.AccommodationTotal,
		ExtrasTotal:           s.ExtrasTotal,
		Total:                 s.Total,
		Currency:              currency,
	}
	for _, r := range s.Rooms {
		line := RoomLinePrice{RoomID: string(r.RoomID), RoomName: r.RoomName, PackageID: string(r.PackageID), Total: r.Total}
		for _, n := range r.Nights {
			line.Nights = append(line.Nights, NightPrice{Date: n.Date, Rate: n.Rate, Source: string(n.Source)})
		}
		out.Rooms = append(out.Rooms, line)
	}
	for _, e := range s.Extras {
		out.Extras = append(out.Extras, ExtraLinePrice{
			ServiceID: string(e.ServiceID),
			Name:      e.Name,
			Quantity:  e.Quantity,
			UnitPrice: e.UnitPrice,
			Total:     e.Total,
		})
	}
	if s.DiscountRequested() {
		d := MapDiscount(s.Discount, requestedCode)
		out.Discount = &d
	}
	return out
}

func sortedDates(set map[daterange.Date]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	dates := make([]daterange.Date, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, func(a, b daterange.Date) int { return b.DaysUntil(a) })
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}

type RoomRequest struct {
	RoomID    string `json:"room_id"`
	PackageID string `json:"package_id,omitempty"`
}

type ExtraRequest struct {
	ServiceID string `json:"service_id"`
	Quantity  int    `json:"quantity"`
}

// CartRequest is the guest's selection as sent by the booking page.
type CartRequest struct {
	CheckIn      daterange.Date `json:"check_in"`
	CheckOut     daterange.Date `json:"check_out"`
	Rooms        []RoomRequest  `json:"rooms"`
	Extras       []ExtraRequest `json:"extras,omitempty"`
	DiscountCode string         `json:"discount_code,omitempty"`
}

func (c CartRequest) Stay() daterange.DateRange {
	return daterange.DateRange{CheckIn: c.CheckIn, CheckOut: c.CheckOut}
}
