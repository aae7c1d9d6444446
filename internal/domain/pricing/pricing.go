package pricing

import (
	"errors"
	"time"

	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
	"pousada/internal/domain/shared/money"
)

var (
	ErrRoomMissing  = errors.New("pricing: room is required")
	ErrRoomInactive = errors.New("pricing: room is not active")
)

// WeekendSurcharge is added to the base price on Friday and Saturday nights.
const WeekendSurcharge = 0.15

// weekendPercent is 100 + WeekendSurcharge in whole percent. Stay sums are kept in hundredths
// of a unit so the surcharge never passes through float rounding.
const weekendPercent = 115

type RateSource string

const (
	SourceOverride RateSource = "OVERRIDE"
	SourceBase     RateSource = "BASE"
	SourceWeekend  RateSource = "WEEKEND"
)

type Night struct {
	Date   daterange.Date
	Rate   float64
	Source RateSource
}

// StayQuote is the night-by-night price of one room. Total is rounded once, on the sum.
type StayQuote struct {
	RoomID rooms.RoomID
	Range  daterange.DateRange
	Nights []Night
	Total  int64
}

func IsWeekend(d daterange.Date) bool {
	wd := d.Weekday()
	return wd == time.Friday || wd == time.Saturday
}

// NightlyRate prices a single night. An override price is authoritative and never surcharged.
func NightlyRate(room *rooms.Room, date daterange.Date) (float64, RateSource) {
	hundredths, source := nightlyHundredths(room, date)
	return float64(hundredths) / 100, source
}

func nightlyHundredths(room *rooms.Room, date daterange.Date) (int64, RateSource) {
	if o, ok := rooms.ResolveOverride(room, date); ok && o.Price != nil {
		return *o.Price * 100, SourceOverride
	}
	if IsWeekend(date) {
		return room.BasePrice * weekendPercent, SourceWeekend
	}
	return room.BasePrice * 100, SourceBase
}

func QuoteStay(room *rooms.Room, dr daterange.DateRange) (StayQuote, error) {
	if room == nil {
		return StayQuote{}, ErrRoomMissing
	}
	if !room.Active {
		return StayQuote{}, ErrRoomInactive
	}
	if err := dr.Validate(); err != nil {
		return StayQuote{}, err
	}
	quote := StayQuote{RoomID: room.ID, Range: dr, Nights: make([]Night, 0, dr.Nights())}
	var sum int64
	for date := range dr.Days() {
		hundredths, source := nightlyHundredths(room, date)
		quote.Nights = append(quote.Nights, Night{Date: date, Rate: float64(hundredths) / 100, Source: source})
		sum += hundredths
	}
	quote.Total = money.RoundHundredths(sum)
	return quote, nil
}

// PriceStay returns the stay total, or the base price as a "from" figure when no dates are chosen.
// Invalid ranges and inactive rooms price at 0, which callers read as "price on request".
func PriceStay(room *rooms.Room, dr daterange.DateRange) int64 {
	if room == nil {
		return 0
	}
	if dr.IsZero() {
		if !room.Active {
			return 0
		}
		return room.BasePrice
	}
	quote, err := QuoteStay(room, dr)
	if err != nil {
		return 0
	}
	return quote.Total
}
