package availability

import (
	"pousada/internal/domain/pricing"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
	"pousada/internal/domain/shared/money"
)

// MaxCalendarDays bounds a single calendar request.
const MaxCalendarDays = 366

// CalendarDay is what the date picker needs for one date of one room.
type CalendarDay struct {
	Date        daterange.Date
	Rate        int64
	Quantity    int
	Verdict     NightVerdict
	CanCheckIn  bool
	CanCheckOut bool
	Packages    []promotions.PackageID
}

// Calendar renders [from, to) for room. Ranges longer than MaxCalendarDays are truncated.
func Calendar(room *rooms.Room, packages []*promotions.Package, window daterange.DateRange) []CalendarDay {
	if room == nil || window.Validate() != nil {
		return nil
	}
	if window.Nights() > MaxCalendarDays {
		window.CheckOut = window.CheckIn.AddDays(MaxCalendarDays)
	}
	days := make([]CalendarDay, 0, window.Nights())
	for date := range window.Days() {
		rate, _ := pricing.NightlyRate(room, date)
		day := CalendarDay{
			Date:        date,
			Rate:        money.Round(rate),
			Quantity:    rooms.EffectiveQuantity(room, date),
			Verdict:     NightStatus(room, date),
			CanCheckIn:  CanCheckIn(room, packages, date),
			CanCheckOut: CanCheckOut(room, packages, date),
		}
		for _, pkg := range packages {
			if pkg == nil || !pkg.LiveOn(date) {
				continue
			}
			if _, ok := promotions.SelectPackage(pkg, room.ID); ok {
				day.Packages = append(day.Packages, pkg.ID)
			}
		}
		days = append(days, day)
	}
	return days
}
