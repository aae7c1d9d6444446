package availability

import (
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

type NightVerdict string

const (
	NightOpen       NightVerdict = "OPEN"
	NightClosed     NightVerdict = "CLOSED"
	NightNoPrice    NightVerdict = "NO_PRICE"
	NightSoldOut    NightVerdict = "SOLD_OUT"
	NightRoomHidden NightVerdict = "INACTIVE"
)

// NightStatus decides one night. A price of 0 always means "not for sale", whatever made it 0.
func NightStatus(room *rooms.Room, date daterange.Date) NightVerdict {
	if room == nil || !room.Active {
		return NightRoomHidden
	}
	if o, ok := rooms.ResolveOverride(room, date); ok && o.IsClosed() {
		return NightClosed
	}
	if rooms.EffectivePrice(room, date) == 0 {
		return NightNoPrice
	}
	if rooms.EffectiveQuantity(room, date) == 0 {
		return NightSoldOut
	}
	return NightOpen
}

// IsAvailable reports whether room can be sold for every night of dr.
// With no dates chosen it falls back to the room's base terms; an invalid range is never available.
func IsAvailable(room *rooms.Room, dr daterange.DateRange) bool {
	if room == nil || !room.Active {
		return false
	}
	if dr.IsZero() {
		return room.BaseQuantity > 0 && room.BasePrice > 0
	}
	if dr.Validate() != nil {
		return false
	}
	for date := range dr.Days() {
		if NightStatus(room, date) != NightOpen {
			return false
		}
	}
	return true
}

// FirstBlockedNight returns the earliest night that vetoes dr, for error messages.
func FirstBlockedNight(room *rooms.Room, dr daterange.DateRange) (daterange.Date, NightVerdict, bool) {
	for date := range dr.Days() {
		if v := NightStatus(room, date); v != NightOpen {
			return date, v, true
		}
	}
	return daterange.Date{}, NightOpen, false
}
