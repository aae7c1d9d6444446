package rooms

import (
	"errors"

	"pousada/internal/domain/shared/daterange"
)

var ErrNegativeOverride = errors.New("rooms: override price and quantity must be non-negative")

// DateOverride is a date-scoped exception to a room's base terms. Nil fields fall back to the base.
type DateOverride struct {
	Date              daterange.Date
	Price             *int64
	AvailableQuantity *int
	Closed            *bool
	NoCheckIn         *bool
	NoCheckOut        *bool
}

// IsEmpty reports an override that carries no rule and therefore behaves as no override.
func (o DateOverride) IsEmpty() bool {
	return o.Price == nil && o.AvailableQuantity == nil && o.Closed == nil && o.NoCheckIn == nil && o.NoCheckOut == nil
}

func (o DateOverride) Validate() error {
	if o.Date.IsZero() {
		return ErrOverrideDate
	}
	if o.Price != nil && *o.Price < 0 {
		return ErrNegativeOverride
	}
	if o.AvailableQuantity != nil && *o.AvailableQuantity < 0 {
		return ErrNegativeOverride
	}
	return nil
}

func (o DateOverride) IsClosed() bool      { return o.Closed != nil && *o.Closed }
func (o DateOverride) BlocksCheckIn() bool  { return o.NoCheckIn != nil && *o.NoCheckIn }
func (o DateOverride) BlocksCheckOut() bool { return o.NoCheckOut != nil && *o.NoCheckOut }

func (o DateOverride) clone() DateOverride {
	c := DateOverride{Date: o.Date}
	if o.Price != nil {
		c.Price = Ptr(*o.Price)
	}
	if o.AvailableQuantity != nil {
		c.AvailableQuantity = Ptr(*o.AvailableQuantity)
	}
	if o.Closed != nil {
		c.Closed = Ptr(*o.Closed)
	}
	if o.NoCheckIn != nil {
		c.NoCheckIn = Ptr(*o.NoCheckIn)
	}
	if o.NoCheckOut != nil {
		c.NoCheckOut = Ptr(*o.NoCheckOut)
	}
	return c
}

// Ptr is a helper for building optional override fields.
func Ptr[T any](v T) *T { return &v }

// ResolveOverride returns the rule for exactly date, if the room has a non-empty one.
func ResolveOverride(room *Room, date daterange.Date) (DateOverride, bool) {
	if room == nil || len(room.Overrides) == 0 {
		return DateOverride{}, false
	}
	o, ok := room.Overrides[date]
	if !ok || o.IsEmpty() {
		return DateOverride{}, false
	}
	return o, true
}

// EffectivePrice is the override price when set, otherwise the base price. No surcharge applies here.
func EffectivePrice(room *Room, date daterange.Date) int64 {
	if o, ok := ResolveOverride(room, date); ok && o.Price != nil {
		return *o.Price
	}
	return room.BasePrice
}

// EffectiveQuantity is the override quantity when set, otherwise the base quantity.
func EffectiveQuantity(room *Room, date daterange.Date) int {
	if o, ok := ResolveOverride(room, date); ok && o.AvailableQuantity != nil {
		return *o.AvailableQuantity
	}
	return room.BaseQuantity
}
