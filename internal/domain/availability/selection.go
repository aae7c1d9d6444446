package availability

import (
	"errors"
	"fmt"

	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

var (
	ErrCheckInRestricted  = errors.New("availability: check-in is not allowed on this date")
	ErrCheckOutRestricted = errors.New("availability: check-out is not allowed on this date")
)

// CanCheckIn applies the room's per-date flag and every active package's no-check-in dates.
func CanCheckIn(room *rooms.Room, packages []*promotions.Package, date daterange.Date) bool {
	if o, ok := rooms.ResolveOverride(room, date); ok && o.BlocksCheckIn() {
		return false
	}
	for _, pkg := range packages {
		if pkg != nil && pkg.BlocksCheckIn(date) {
			return false
		}
	}
	return true
}

func CanCheckOut(room *rooms.Room, packages []*promotions.Package, date daterange.Date) bool {
	if o, ok := rooms.ResolveOverride(room, date); ok && o.BlocksCheckOut() {
		return false
	}
	for _, pkg := range packages {
		if pkg != nil && pkg.BlocksCheckOut(date) {
			return false
		}
	}
	return true
}

// ValidateSelection rejects a picked range whose boundaries are restricted. It says nothing about
// whether the nights in between can be sold.
func ValidateSelection(room *rooms.Room, packages []*promotions.Package, dr daterange.DateRange) error {
	if err := dr.Validate(); err != nil {
		return err
	}
	if !CanCheckIn(room, packages, dr.CheckIn) {
		return fmt.Errorf("%w: %s", ErrCheckInRestricted, dr.CheckIn)
	}
	if !CanCheckOut(room, packages, dr.CheckOut) {
		return fmt.Errorf("%w: %s", ErrCheckOutRestricted, dr.CheckOut)
	}
	return nil
}
