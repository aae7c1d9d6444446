package promotions

import (
	"context"
	"errors"
	"strings"

	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

var (
	ErrPackageNotFound  = errors.New("promotions: package not found")
	ErrPackageID        = errors.New("promotions: package id is required")
	ErrPackageWindow    = errors.New("promotions: package end date must not precede start date")
	ErrPackageRoomPrice = errors.New("promotions: package room price must be non-negative")
)

type PackageID string

// Package is a promotional bundle whose room prices are fixed totals for the whole stay.
type Package struct {
	ID              PackageID
	Name            string
	StartDate       daterange.Date
	EndDate         daterange.Date
	RoomPrices      map[rooms.RoomID]int64
	NoCheckInDates  map[daterange.Date]struct{}
	NoCheckOutDates map[daterange.Date]struct{}
	Active          bool
}

type PackageRepository interface {
	ByID(ctx context.Context, id PackageID) (*Package, error)
	List(ctx context.Context) ([]*Package, error)
}

func (p *Package) Validate() error {
	if strings.TrimSpace(string(p.ID)) == "" {
		return ErrPackageID
	}
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return ErrPackageWindow
	}
	for _, price := range p.RoomPrices {
		if price < 0 {
			return ErrPackageRoomPrice
		}
	}
	return nil
}

// LiveOn reports whether the package shows on the calendar for date; both window ends are inclusive.
func (p *Package) LiveOn(date daterange.Date) bool {
	if !p.Active {
		return false
	}
	if !p.StartDate.IsZero() && date.Before(p.StartDate) {
		return false
	}
	if !p.EndDate.IsZero() && date.After(p.EndDate) {
		return false
	}
	return true
}

func (p *Package) BlocksCheckIn(date daterange.Date) bool {
	_, ok := p.NoCheckInDates[date]
	return p.Active && ok
}

func (p *Package) BlocksCheckOut(date daterange.Date) bool {
	_, ok := p.NoCheckOutDates[date]
	return p.Active && ok
}

// SelectPackage returns the fixed total stay price of roomID under pkg.
// The boolean is false when the package does not offer the room.
func SelectPackage(pkg *Package, roomID rooms.RoomID) (int64, bool) {
	if pkg == nil || !pkg.Active {
		return 0, false
	}
	price, ok := pkg.RoomPrices[roomID]
	return price, ok
}

// DateSet builds a set from a list of dates.
func DateSet(dates ...daterange.Date) map[daterange.Date]struct{} {
	set := make(map[daterange.Date]struct{}, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		set[d] = struct{}{}
	}
	return set
}
