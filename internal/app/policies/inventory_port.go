package policies

import (
	"context"
	"errors"

	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

var (
	ErrInsufficientInventory = errors.New("inventory: not enough units left for the stay")
	ErrHoldExists            = errors.New("inventory: reservation already holds units")
)

// UnitHold asks for one unit of RoomID on Date. Capacity is the effective quantity the room offers that night.
type UnitHold struct {
	RoomID   rooms.RoomID
	Date     daterange.Date
	Capacity int
}

// InventoryLedger counts units promised to reservations per room and night.
// Hold is all-or-nothing: either every night of every line fits under its capacity or nothing is taken.
type InventoryLedger interface {
	Hold(ctx context.Context, reservationID string, holds []UnitHold) error
	Release(ctx context.Context, reservationID string) error
	Held(ctx context.Context, roomID rooms.RoomID, date daterange.Date) (int, error)
}

// StayHolds expands a room over the nights of dr into one hold per night.
func StayHolds(room *rooms.Room, dr daterange.DateRange) []UnitHold {
	holds := make([]UnitHold, 0, dr.Nights())
	for d := range dr.Days() {
		holds = append(holds, UnitHold{RoomID: room.ID, Date: d, Capacity: rooms.EffectiveQuantity(room, d)})
	}
	return holds
}
