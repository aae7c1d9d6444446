package memory

import (
	"context"
	"fmt"
	"sync"

	"pousada/internal/app/policies"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

type slot struct {
	room rooms.RoomID
	date daterange.Date
}

// InventoryLedger is a mutex-guarded policies.InventoryLedger for a single process.
type InventoryLedger struct {
	mu    sync.Mutex
	held  map[slot]int
	holds map[string][]slot
}

func NewInventoryLedger() *InventoryLedger {
	return &InventoryLedger{held: make(map[slot]int), holds: make(map[string][]slot)}
}

func (l *InventoryLedger) Hold(ctx context.Context, reservationID string, holds []policies.UnitHold) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.holds[reservationID]; ok {
		return policies.ErrHoldExists
	}
	want := make(map[slot]int, len(holds))
	capacity := make(map[slot]int, len(holds))
	for _, h := range holds {
		s := slot{room: h.RoomID, date: h.Date}
		want[s]++
		capacity[s] = h.Capacity
	}
	for s, n := range want {
		if l.held[s]+n > capacity[s] {
			return fmt.Errorf("%w: %s on %s", policies.ErrInsufficientInventory, s.room, s.date)
		}
	}
	taken := make([]slot, 0, len(holds))
	for _, h := range holds {
		s := slot{room: h.RoomID, date: h.Date}
		l.held[s]++
		taken = append(taken, s)
	}
	l.holds[reservationID] = taken
	return nil
}

// Release is a no-op for reservations that hold nothing.
func (l *InventoryLedger) Release(ctx context.Context, reservationID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.holds[reservationID] {
		l.held[s]--
		if l.held[s] <= 0 {
			delete(l.held, s)
		}
	}
	delete(l.holds, reservationID)
	return nil
}

func (l *InventoryLedger) Held(ctx context.Context, roomID rooms.RoomID, date daterange.Date) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held[slot{room: roomID, date: date}], nil
}

var _ policies.InventoryLedger = (*InventoryLedger)(nil)
