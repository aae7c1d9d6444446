package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pousada/internal/app/policies"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

func nights(room string, capacity int, days ...string) []policies.UnitHold {
	out := make([]policies.UnitHold, 0, len(days))
	for _, d := range days {
		out = append(out, policies.UnitHold{RoomID: rooms.RoomID(room), Date: daterange.MustParseDate(d), Capacity: capacity})
	}
	return out
}

func TestLedgerHoldIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	l := NewInventoryLedger()

	require.NoError(t, l.Hold(ctx, "r1", nights("casal", 1, "2025-01-03")))

	err := l.Hold(ctx, "r2", nights("casal", 1, "2025-01-02", "2025-01-03"))
	require.ErrorIs(t, err, policies.ErrInsufficientInventory)

	held, err := l.Held(ctx, "casal", daterange.MustParseDate("2025-01-02"))
	require.NoError(t, err)
	assert.Zero(t, held)
}

func TestLedgerRejectsDuplicateHold(t *testing.T) {
	ctx := context.Background()
	l := NewInventoryLedger()
	require.NoError(t, l.Hold(ctx, "r1", nights("casal", 2, "2025-01-03")))
	require.ErrorIs(t, l.Hold(ctx, "r1", nights("casal", 2, "2025-01-04")), policies.ErrHoldExists)
}

func TestLedgerReleaseFreesUnits(t *testing.T) {
	ctx := context.Background()
	l := NewInventoryLedger()
	day := daterange.MustParseDate("2025-01-03")

	require.NoError(t, l.Hold(ctx, "r1", nights("casal", 1, "2025-01-03")))
	require.NoError(t, l.Release(ctx, "r1"))
	require.NoError(t, l.Release(ctx, "unknown"))

	held, err := l.Held(ctx, "casal", day)
	require.NoError(t, err)
	assert.Zero(t, held)
	require.NoError(t, l.Hold(ctx, "r2", nights("casal", 1, "2025-01-03")))
}

func TestLedgerCountsSameRoomTwiceInOneHold(t *testing.T) {
	ctx := context.Background()
	l := NewInventoryLedger()
	both := append(nights("casal", 2, "2025-01-03"), nights("casal", 2, "2025-01-03")...)
	require.NoError(t, l.Hold(ctx, "r1", both))

	err := l.Hold(ctx, "r2", nights("casal", 2, "2025-01-03"))
	require.ErrorIs(t, err, policies.ErrInsufficientInventory)
}

func TestLedgerConcurrentHoldsNeverOversell(t *testing.T) {
	ctx := context.Background()
	l := NewInventoryLedger()
	const capacity = 3

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := "r" + string(rune('a'+i))
			if l.Hold(ctx, id, nights("casal", capacity, "2025-01-03", "2025-01-04")) == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, capacity, ok)
}
