package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
)

func seedRoom(t *testing.T, id rooms.RoomID) *rooms.Room {
	t.Helper()
	r, err := rooms.NewRoom(rooms.CreateParams{ID: id, Name: string(id), BasePrice: 1000, BaseQuantity: 2, Active: true})
	require.NoError(t, err)
	return r
}

func TestRoomRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository(seedRoom(t, "triplo"), seedRoom(t, "casal"))

	got, err := repo.ByID(ctx, "casal")
	require.NoError(t, err)
	got.BasePrice = 1

	again, err := repo.ByID(ctx, "casal")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), again.BasePrice)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, rooms.RoomID("casal"), list[0].ID)

	_, err = repo.ByID(ctx, "suite")
	assert.ErrorIs(t, err, rooms.ErrRoomNotFound)
}

func TestRoomRepositoryOptimisticLocking(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository(seedRoom(t, "casal"))

	a, err := repo.ByID(ctx, "casal")
	require.NoError(t, err)
	b, err := repo.ByID(ctx, "casal")
	require.NoError(t, err)

	a.BasePrice = 1200
	require.NoError(t, repo.Save(ctx, a))
	assert.Equal(t, int64(1), a.Version)

	b.BasePrice = 900
	assert.ErrorIs(t, repo.Save(ctx, b), ErrVersionConflict)
}

func TestDiscountRepositoryNormalizesCodes(t *testing.T) {
	ctx := context.Background()
	repo := NewDiscountRepository(&promotions.DiscountCode{Code: "Save10", Percentage: 10, Active: true})

	dc, err := repo.ByCode(ctx, " save10 ")
	require.NoError(t, err)
	assert.Equal(t, float64(10), dc.Percentage)

	require.NoError(t, repo.Delete(ctx, "SAVE10"))
	assert.ErrorIs(t, repo.Delete(ctx, "SAVE10"), promotions.ErrDiscountNotFound)
	_, err = repo.ByCode(ctx, "save10")
	assert.ErrorIs(t, err, promotions.ErrDiscountNotFound)
}
