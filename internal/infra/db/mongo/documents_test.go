package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pousada/internal/domain/promotions"
	"pousada/internal/domain/reservation"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
	"pousada/internal/domain/shared/money"
)

func TestRoomDocumentKeepsOverridesAndVersion(t *testing.T) {
	room, err := rooms.NewRoom(rooms.CreateParams{
		ID:           "casal",
		Name:         "Casal",
		BasePrice:    1000,
		BaseQuantity: 2,
		Active:       true,
		Overrides: []rooms.DateOverride{
			{Date: daterange.MustParseDate("2025-01-05"), Closed: rooms.Ptr(true)},
			{Date: daterange.MustParseDate("2025-01-03"), Price: rooms.Ptr[int64](700)},
		},
	})
	require.NoError(t, err)
	room.Version = 4

	doc := newRoomDocument(room)
	require.Len(t, doc.Overrides, 2)
	assert.Equal(t, "2025-01-03", doc.Overrides[0].Date)

	back, err := doc.toAggregate()
	require.NoError(t, err)
	assert.Equal(t, room, back)
}

func TestPackageDocumentDateSets(t *testing.T) {
	pkg := &promotions.Package{
		ID:             "carnaval",
		Name:           "Carnaval",
		StartDate:      daterange.MustParseDate("2025-02-28"),
		EndDate:        daterange.MustParseDate("2025-03-05"),
		RoomPrices:     map[rooms.RoomID]int64{"casal": 3200},
		NoCheckInDates: promotions.DateSet(daterange.MustParseDate("2025-03-01")),
		Active:         true,
	}

	back, err := newPackageDocument(pkg).toAggregate()
	require.NoError(t, err)
	assert.Equal(t, pkg.RoomPrices, back.RoomPrices)
	assert.True(t, back.BlocksCheckIn(daterange.MustParseDate("2025-03-01")))
	assert.Empty(t, back.NoCheckOutDates)
	assert.Equal(t, pkg.EndDate, back.EndDate)
}

func TestDiscountDocumentIsKeyedByNormalizedCode(t *testing.T) {
	doc := newDiscountDocument(&promotions.DiscountCode{Code: " save10 ", Percentage: 10, Active: true})
	assert.Equal(t, "SAVE10", doc.Code)
	assert.Empty(t, doc.StartDate)

	back, err := doc.toAggregate()
	require.NoError(t, err)
	assert.True(t, back.StartDate.IsZero())
}

func TestReservationDocumentRestoresSnapshot(t *testing.T) {
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	res := &reservation.Reservation{
		ID:                    "r-1",
		Guest:                 reservation.Guest{Name: "Ana", Email: "ana@example.com"},
		Stay:                  daterange.DateRange{CheckIn: daterange.MustParseDate("2025-01-03"), CheckOut: daterange.MustParseDate("2025-01-05")},
		Rooms:                 []reservation.RoomLine{{RoomID: "casal", RoomName: "Casal", Total: 2300}},
		DiscountCode:          "SAVE10",
		AccommodationSubtotal: money.Must(2300, "BRL"),
		Discount:              money.Must(230, "BRL"),
		ExtrasTotal:           money.Must(0, "BRL"),
		Total:                 money.Must(2070, "BRL"),
		State:                 reservation.StatePending,
		CreatedAt:             at,
		UpdatedAt:             at,
		Version:               1,
	}

	back, err := newReservationDocument(res).toAggregate()
	require.NoError(t, err)
	assert.Equal(t, res, back)
}
