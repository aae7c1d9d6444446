package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pousada/internal/domain/extras"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

func date(raw string) daterange.Date { return daterange.MustParseDate(raw) }

func stay(in, out string) daterange.DateRange {
	return daterange.DateRange{CheckIn: date(in), CheckOut: date(out)}
}

func room(t *testing.T, id rooms.RoomID, base int64, overrides ...rooms.DateOverride) *rooms.Room {
	t.Helper()
	r, err := rooms.NewRoom(rooms.CreateParams{
		ID:           id,
		Name:         string(id),
		BasePrice:    base,
		BaseQuantity: 2,
		Active:       true,
		Overrides:    overrides,
	})
	require.NoError(t, err)
	return r
}

var save10 = []*promotions.DiscountCode{{Code: "SAVE10", Percentage: 10, Active: true}}

func TestEndToEndDiscountThenExtras(t *testing.T) {
	cafe := &extras.Service{ID: "cafe", Name: "Café da manhã", Price: 100, Active: true}
	cart := Cart{
		Stay:         stay("2025-01-03", "2025-01-05"),
		Rooms:        []RoomLine{{Room: room(t, "casal", 1000)}},
		Extras:       []ExtraLine{{Service: cafe, Quantity: 1}},
		DiscountCode: "save10",
	}

	summary, err := Quote(cart, save10)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Nights)
	assert.Equal(t, int64(2300), summary.AccommodationSubtotal)
	assert.True(t, summary.Discount.Accepted)
	assert.Equal(t, int64(230), summary.Discount.Amount)
	assert.Equal(t, int64(2070), summary.AccommodationTotal)
	assert.Equal(t, int64(100), summary.ExtrasTotal)
	assert.Equal(t, int64(2170), summary.Total)
	assert.True(t, summary.DiscountRequested())
}

func TestPackageReplacesNightlyPricingForItsLineOnly(t *testing.T) {
	casal := room(t, "casal", 1000,
		rooms.DateOverride{Date: date("2025-02-28"), Price: rooms.Ptr[int64](5000)},
	)
	triplo := room(t, "triplo", 800)
	carnaval := &promotions.Package{
		ID:         "carnaval",
		Active:     true,
		RoomPrices: map[rooms.RoomID]int64{"casal": 3200},
	}

	summary, err := Quote(Cart{
		Stay: stay("2025-02-28", "2025-03-04"),
		Rooms: []RoomLine{
			{Room: casal, Package: carnaval},
			{Room: triplo},
		},
	}, nil)
	require.NoError(t, err)

	require.Len(t, summary.Rooms, 2)
	assert.Equal(t, int64(3200), summary.Rooms[0].Total)
	assert.Equal(t, promotions.PackageID("carnaval"), summary.Rooms[0].PackageID)
	assert.Empty(t, summary.Rooms[0].Nights)
	// Fri, Sat surcharged; Sun, Mon base.
	assert.Equal(t, int64(920+920+800+800), summary.Rooms[1].Total)
	assert.Equal(t, int64(3200+3440), summary.Total)
	assert.False(t, summary.DiscountRequested())
}

func TestPackageNotOfferedForRoom(t *testing.T) {
	pkg := &promotions.Package{ID: "lua-de-mel", Active: true, RoomPrices: map[rooms.RoomID]int64{"suite": 4000}}
	_, err := Quote(Cart{
		Stay:  stay("2025-02-10", "2025-02-12"),
		Rooms: []RoomLine{{Room: room(t, "casal", 1000), Package: pkg}},
	}, nil)
	require.ErrorIs(t, err, ErrPackageNotOffered)
}

func TestPackageOnlyPricesStaysStartingInItsWindow(t *testing.T) {
	carnaval := &promotions.Package{
		ID:         "carnaval",
		Active:     true,
		StartDate:  date("2025-02-28"),
		EndDate:    date("2025-03-05"),
		RoomPrices: map[rooms.RoomID]int64{"casal": 3200},
	}
	tests := []struct {
		name string
		dr   daterange.DateRange
		want error
	}{
		{name: "inside the window", dr: stay("2025-02-28", "2025-03-04"), want: nil},
		{name: "starts on the last day", dr: stay("2025-03-05", "2025-03-07"), want: nil},
		{name: "entirely before", dr: stay("2025-02-10", "2025-02-12"), want: ErrPackageNotOffered},
		{name: "entirely after", dr: stay("2025-03-10", "2025-03-12"), want: ErrPackageNotOffered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := Quote(Cart{Stay: tt.dr, Rooms: []RoomLine{{Room: room(t, "casal", 1000), Package: carnaval}}}, nil)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(3200), summary.Total)
		})
	}
}

func TestDiscountAppliesToAccommodationOnly(t *testing.T) {
	tour := &extras.Service{ID: "tour", Name: "Passeio", Price: 500, Active: true}
	summary, err := Quote(Cart{
		Stay:         stay("2025-02-10", "2025-02-12"),
		Rooms:        []RoomLine{{Room: room(t, "casal", 1000)}},
		Extras:       []ExtraLine{{Service: tour, Quantity: 2}},
		DiscountCode: "SAVE10",
	}, save10)
	require.NoError(t, err)

	assert.Equal(t, int64(200), summary.Discount.Amount)
	assert.Equal(t, int64(1800+1000), summary.Total)
}

func TestRejectedDiscountIsReportedNotFailed(t *testing.T) {
	summary, err := Quote(Cart{
		Stay:         stay("2025-02-10", "2025-02-12"),
		Rooms:        []RoomLine{{Room: room(t, "casal", 1000)}},
		DiscountCode: "NOPE",
	}, save10)
	require.NoError(t, err)

	assert.False(t, summary.Discount.Accepted)
	assert.Equal(t, promotions.RejectNotFound, summary.Discount.Reason)
	assert.Equal(t, int64(2000), summary.Total)
	assert.True(t, summary.DiscountRequested())
}

func TestQuoteErrors(t *testing.T) {
	closed := room(t, "casal", 1000, rooms.DateOverride{Date: date("2025-02-11"), Closed: rooms.Ptr(true)})
	off := &extras.Service{ID: "spa", Price: 300, Active: false}
	on := &extras.Service{ID: "cafe", Price: 50, Active: true}

	tests := []struct {
		name string
		cart Cart
		want error
	}{
		{name: "inverted stay", cart: Cart{Stay: stay("2025-02-12", "2025-02-10"), Rooms: []RoomLine{{Room: room(t, "a", 1)}}}, want: ErrInvalidStay},
		{name: "empty cart", cart: Cart{Stay: stay("2025-02-10", "2025-02-12")}, want: ErrEmptyCart},
		{name: "closed night", cart: Cart{Stay: stay("2025-02-10", "2025-02-12"), Rooms: []RoomLine{{Room: closed}}}, want: ErrRoomUnavailable},
		{name: "nil room", cart: Cart{Stay: stay("2025-02-10", "2025-02-12"), Rooms: []RoomLine{{}}}, want: ErrRoomUnavailable},
		{name: "inactive extra", cart: Cart{Stay: stay("2025-02-10", "2025-02-12"), Rooms: []RoomLine{{Room: room(t, "a", 1)}}, Extras: []ExtraLine{{Service: off, Quantity: 1}}}, want: ErrExtraUnavailable},
		{name: "zero quantity", cart: Cart{Stay: stay("2025-02-10", "2025-02-12"), Rooms: []RoomLine{{Room: room(t, "a", 1)}}, Extras: []ExtraLine{{Service: on}}}, want: ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Quote(tt.cart, nil)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
