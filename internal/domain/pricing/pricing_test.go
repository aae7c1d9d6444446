package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

func date(raw string) daterange.Date { return daterange.MustParseDate(raw) }

func stay(in, out string) daterange.DateRange {
	return daterange.DateRange{CheckIn: date(in), CheckOut: date(out)}
}

func casal(t *testing.T, overrides ...rooms.DateOverride) *rooms.Room {
	t.Helper()
	room, err := rooms.NewRoom(rooms.CreateParams{
		ID:           "casal",
		Name:         "Casal",
		BasePrice:    1000,
		BaseQuantity: 3,
		Active:       true,
		Overrides:    overrides,
	})
	require.NoError(t, err)
	return room
}

func TestWeekendStayTotal(t *testing.T) {
	// Fri 2025-01-03 and Sat 2025-01-04.
	quote, err := QuoteStay(casal(t), stay("2025-01-03", "2025-01-05"))
	require.NoError(t, err)

	assert.Equal(t, int64(2300), quote.Total)
	require.Len(t, quote.Nights, 2)
	assert.Equal(t, SourceWeekend, quote.Nights[0].Source)
	assert.Equal(t, SourceWeekend, quote.Nights[1].Source)
}

func TestCheckoutDateIsNeverPriced(t *testing.T) {
	// Thu night only; Friday is the departure day.
	assert.Equal(t, int64(1000), PriceStay(casal(t), stay("2025-01-02", "2025-01-03")))
}

func TestOverridePriceIsNotSurcharged(t *testing.T) {
	room := casal(t, rooms.DateOverride{Date: date("2025-01-04"), Price: rooms.Ptr[int64](800)})

	quote, err := QuoteStay(room, stay("2025-01-03", "2025-01-05"))
	require.NoError(t, err)

	assert.Equal(t, 1150.0, quote.Nights[0].Rate)
	assert.Equal(t, 800.0, quote.Nights[1].Rate)
	assert.Equal(t, SourceOverride, quote.Nights[1].Source)
	assert.Equal(t, int64(1950), quote.Total)
}

func TestOverrideWithoutPriceFallsBackToSurchargedBase(t *testing.T) {
	room := casal(t, rooms.DateOverride{Date: date("2025-01-03"), AvailableQuantity: rooms.Ptr(1)})

	rate, source := NightlyRate(room, date("2025-01-03"))
	assert.Equal(t, 1150.0, rate)
	assert.Equal(t, SourceWeekend, source)
}

func TestWeekendSurchargeOnlyFridayAndSaturday(t *testing.T) {
	room := casal(t)
	// 2025-01-05 is a Sunday.
	for i, want := range []float64{1000, 1000, 1000, 1000, 1000, 1150, 1150} {
		d := date("2025-01-05").AddDays(i)
		rate, _ := NightlyRate(room, d)
		assert.Equal(t, want, rate, d.Weekday().String())
	}
}

func TestRoundingHappensOnceOnTheSum(t *testing.T) {
	room, err := rooms.NewRoom(rooms.CreateParams{ID: "s", Name: "Single", BasePrice: 3, BaseQuantity: 1, Active: true})
	require.NoError(t, err)

	// 3.45 per weekend night: per-night rounding would give 3+3=6, summing first gives round(6.9)=7.
	assert.Equal(t, int64(7), PriceStay(room, stay("2025-01-03", "2025-01-05")))
}

func TestWeekendHalfUnitsRoundUp(t *testing.T) {
	tests := []struct {
		base int64
		want int64
	}{
		{base: 50, want: 58},
		{base: 870, want: 1001},
		{base: 890, want: 1024},
		{base: 10, want: 12},
		{base: 100, want: 115},
	}
	for _, tt := range tests {
		room, err := rooms.NewRoom(rooms.CreateParams{ID: "r", Name: "r", BasePrice: tt.base, BaseQuantity: 1, Active: true})
		require.NoError(t, err)
		// 2025-01-03 is a Friday.
		assert.Equal(t, tt.want, PriceStay(room, stay("2025-01-03", "2025-01-04")), "base %d", tt.base)
	}
}

func TestSingleNightMatchesNightlyRate(t *testing.T) {
	room := casal(t,
		rooms.DateOverride{Date: date("2025-02-14"), Price: rooms.Ptr[int64](1777)},
	)
	start := date("2025-02-10")
	for i := 0; i < 14; i++ {
		d := start.AddDays(i)
		rate, _ := NightlyRate(room, d)
		got := PriceStay(room, daterange.DateRange{CheckIn: d, CheckOut: d.AddDays(1)})
		assert.Equal(t, int64(rate+0.5), got, d.String())
	}
}

func TestPriceStayWithoutDatesIsBasePrice(t *testing.T) {
	assert.Equal(t, int64(1000), PriceStay(casal(t), daterange.DateRange{}))
}

func TestZeroBasePriceIsPriceOnRequest(t *testing.T) {
	room, err := rooms.NewRoom(rooms.CreateParams{ID: "x", Name: "Inquire", BaseQuantity: 1, Active: true})
	require.NoError(t, err)
	assert.Zero(t, PriceStay(room, stay("2025-01-03", "2025-01-06")))
}

func TestInvalidInputs(t *testing.T) {
	room := casal(t)

	_, err := QuoteStay(room, stay("2025-01-05", "2025-01-05"))
	require.ErrorIs(t, err, daterange.ErrInvalidRange)
	assert.Zero(t, PriceStay(room, stay("2025-01-05", "2025-01-03")))

	room.Active = false
	_, err = QuoteStay(room, stay("2025-01-03", "2025-01-05"))
	require.ErrorIs(t, err, ErrRoomInactive)

	_, err = QuoteStay(nil, stay("2025-01-03", "2025-01-05"))
	require.ErrorIs(t, err, ErrRoomMissing)
}

func TestRepeatedQuotesAreStable(t *testing.T) {
	room := casal(t, rooms.DateOverride{Date: date("2025-01-06"), Price: rooms.Ptr[int64](999)})
	dr := stay("2025-01-01", "2025-01-15")
	first := PriceStay(room, dr)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, PriceStay(room, dr))
	}
	assert.Len(t, room.Overrides, 1)
}
