package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pousada/internal/domain/promotions"
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
		BaseQuantity: 2,
		Active:       true,
		Overrides:    overrides,
	})
	require.NoError(t, err)
	return room
}

func TestWithoutDatesUsesBaseTerms(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		quantity int
		active   bool
		want     bool
	}{
		{name: "sellable", price: 1000, quantity: 2, active: true, want: true},
		{name: "price on request", price: 0, quantity: 2, active: true, want: false},
		{name: "no units", price: 1000, quantity: 0, active: true, want: false},
		{name: "inactive", price: 1000, quantity: 2, active: false, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, err := rooms.NewRoom(rooms.CreateParams{ID: "r", Name: "r", BasePrice: tt.price, BaseQuantity: tt.quantity, Active: tt.active})
			require.NoError(t, err)
			assert.Equal(t, tt.want, IsAvailable(room, daterange.DateRange{}))
		})
	}
}

func TestClosedNightVetoesWholeRange(t *testing.T) {
	room := casal(t, rooms.DateOverride{
		Date:   date("2025-01-04"),
		Price:  rooms.Ptr[int64](500),
		Closed: rooms.Ptr(true),
	})

	assert.False(t, IsAvailable(room, stay("2025-01-03", "2025-01-05")))
	assert.True(t, IsAvailable(room, stay("2025-01-03", "2025-01-04")))

	blocked, verdict, found := FirstBlockedNight(room, stay("2025-01-02", "2025-01-06"))
	require.True(t, found)
	assert.Equal(t, date("2025-01-04"), blocked)
	assert.Equal(t, NightClosed, verdict)
}

func TestZeroPriceOrQuantityVetoes(t *testing.T) {
	tests := []struct {
		name     string
		override rooms.DateOverride
		verdict  NightVerdict
	}{
		{name: "zero price", override: rooms.DateOverride{Date: date("2025-02-11"), Price: rooms.Ptr[int64](0)}, verdict: NightNoPrice},
		{name: "zero quantity", override: rooms.DateOverride{Date: date("2025-02-11"), AvailableQuantity: rooms.Ptr(0)}, verdict: NightSoldOut},
		{name: "closed false is open", override: rooms.DateOverride{Date: date("2025-02-11"), Closed: rooms.Ptr(false)}, verdict: NightOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := casal(t, tt.override)
			assert.Equal(t, tt.verdict, NightStatus(room, date("2025-02-11")))
			assert.Equal(t, tt.verdict == NightOpen, IsAvailable(room, stay("2025-02-10", "2025-02-13")))
		})
	}
}

func TestOverrideCanOpenZeroBaseRoom(t *testing.T) {
	room, err := rooms.NewRoom(rooms.CreateParams{
		ID:           "chale",
		Name:         "Chalé",
		BasePrice:    0,
		BaseQuantity: 0,
		Active:       true,
		Overrides: []rooms.DateOverride{
			{Date: date("2025-07-01"), Price: rooms.Ptr[int64](900), AvailableQuantity: rooms.Ptr(1)},
		},
	})
	require.NoError(t, err)

	assert.True(t, IsAvailable(room, stay("2025-07-01", "2025-07-02")))
	assert.False(t, IsAvailable(room, stay("2025-07-01", "2025-07-03")))
}

func TestCheckoutDayIsNotChecked(t *testing.T) {
	room := casal(t, rooms.DateOverride{Date: date("2025-01-05"), Closed: rooms.Ptr(true)})
	assert.True(t, IsAvailable(room, stay("2025-01-03", "2025-01-05")))
}

func TestInvalidRangeIsUnavailable(t *testing.T) {
	room := casal(t)
	assert.False(t, IsAvailable(room, stay("2025-01-05", "2025-01-05")))
	assert.False(t, IsAvailable(room, stay("2025-01-05", "2025-01-01")))
	assert.False(t, IsAvailable(room, daterange.DateRange{CheckIn: date("2025-01-05")}))
}

func TestEvaluationDoesNotMutateRoom(t *testing.T) {
	room := casal(t, rooms.DateOverride{Date: date("2025-01-04"), Closed: rooms.Ptr(true)})
	before := room.Clone()
	for i := 0; i < 3; i++ {
		IsAvailable(room, stay("2025-01-01", "2025-01-10"))
	}
	assert.Equal(t, before, room)
}

func TestSelectionRestrictions(t *testing.T) {
	room := casal(t,
		rooms.DateOverride{Date: date("2025-03-01"), NoCheckIn: rooms.Ptr(true)},
		rooms.DateOverride{Date: date("2025-03-04"), NoCheckOut: rooms.Ptr(true)},
	)
	pkg := &promotions.Package{
		ID:              "carnaval",
		Active:          true,
		NoCheckInDates:  promotions.DateSet(date("2025-03-02")),
		NoCheckOutDates: promotions.DateSet(date("2025-03-05")),
	}
	pkgs := []*promotions.Package{pkg}

	tests := []struct {
		name string
		dr   daterange.DateRange
		want error
	}{
		{name: "room blocks check-in", dr: stay("2025-03-01", "2025-03-03"), want: ErrCheckInRestricted},
		{name: "package blocks check-in", dr: stay("2025-03-02", "2025-03-03"), want: ErrCheckInRestricted},
		{name: "room blocks check-out", dr: stay("2025-03-03", "2025-03-04"), want: ErrCheckOutRestricted},
		{name: "package blocks check-out", dr: stay("2025-03-03", "2025-03-05"), want: ErrCheckOutRestricted},
		{name: "restricted dates inside the stay are fine", dr: stay("2025-02-28", "2025-03-06"), want: nil},
		{name: "inverted", dr: stay("2025-03-06", "2025-03-03"), want: daterange.ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelection(room, pkgs, tt.dr)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}

	// Restriction flags alone never affect sellability.
	assert.True(t, IsAvailable(room, stay("2025-03-01", "2025-03-05")))
}

func TestCalendar(t *testing.T) {
	room := casal(t,
		rooms.DateOverride{Date: date("2025-01-04"), Closed: rooms.Ptr(true)},
		rooms.DateOverride{Date: date("2025-01-06"), Price: rooms.Ptr[int64](700), AvailableQuantity: rooms.Ptr(1)},
	)
	pkg := &promotions.Package{
		ID:         "verao",
		Active:     true,
		StartDate:  date("2025-01-05"),
		EndDate:    date("2025-01-06"),
		RoomPrices: map[rooms.RoomID]int64{"casal": 2500},
	}

	days := Calendar(room, []*promotions.Package{pkg}, stay("2025-01-03", "2025-01-07"))
	require.Len(t, days, 4)

	assert.Equal(t, int64(1150), days[0].Rate)
	assert.Equal(t, NightOpen, days[0].Verdict)
	assert.Empty(t, days[0].Packages)
	assert.Equal(t, NightClosed, days[1].Verdict)
	assert.Equal(t, []promotions.PackageID{"verao"}, days[2].Packages)
	assert.Equal(t, int64(700), days[3].Rate)
	assert.Equal(t, 1, days[3].Quantity)
}

func TestCalendarIsBounded(t *testing.T) {
	days := Calendar(casal(t), nil, stay("2025-01-01", "2027-01-01"))
	assert.Len(t, days, MaxCalendarDays)
}
