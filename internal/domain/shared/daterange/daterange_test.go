package daterange

import (
	"encoding/json"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOfDropsTimeOfDay(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	late := time.Date(2025, time.January, 3, 23, 30, 0, 0, saoPaulo)
	early := time.Date(2025, time.January, 3, 0, 5, 0, 0, time.UTC)

	assert.Equal(t, DateOf(late), DateOf(early))
	assert.Equal(t, "2025-01-03", DateOf(late).String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-04")
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, d.Weekday())

	_, err = ParseDate("04/01/2025")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestDaysIteratesHalfOpenRange(t *testing.T) {
	dr, err := New(MustParseDate("2025-01-30"), MustParseDate("2025-02-02"))
	require.NoError(t, err)

	got := slices.Collect(dr.Days())
	want := []Date{
		MustParseDate("2025-01-30"),
		MustParseDate("2025-01-31"),
		MustParseDate("2025-02-01"),
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 3, dr.Nights())
}

func TestInvalidRangesNeverIterate(t *testing.T) {
	tests := []struct {
		name string
		dr   DateRange
	}{
		{name: "same day", dr: DateRange{CheckIn: MustParseDate("2025-03-10"), CheckOut: MustParseDate("2025-03-10")}},
		{name: "inverted", dr: DateRange{CheckIn: MustParseDate("2025-03-10"), CheckOut: MustParseDate("2025-03-08")}},
		{name: "missing checkout", dr: DateRange{CheckIn: MustParseDate("2025-03-10")}},
		{name: "zero", dr: DateRange{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.dr.Validate(), ErrInvalidRange)
			assert.Zero(t, tt.dr.Nights())
			assert.Empty(t, slices.Collect(tt.dr.Days()))
		})
	}
}

func TestDaysAcrossDaylightSavingChange(t *testing.T) {
	dr := DateRange{CheckIn: MustParseDate("2025-03-08"), CheckOut: MustParseDate("2025-03-11")}
	assert.Equal(t, 3, dr.Nights())
	assert.Len(t, slices.Collect(dr.Days()), 3)
}

func TestContainsAndOverlaps(t *testing.T) {
	june := DateRange{CheckIn: MustParseDate("2025-06-01"), CheckOut: MustParseDate("2025-06-30")}
	inside := DateRange{CheckIn: MustParseDate("2025-06-10"), CheckOut: MustParseDate("2025-06-15")}
	straddling := DateRange{CheckIn: MustParseDate("2025-05-30"), CheckOut: MustParseDate("2025-06-05")}

	assert.True(t, june.Contains(inside))
	assert.False(t, june.Contains(straddling))
	assert.True(t, june.Overlaps(straddling))
	assert.True(t, june.ContainsDate(MustParseDate("2025-06-01")))
	assert.False(t, june.ContainsDate(MustParseDate("2025-06-30")))
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Day Date `json:"day"`
	}
	raw, err := json.Marshal(payload{Day: MustParseDate("2025-06-10")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"2025-06-10"}`, string(raw))

	var decoded payload
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, MustParseDate("2025-06-10"), decoded.Day)
}
