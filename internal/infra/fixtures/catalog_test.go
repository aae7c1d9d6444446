package fixtures

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

func TestParseCatalog(t *testing.T) {
	raw := []byte(`{
		"rooms": [{"id": "casal", "name": "Casal", "base_price": 1000, "base_quantity": 2, "active": true,
			"overrides": [{"date": "2025-01-04", "closed": true}]}],
		"packages": [{"id": "carnaval", "name": "Carnaval", "start_date": "2025-02-28", "end_date": "2025-03-05",
			"room_prices": {"casal": 3200}, "no_check_in_dates": ["2025-03-01"], "active": true}],
		"discounts": [{"code": "save10", "percentage": 10, "active": true}],
		"extras": [{"id": "cafe", "name": "Café", "price": 50, "active": true}]
	}`)

	cat, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, cat.Rooms, 1)
	override, ok := rooms.ResolveOverride(cat.Rooms[0], daterange.MustParseDate("2025-01-04"))
	require.True(t, ok)
	assert.True(t, override.IsClosed())

	require.Len(t, cat.Packages, 1)
	assert.Equal(t, int64(3200), cat.Packages[0].RoomPrices["casal"])
	assert.True(t, cat.Packages[0].BlocksCheckIn(daterange.MustParseDate("2025-03-01")))

	require.Len(t, cat.Discounts, 1)
	assert.Equal(t, "SAVE10", cat.Discounts[0].Code)
	require.Len(t, cat.Extras, 1)
}

func TestParseRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{name: "room without name", raw: `{"rooms": [{"id": "x"}]}`, want: rooms.ErrNameRequired},
		{name: "inverted package window", raw: `{"packages": [{"id": "p", "start_date": "2025-02-01", "end_date": "2025-01-01"}]}`, want: promotions.ErrPackageWindow},
		{name: "discount over 100", raw: `{"discounts": [{"code": "X", "percentage": 120}]}`, want: promotions.ErrDiscountPercentage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse([]byte(`{"rooms": [{"id": "x", "name": "x", "overrides": [{"date": "not-a-date"}]}]}`))
	require.Error(t, err)
}

func TestShippedCatalogLoads(t *testing.T) {
	_, file, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(file), "..", "..", "..", "configs", "catalog.json")

	cat, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Rooms)
	assert.NotEmpty(t, cat.Extras)
}
