package rooms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pousada/internal/domain/shared/daterange"
)

var (
	jan3 = daterange.MustParseDate("2025-01-03")
	jan4 = daterange.MustParseDate("2025-01-04")
)

func newCasal(t *testing.T, overrides ...DateOverride) *Room {
	t.Helper()
	room, err := NewRoom(CreateParams{
		ID:           "casal",
		Name:         "Suíte Casal",
		BasePrice:    1000,
		BaseQuantity: 2,
		Active:       true,
		Overrides:    overrides,
	})
	require.NoError(t, err)
	return room
}

func TestNewRoomValidation(t *testing.T) {
	tests := []struct {
		name   string
		params CreateParams
		want   error
	}{
		{name: "missing id", params: CreateParams{Name: "x"}, want: ErrIDRequired},
		{name: "missing name", params: CreateParams{ID: "x"}, want: ErrNameRequired},
		{name: "negative price", params: CreateParams{ID: "x", Name: "x", BasePrice: -1}, want: ErrNegativePrice},
		{name: "negative quantity", params: CreateParams{ID: "x", Name: "x", BaseQuantity: -1}, want: ErrNegativeQuantity},
		{
			name: "duplicate override",
			params: CreateParams{ID: "x", Name: "x", Overrides: []DateOverride{
				{Date: jan3, Price: Ptr[int64](10)},
				{Date: jan3},
			}},
			want: ErrDuplicateOverride,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoom(tt.params)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResolveOverrideExactDate(t *testing.T) {
	room := newCasal(t, DateOverride{Date: jan4, Price: Ptr[int64](500)})

	o, ok := ResolveOverride(room, jan4)
	require.True(t, ok)
	assert.Equal(t, int64(500), *o.Price)

	_, ok = ResolveOverride(room, jan3)
	assert.False(t, ok)
}

func TestEmptyOverrideBehavesAsAbsent(t *testing.T) {
	room := newCasal(t)
	room.Overrides[jan3] = DateOverride{Date: jan3}

	_, ok := ResolveOverride(room, jan3)
	assert.False(t, ok)
	assert.Equal(t, int64(1000), EffectivePrice(room, jan3))
	assert.Equal(t, 2, EffectiveQuantity(room, jan3))
}

func TestSetOverrideEmptyClearsDate(t *testing.T) {
	room := newCasal(t, DateOverride{Date: jan3, Closed: Ptr(true)})

	require.NoError(t, room.SetOverride(DateOverride{Date: jan3}))
	assert.NotContains(t, room.Overrides, jan3)
}

func TestSetOverrideRejectsNegatives(t *testing.T) {
	room := newCasal(t)
	require.ErrorIs(t, room.SetOverride(DateOverride{Date: jan3, Price: Ptr[int64](-5)}), ErrNegativeOverride)
	require.ErrorIs(t, room.SetOverride(DateOverride{Price: Ptr[int64](5)}), ErrOverrideDate)
}

func TestReplaceOverridesKeepsStateOnError(t *testing.T) {
	room := newCasal(t, DateOverride{Date: jan3, Closed: Ptr(true)})

	err := room.ReplaceOverrides([]DateOverride{
		{Date: jan4, Price: Ptr[int64](10)},
		{Date: jan4, Price: Ptr[int64](20)},
	})
	require.ErrorIs(t, err, ErrDuplicateOverride)
	assert.Contains(t, room.Overrides, jan3)
	assert.NotContains(t, room.Overrides, jan4)
}

func TestCloneIsDeep(t *testing.T) {
	room := newCasal(t, DateOverride{Date: jan3, Price: Ptr[int64](700)})
	clone := room.Clone()

	*room.Overrides[jan3].Price = 1
	require.NoError(t, room.SetOverride(DateOverride{Date: jan4, Closed: Ptr(true)}))

	assert.Equal(t, int64(700), *clone.Overrides[jan3].Price)
	assert.NotContains(t, clone.Overrides, jan4)
}

func TestSortedOverrides(t *testing.T) {
	room := newCasal(t,
		DateOverride{Date: jan4, Closed: Ptr(true)},
		DateOverride{Date: jan3, Closed: Ptr(true)},
	)
	sorted := room.SortedOverrides()
	require.Len(t, sorted, 2)
	assert.Equal(t, jan3, sorted[0].Date)
	assert.Equal(t, jan4, sorted[1].Date)
}
