package rooms

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"pousada/internal/domain/shared/daterange"
)

var (
	ErrRoomNotFound      = errors.New("rooms: room not found")
	ErrIDRequired        = errors.New("rooms: id is required")
	ErrNameRequired      = errors.New("rooms: name is required")
	ErrNegativePrice     = errors.New("rooms: price must be non-negative")
	ErrNegativeQuantity  = errors.New("rooms: quantity must be non-negative")
	ErrOverrideDate      = errors.New("rooms: override date is required")
	ErrDuplicateOverride = errors.New("rooms: more than one override for the same date")
)

type RoomID string

// Room is a bookable accommodation type with per-date exceptions to its base terms.
type Room struct {
	ID           RoomID
	Name         string
	BasePrice    int64
	BaseQuantity int
	Active       bool
	Overrides    map[daterange.Date]DateOverride
	Version      int64
}

type Repository interface {
	ByID(ctx context.Context, id RoomID) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Save(ctx context.Context, room *Room) error
}

type CreateParams struct {
	ID           RoomID
	Name         string
	BasePrice    int64
	BaseQuantity int
	Active       bool
	Overrides    []DateOverride
}

func NewRoom(params CreateParams) (*Room, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if params.BasePrice < 0 {
		return nil, ErrNegativePrice
	}
	if params.BaseQuantity < 0 {
		return nil, ErrNegativeQuantity
	}
	room := &Room{
		ID:           params.ID,
		Name:         strings.TrimSpace(params.Name),
		BasePrice:    params.BasePrice,
		BaseQuantity: params.BaseQuantity,
		Active:       params.Active,
	}
	if err := room.ReplaceOverrides(params.Overrides); err != nil {
		return nil, err
	}
	return room, nil
}

// SetOverride stores o for its date, replacing any previous rule. Empty overrides clear the date.
func (r *Room) SetOverride(o DateOverride) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.IsEmpty() {
		r.ClearOverride(o.Date)
		return nil
	}
	if r.Overrides == nil {
		r.Overrides = make(map[daterange.Date]DateOverride)
	}
	r.Overrides[o.Date] = o
	return nil
}

// ClearOverride reports whether an override existed for date.
func (r *Room) ClearOverride(date daterange.Date) bool {
	if _, ok := r.Overrides[date]; !ok {
		return false
	}
	delete(r.Overrides, date)
	return true
}

// ReplaceOverrides swaps the whole override set. Nothing changes when validation fails.
func (r *Room) ReplaceOverrides(list []DateOverride) error {
	next := make(map[daterange.Date]DateOverride, len(list))
	seen := make(map[daterange.Date]struct{}, len(list))
	for _, o := range list {
		if err := o.Validate(); err != nil {
			return err
		}
		if _, dup := seen[o.Date]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateOverride, o.Date)
		}
		seen[o.Date] = struct{}{}
		if o.IsEmpty() {
			continue
		}
		next[o.Date] = o
	}
	r.Overrides = next
	return nil
}

// SortedOverrides returns the overrides ordered by date.
func (r *Room) SortedOverrides() []DateOverride {
	out := make([]DateOverride, 0, len(r.Overrides))
	for _, o := range r.Overrides {
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b DateOverride) int {
		return b.Date.DaysUntil(a.Date)
	})
	return out
}

// Clone returns a deep copy of the room and its overrides.
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Overrides = make(map[daterange.Date]DateOverride, len(r.Overrides))
	for date, o := range r.Overrides {
		clone.Overrides[date] = o.clone()
	}
	return &clone
}
