package rooms

import (
	"context"

	"pousada/internal/app/dto"
	"pousada/internal/app/handlers/support"
	"pousada/internal/app/queries"
	"pousada/internal/app/uow"
	"pousada/internal/domain/availability"
	"pousada/internal/domain/checkout"
	"pousada/internal/domain/pricing"
	"pousada/internal/domain/shared/daterange"
)

const searchRoomsKey = "rooms.search"

// SearchRoomsQuery lists active rooms. Leaving both dates empty prices every room at its base price.
type SearchRoomsQuery struct {
	CheckIn  daterange.Date
	CheckOut daterange.Date
}

func (q SearchRoomsQuery) Key() string { return searchRoomsKey }

func (q SearchRoomsQuery) Validate() error {
	stay := daterange.DateRange{CheckIn: q.CheckIn, CheckOut: q.CheckOut}
	if !stay.IsZero() && stay.Validate() != nil {
		return checkout.ErrInvalidStay
	}
	return nil
}

type SearchRoomsHandler struct {
	UoWFactory uow.UoWFactory
	Currency   string
}

func (h *SearchRoomsHandler) Handle(ctx context.Context, q SearchRoomsQuery) (dto.RoomCollection, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.RoomCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	all, err := unit.Rooms().List(ctx)
	if err != nil {
		return dto.RoomCollection{}, err
	}
	stay := daterange.DateRange{CheckIn: q.CheckIn, CheckOut: q.CheckOut}
	out := dto.RoomCollection{
		CheckIn:  q.CheckIn.String(),
		CheckOut: q.CheckOut.String(),
		Items:    make([]dto.RoomSummary, 0, len(all)),
	}
	for _, room := range all {
		if !room.Active {
			continue
		}
		out.Items = append(out.Items, dto.RoomSummary{
			ID:           string(room.ID),
			Name:         room.Name,
			BasePrice:    room.BasePrice,
			BaseQuantity: room.BaseQuantity,
			Available:    availability.IsAvailable(room, stay),
			Nights:       stay.Nights(),
			StayPrice:    pricing.PriceStay(room, stay),
			Currency:     h.Currency,
		})
	}
	return out, nil
}

var _ queries.Handler[SearchRoomsQuery, dto.RoomCollection] = (*SearchRoomsHandler)(nil)
