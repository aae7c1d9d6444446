package rooms

import (
	"context"
	"errors"

	"pousada/internal/app/dto"
	"pousada/internal/app/handlers/support"
	"pousada/internal/app/queries"
	"pousada/internal/app/uow"
	"pousada/internal/domain/availability"
	domainrooms "pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

const getCalendarKey = "rooms.calendar"

var ErrCalendarWindow = errors.New("rooms: calendar needs from before to")

type GetCalendarQuery struct {
	RoomID string
	From   daterange.Date
	To     daterange.Date
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

func (q GetCalendarQuery) Validate() error {
	if (daterange.DateRange{CheckIn: q.From, CheckOut: q.To}).Validate() != nil {
		return ErrCalendarWindow
	}
	return nil
}

type GetCalendarHandler struct {
	UoWFactory uow.UoWFactory
	Currency   string
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Calendar{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	room, err := unit.Rooms().ByID(ctx, domainrooms.RoomID(q.RoomID))
	if err != nil {
		return dto.Calendar{}, err
	}
	packages, err := support.ActivePackages(ctx, unit)
	if err != nil {
		return dto.Calendar{}, err
	}
	days := availability.Calendar(room, packages, daterange.DateRange{CheckIn: q.From, CheckOut: q.To})
	return dto.MapCalendar(room.ID, h.Currency, days), nil
}

var _ queries.Handler[GetCalendarQuery, dto.Calendar] = (*GetCalendarHandler)(nil)
