package ginserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"pousada/internal/app/dto"
	packagesapp "pousada/internal/app/handlers/packages"
	roomsapp "pousada/internal/app/handlers/rooms"
	"pousada/internal/app/queries"
	"pousada/internal/domain/shared/daterange"
)

const defaultCalendarDays = 30

type RoomsHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
	Now     func() time.Time
}

func (h RoomsHandler) Search(c *gin.Context) {
	checkIn, err := queryDate(c, "check_in")
	if err != nil {
		badRequest(c, err)
		return
	}
	checkOut, err := queryDate(c, "check_out")
	if err != nil {
		badRequest(c, err)
		return
	}
	q := roomsapp.SearchRoomsQuery{CheckIn: checkIn, CheckOut: checkOut}
	result, err := queries.Ask[roomsapp.SearchRoomsQuery, dto.RoomCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Calendar defaults to the next 30 days when from/to are omitted.
func (h RoomsHandler) Calendar(c *gin.Context) {
	from, err := queryDate(c, "from")
	if err != nil {
		badRequest(c, err)
		return
	}
	to, err := queryDate(c, "to")
	if err != nil {
		badRequest(c, err)
		return
	}
	if from.IsZero() {
		from = daterange.DateOf(h.now())
	}
	if to.IsZero() {
		to = from.AddDays(defaultCalendarDays)
	}
	q := roomsapp.GetCalendarQuery{RoomID: c.Param("id"), From: from, To: to}
	result, err := queries.Ask[roomsapp.GetCalendarQuery, dto.Calendar](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h RoomsHandler) Packages(c *gin.Context) {
	result, err := queries.Ask[packagesapp.ListPackagesQuery, dto.PackageCollection](c.Request.Context(), h.Queries, packagesapp.ListPackagesQuery{})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h RoomsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func queryDate(c *gin.Context, name string) (daterange.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return daterange.Date{}, nil
	}
	d, err := daterange.ParseDate(raw)
	if err != nil {
		return daterange.Date{}, fmt.Errorf("%s must be a YYYY-MM-DD date: %w", name, err)
	}
	return d, nil
}

func pathDate(c *gin.Context, name string) (daterange.Date, error) {
	d, err := daterange.ParseDate(c.Param(name))
	if err != nil {
		return daterange.Date{}, fmt.Errorf("%s must be a YYYY-MM-DD date: %w", name, err)
	}
	return d, nil
}

var _ RoomsHTTP = RoomsHandler{}
