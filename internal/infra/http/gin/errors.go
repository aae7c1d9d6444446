package ginserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"pousada/internal/app/commands"
	"pousada/internal/app/handlers/admin"
	checkoutapp "pousada/internal/app/handlers/checkout"
	"pousada/internal/app/handlers/reservations"
	roomsapp "pousada/internal/app/handlers/rooms"
	"pousada/internal/app/history"
	"pousada/internal/app/middleware"
	"pousada/internal/app/policies"
	"pousada/internal/app/queries"
	"pousada/internal/domain/availability"
	"pousada/internal/domain/checkout"
	"pousada/internal/domain/extras"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/reservation"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
	"pousada/internal/domain/shared/money"
	"pousada/internal/infra/db/mongo"
	"pousada/internal/infra/storage/memory"
)

type errorMapping struct {
	status int
	code   string
	errs   []error
}

// errorTable is checked in order; the first match wins.
var errorTable = []errorMapping{
	{http.StatusNotFound, "not_found", []error{
		rooms.ErrRoomNotFound,
		promotions.ErrPackageNotFound,
		promotions.ErrDiscountNotFound,
		extras.ErrServiceNotFound,
		reservation.ErrReservationNotFound,
		admin.ErrOverrideNotFound,
	}},
	{http.StatusConflict, "conflict", []error{
		policies.ErrInsufficientInventory,
		policies.ErrHoldExists,
		reservation.ErrInvalidState,
		middleware.ErrIdempotencyConflict,
		history.ErrNothingToUndo,
		history.ErrNothingToRedo,
		memory.ErrVersionConflict,
		mongo.ErrConcurrentUpdate,
	}},
	{http.StatusUnprocessableEntity, "unavailable", []error{
		checkout.ErrRoomUnavailable,
		checkout.ErrPackageNotOffered,
		checkout.ErrExtraUnavailable,
		availability.ErrCheckInRestricted,
		availability.ErrCheckOutRestricted,
		reservations.ErrDiscountRejected,
		reservation.ErrCheckInInPast,
	}},
	{http.StatusBadRequest, "invalid_request", []error{
		checkout.ErrInvalidStay,
		checkout.ErrEmptyCart,
		checkout.ErrInvalidQuantity,
		daterange.ErrInvalidRange,
		daterange.ErrInvalidDate,
		roomsapp.ErrCalendarWindow,
		checkoutapp.ErrCodeRequired,
		reservation.ErrGuestRequired,
		rooms.ErrOverrideDate,
		rooms.ErrNegativeOverride,
		rooms.ErrDuplicateOverride,
		promotions.ErrDiscountCode,
		promotions.ErrDiscountPercentage,
		promotions.ErrDiscountMinNights,
		promotions.ErrDiscountWindow,
		money.ErrInvalidCurrency,
	}},
	{http.StatusServiceUnavailable, "unavailable", []error{
		commands.ErrHandlerNotFound,
		queries.ErrHandlerNotFound,
		commands.ErrNilBus,
		queries.ErrNilBus,
	}},
	{http.StatusGatewayTimeout, "timeout", []error{
		context.DeadlineExceeded,
	}},
}

func statusFor(err error) (int, string) {
	for _, m := range errorTable {
		for _, target := range m.errs {
			if errors.Is(err, target) {
				return m.status, m.code
			}
		}
	}
	return http.StatusInternalServerError, "internal"
}

// writeError maps err to a status. Unmapped errors are logged and hidden from the client.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status, code := statusFor(err)
	_ = c.Error(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		}
		c.JSON(status, gin.H{"error": "internal error", "code": code})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_request"})
}
