package reservation

import (
	"errors"
	"time"

	"pousada/internal/domain/shared/daterange"
)

var ErrCheckInInPast = errors.New("reservation: check-in date is in the past")

// ValidateStayStart rejects stays starting before today's calendar date.
func ValidateStayStart(dr daterange.DateRange, now time.Time) error {
	if dr.CheckIn.Before(daterange.DateOf(now)) {
		return ErrCheckInInPast
	}
	return nil
}
