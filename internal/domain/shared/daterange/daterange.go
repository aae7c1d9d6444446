package daterange

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

const isoLayout = "2006-01-02"

var (
	ErrInvalidRange = errors.New("daterange: checkout must be after checkin")
	ErrInvalidDate  = errors.New("daterange: invalid calendar date")
)

// Date is a calendar day without time-of-day or zone, stored as days since 1970-01-01.
// The zero value is "no date".
type Date struct {
	days int64
	set  bool
}

// NewDate builds a date from civil fields; out-of-range fields are normalized like time.Date.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{days: t.Unix() / secondsPerDay, set: true}
}

// DateOf keeps the calendar fields of t as seen in its own location and drops the rest.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate reads a YYYY-MM-DD string.
func ParseDate(raw string) (Date, error) {
	t, err := time.Parse(isoLayout, raw)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate that panics; meant for fixtures and tests.
func MustParseDate(raw string) Date {
	d, err := ParseDate(raw)
	if err != nil {
		panic(err)
	}
	return d
}

const secondsPerDay = 24 * 60 * 60

func (d Date) IsZero() bool { return !d.set }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	if !d.set {
		return time.Time{}
	}
	return time.Unix(d.days*secondsPerDay, 0).UTC()
}

func (d Date) String() string {
	if !d.set {
		return ""
	}
	return d.Time().Format(isoLayout)
}

func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

func (d Date) AddDays(n int) Date {
	if !d.set {
		return d
	}
	return Date{days: d.days + int64(n), set: true}
}

// DaysUntil returns other minus d in days.
func (d Date) DaysUntil(other Date) int { return int(other.days - d.days) }

func (d Date) Before(other Date) bool { return d.days < other.days }
func (d Date) After(other Date) bool  { return d.days > other.days }
func (d Date) Equal(other Date) bool  { return d == other }

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange represents a half-open interval [checkIn, checkOut)
type DateRange struct {
	CheckIn  Date
	CheckOut Date
}

func New(checkIn, checkOut Date) (DateRange, error) {
	dr := DateRange{CheckIn: checkIn, CheckOut: checkOut}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

// IsZero reports that no dates were chosen at all.
func (dr DateRange) IsZero() bool {
	return dr.CheckIn.IsZero() && dr.CheckOut.IsZero()
}

func (dr DateRange) Validate() error {
	if dr.CheckOut.IsZero() || dr.CheckIn.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights is zero for any range that does not validate.
func (dr DateRange) Nights() int {
	if dr.Validate() != nil {
		return 0
	}
	return dr.CheckIn.DaysUntil(dr.CheckOut)
}

// Days yields checkIn, checkIn+1, ..., checkOut-1. Invalid ranges yield nothing.
func (dr DateRange) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		n := dr.Nights()
		for i := 0; i < n; i++ {
			if !yield(dr.CheckIn.AddDays(i)) {
				return
			}
		}
	}
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

func (dr DateRange) Contains(other DateRange) bool {
	return !other.CheckIn.Before(dr.CheckIn) && !other.CheckOut.After(dr.CheckOut)
}

func (dr DateRange) ContainsDate(d Date) bool {
	return !d.Before(dr.CheckIn) && d.Before(dr.CheckOut)
}

func (dr DateRange) Adjacent(other DateRange) bool {
	return dr.CheckOut.Equal(other.CheckIn) || dr.CheckIn.Equal(other.CheckOut)
}

func (dr DateRange) String() string {
	return dr.CheckIn.String() + "/" + dr.CheckOut.String()
}
