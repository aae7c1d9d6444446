package promotions

import (
	"context"
	"errors"
	"strings"

	"pousada/internal/domain/shared/daterange"
	"pousada/internal/domain/shared/money"
)

var (
	ErrDiscountNotFound   = errors.New("promotions: discount code not found")
	ErrDiscountCode       = errors.New("promotions: discount code is required")
	ErrDiscountPercentage = errors.New("promotions: percentage must be between 0 and 100")
	ErrDiscountMinNights  = errors.New("promotions: min nights must be non-negative")
	ErrDiscountWindow     = errors.New("promotions: discount end date must not precede start date")
)

// DiscountCode is a percentage off the accommodation subtotal. Extras are never discounted.
type DiscountCode struct {
	Code               string
	Percentage         float64
	Active             bool
	StartDate          daterange.Date
	EndDate            daterange.Date
	MinNights          int
	FullPeriodRequired bool
}

type DiscountRepository interface {
	ByCode(ctx context.Context, code string) (*DiscountCode, error)
	List(ctx context.Context) ([]*DiscountCode, error)
	Save(ctx context.Context, code *DiscountCode) error
	Delete(ctx context.Context, code string) error
}

// NormalizeCode is the lookup form of a code: trimmed and uppercased.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (d *DiscountCode) Validate() error {
	if NormalizeCode(d.Code) == "" {
		return ErrDiscountCode
	}
	if d.Percentage < 0 || d.Percentage > 100 {
		return ErrDiscountPercentage
	}
	if d.MinNights < 0 {
		return ErrDiscountMinNights
	}
	if !d.StartDate.IsZero() && !d.EndDate.IsZero() && d.EndDate.Before(d.StartDate) {
		return ErrDiscountWindow
	}
	return nil
}

func (d *DiscountCode) Clone() *DiscountCode {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

type RejectReason string

const (
	RejectNone               RejectReason = ""
	RejectNotFound           RejectReason = "NOT_FOUND"
	RejectInvalidStay        RejectReason = "INVALID_STAY"
	RejectMinNights          RejectReason = "MIN_NIGHTS"
	RejectOutOfWindow        RejectReason = "OUT_OF_WINDOW"
	RejectFullPeriodRequired RejectReason = "FULL_PERIOD_REQUIRED"
)

type DiscountResult struct {
	Accepted bool
	Amount   int64
	Reason   RejectReason
	Code     *DiscountCode
}

func rejected(reason RejectReason, code *DiscountCode) DiscountResult {
	return DiscountResult{Reason: reason, Code: code}
}

// FindCode looks up an active code, ignoring case.
func FindCode(codes []*DiscountCode, code string) (*DiscountCode, bool) {
	want := NormalizeCode(code)
	if want == "" {
		return nil, false
	}
	for _, c := range codes {
		if c == nil || NormalizeCode(c.Code) != want {
			continue
		}
		if !c.Active {
			return nil, false
		}
		return c, true
	}
	return nil, false
}

// ApplyDiscount checks code against the stay and prices it against the accommodation subtotal.
func ApplyDiscount(codes []*DiscountCode, code string, subtotal int64, dr daterange.DateRange) DiscountResult {
	dc, ok := FindCode(codes, code)
	if !ok {
		return rejected(RejectNotFound, nil)
	}
	if reason := dc.Eligibility(dr); reason != RejectNone {
		return rejected(reason, dc)
	}
	return DiscountResult{
		Accepted: true,
		Amount:   money.PercentOf(subtotal, dc.Percentage),
		Code:     dc,
	}
}

// Eligibility returns RejectNone when the stay qualifies for the code.
// The window is compared against the stay dates, never against today.
func (d *DiscountCode) Eligibility(dr daterange.DateRange) RejectReason {
	if dr.Validate() != nil {
		return RejectInvalidStay
	}
	if d.MinNights > 0 && dr.Nights() < d.MinNights {
		return RejectMinNights
	}
	hasStart, hasEnd := !d.StartDate.IsZero(), !d.EndDate.IsZero()
	if d.FullPeriodRequired && hasStart && hasEnd {
		if dr.CheckIn.Before(d.StartDate) || dr.CheckOut.After(d.EndDate) {
			return RejectFullPeriodRequired
		}
		return RejectNone
	}
	if hasStart && dr.CheckIn.Before(d.StartDate) {
		return RejectOutOfWindow
	}
	if hasEnd && dr.CheckOut.After(d.EndDate) {
		return RejectOutOfWindow
	}
	return RejectNone
}
