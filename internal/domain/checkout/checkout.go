package checkout

import (
	"errors"
	"fmt"
	"strings"

	"pousada/internal/domain/availability"
	"pousada/internal/domain/extras"
	"pousada/internal/domain/pricing"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

var (
	ErrEmptyCart         = errors.New("checkout: at least one room is required")
	ErrInvalidStay       = errors.New("checkout: stay must be at least one night")
	ErrRoomUnavailable   = errors.New("checkout: room is not available for the stay")
	ErrPackageNotOffered = errors.New("checkout: package is not offered for this room and stay")
	ErrInvalidQuantity   = errors.New("checkout: extra quantity must be positive")
	ErrExtraUnavailable  = errors.New("checkout: extra service is not available")
)

// RoomLine is one selected room. Package is optional; when set, its fixed price replaces nightly pricing
// for this line only.
type RoomLine struct {
	Room    *rooms.Room
	Package *promotions.Package
}

type ExtraLine struct {
	Service  *extras.Service
	Quantity int
}

type Cart struct {
	Stay         daterange.DateRange
	Rooms        []RoomLine
	Extras       []ExtraLine
	DiscountCode string
}

type PricedRoom struct {
	RoomID    rooms.RoomID
	RoomName  string
	PackageID promotions.PackageID
	Nights    []pricing.Night
	Total     int64
}

type PricedExtra struct {
	ServiceID extras.ServiceID
	Name      string
	Quantity  int
	UnitPrice int64
	Total     int64
}

// Summary is the full price of a cart. A rejected discount code is reported in Discount, not as an error.
type Summary struct {
	Stay                  daterange.DateRange
	Nights                int
	Rooms                 []PricedRoom
	Extras                []PricedExtra
	AccommodationSubtotal int64
	Discount              promotions.DiscountResult
	AccommodationTotal    int64
	ExtrasTotal           int64
	Total                 int64
}

// DiscountRequested reports whether the guest typed a code at all.
func (s Summary) DiscountRequested() bool {
	return s.Discount.Accepted || s.Discount.Reason != promotions.RejectNone
}

// Quote prices cart: rooms first, then the discount on the accommodation subtotal, then extras.
func Quote(cart Cart, codes []*promotions.DiscountCode) (Summary, error) {
	if cart.Stay.Validate() != nil {
		return Summary{}, ErrInvalidStay
	}
	if len(cart.Rooms) == 0 {
		return Summary{}, ErrEmptyCart
	}
	summary := Summary{
		Stay:   cart.Stay,
		Nights: cart.Stay.Nights(),
		Rooms:  make([]PricedRoom, 0, len(cart.Rooms)),
	}
	for _, line := range cart.Rooms {
		priced, err := priceRoom(line, cart.Stay)
		if err != nil {
			return Summary{}, err
		}
		summary.Rooms = append(summary.Rooms, priced)
		summary.AccommodationSubtotal += priced.Total
	}

	summary.AccommodationTotal = summary.AccommodationSubtotal
	if strings.TrimSpace(cart.DiscountCode) != "" {
		summary.Discount = promotions.ApplyDiscount(codes, cart.DiscountCode, summary.AccommodationSubtotal, cart.Stay)
		if summary.Discount.Accepted {
			summary.AccommodationTotal -= summary.Discount.Amount
		}
	}

	for _, line := range cart.Extras {
		priced, err := priceExtra(line)
		if err != nil {
			return Summary{}, err
		}
		summary.Extras = append(summary.Extras, priced)
		summary.ExtrasTotal += priced.Total
	}

	summary.Total = summary.AccommodationTotal + summary.ExtrasTotal
	return summary, nil
}

func priceRoom(line RoomLine, stay daterange.DateRange) (PricedRoom, error) {
	if line.Room == nil {
		return PricedRoom{}, fmt.Errorf("%w: missing room", ErrRoomUnavailable)
	}
	if !availability.IsAvailable(line.Room, stay) {
		return PricedRoom{}, fmt.Errorf("%w: %s", ErrRoomUnavailable, line.Room.ID)
	}
	priced := PricedRoom{RoomID: line.Room.ID, RoomName: line.Room.Name}
	if line.Package != nil {
		price, ok := promotions.SelectPackage(line.Package, line.Room.ID)
		if !ok || !line.Package.LiveOn(stay.CheckIn) {
			return PricedRoom{}, fmt.Errorf("%w: %s/%s", ErrPackageNotOffered, line.Package.ID, line.Room.ID)
		}
		priced.PackageID = line.Package.ID
		priced.Total = price
		return priced, nil
	}
	quote, err := pricing.QuoteStay(line.Room, stay)
	if err != nil {
		return PricedRoom{}, fmt.Errorf("%w: %s: %w", ErrRoomUnavailable, line.Room.ID, err)
	}
	priced.Nights = quote.Nights
	priced.Total = quote.Total
	return priced, nil
}

func priceExtra(line ExtraLine) (PricedExtra, error) {
	if line.Service == nil || !line.Service.Active {
		return PricedExtra{}, ErrExtraUnavailable
	}
	if line.Quantity <= 0 {
		return PricedExtra{}, fmt.Errorf("%w: %s", ErrInvalidQuantity, line.Service.ID)
	}
	return PricedExtra{
		ServiceID: line.Service.ID,
		Name:      line.Service.Name,
		Quantity:  line.Quantity,
		UnitPrice: line.Service.Price,
		Total:     line.Service.LineTotal(line.Quantity),
	}, nil
}
