package mongo

import (
	"pousada/internal/domain/extras"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

// Dates are stored as YYYY-MM-DD strings; an empty string is "no date".

func dateString(d daterange.Date) string { return d.String() }

func parseDate(raw string) (daterange.Date, error) {
	if raw == "" {
		return daterange.Date{}, nil
	}
	return daterange.ParseDate(raw)
}

type overrideDocument struct {
	Date              string `bson:"date"`
	Price             *int64 `bson:"price,omitempty"`
	AvailableQuantity *int   `bson:"available_quantity,omitempty"`
	Closed            *bool  `bson:"closed,omitempty"`
	NoCheckIn         *bool  `bson:"no_check_in,omitempty"`
	NoCheckOut        *bool  `bson:"no_check_out,omitempty"`
}

type roomDocument struct {
	ID           string             `bson:"_id"`
	Name         string             `bson:"name"`
	BasePrice    int64              `bson:"base_price"`
	BaseQuantity int                `bson:"base_quantity"`
	Active       bool               `bson:"active"`
	Overrides    []overrideDocument `bson:"overrides"`
	Version      int64              `bson:"version"`
}

func newRoomDocument(r *rooms.Room) roomDocument {
	doc := roomDocument{
		ID:           string(r.ID),
		Name:         r.Name,
		BasePrice:    r.BasePrice,
		BaseQuantity: r.BaseQuantity,
		Active:       r.Active,
		Overrides:    make([]overrideDocument, 0, len(r.Overrides)),
		Version:      r.Version,
	}
	for _, o := range r.SortedOverrides() {
		doc.Overrides = append(doc.Overrides, overrideDocument{
			Date:              dateString(o.Date),
			Price:             o.Price,
			AvailableQuantity: o.AvailableQuantity,
			Closed:            o.Closed,
			NoCheckIn:         o.NoCheckIn,
			NoCheckOut:        o.NoCheckOut,
		})
	}
	return doc
}

func (d roomDocument) toAggregate() (*rooms.Room, error) {
	overrides := make([]rooms.DateOverride, 0, len(d.Overrides))
	for _, o := range d.Overrides {
		date, err := parseDate(o.Date)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, rooms.DateOverride{
			Date:              date,
			Price:             o.Price,
			AvailableQuantity: o.AvailableQuantity,
			Closed:            o.Closed,
			NoCheckIn:         o.NoCheckIn,
			NoCheckOut:        o.NoCheckOut,
		})
	}
	room, err := rooms.NewRoom(rooms.CreateParams{
		ID:           rooms.RoomID(d.ID),
		Name:         d.Name,
		BasePrice:    d.BasePrice,
		BaseQuantity: d.BaseQuantity,
		Active:       d.Active,
		Overrides:    overrides,
	})
	if err != nil {
		return nil, err
	}
	room.Version = d.Version
	return room, nil
}

type packageDocument struct {
	ID              string           `bson:"_id"`
	Name            string           `bson:"name"`
	StartDate       string           `bson:"start_date"`
	EndDate         string           `bson:"end_date"`
	RoomPrices      map[string]int64 `bson:"room_prices"`
	NoCheckInDates  []string         `bson:"no_check_in_dates"`
	NoCheckOutDates []string         `bson:"no_check_out_dates"`
	Active          bool             `bson:"active"`
}

func newPackageDocument(p *promotions.Package) packageDocument {
	doc := packageDocument{
		ID:         string(p.ID),
		Name:       p.Name,
		StartDate:  dateString(p.StartDate),
		EndDate:    dateString(p.EndDate),
		RoomPrices: make(map[string]int64, len(p.RoomPrices)),
		Active:     p.Active,
	}
	for id, price := range p.RoomPrices {
		doc.RoomPrices[string(id)] = price
	}
	for d := range p.NoCheckInDates {
		doc.NoCheckInDates = append(doc.NoCheckInDates, dateString(d))
	}
	for d := range p.NoCheckOutDates {
		doc.NoCheckOutDates = append(doc.NoCheckOutDates, dateString(d))
	}
	return doc
}

func (d packageDocument) toAggregate() (*promotions.Package, error) {
	start, err := parseDate(d.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(d.EndDate)
	if err != nil {
		return nil, err
	}
	noIn, err := parseDateSet(d.NoCheckInDates)
	if err != nil {
		return nil, err
	}
	noOut, err := parseDateSet(d.NoCheckOutDates)
	if err != nil {
		return nil, err
	}
	pkg := &promotions.Package{
		ID:              promotions.PackageID(d.ID),
		Name:            d.Name,
		StartDate:       start,
		EndDate:         end,
		RoomPrices:      make(map[rooms.RoomID]int64, len(d.RoomPrices)),
		NoCheckInDates:  noIn,
		NoCheckOutDates: noOut,
		Active:          d.Active,
	}
	for id, price := range d.RoomPrices {
		pkg.RoomPrices[rooms.RoomID(id)] = price
	}
	return pkg, pkg.Validate()
}

func parseDateSet(raw []string) (map[daterange.Date]struct{}, error) {
	dates := make([]daterange.Date, 0, len(raw))
	for _, r := range raw {
		d, err := parseDate(r)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return promotions.DateSet(dates...), nil
}

type discountDocument struct {
	Code               string  `bson:"_id"`
	Percentage         float64 `bson:"percentage"`
	Active             bool    `bson:"active"`
	StartDate          string  `bson:"start_date"`
	EndDate            string  `bson:"end_date"`
	MinNights          int     `bson:"min_nights"`
	FullPeriodRequired bool    `bson:"full_period_required"`
}

func newDiscountDocument(d *promotions.DiscountCode) discountDocument {
	return discountDocument{
		Code:               promotions.NormalizeCode(d.Code),
		Percentage:         d.Percentage,
		Active:             d.Active,
		StartDate:          dateString(d.StartDate),
		EndDate:            dateString(d.EndDate),
		MinNights:          d.MinNights,
		FullPeriodRequired: d.FullPeriodRequired,
	}
}

func (d discountDocument) toAggregate() (*promotions.DiscountCode, error) {
	start, err := parseDate(d.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(d.EndDate)
	if err != nil {
		return nil, err
	}
	return &promotions.DiscountCode{
		Code:               d.Code,
		Percentage:         d.Percentage,
		Active:             d.Active,
		StartDate:          start,
		EndDate:            end,
		MinNights:          d.MinNights,
		FullPeriodRequired: d.FullPeriodRequired,
	}, nil
}

type extraDocument struct {
	ID     string `bson:"_id"`
	Name   string `bson:"name"`
	Price  int64  `bson:"price"`
	Active bool   `bson:"active"`
}

func newExtraDocument(s *extras.Service) extraDocument {
	return extraDocument{ID: string(s.ID), Name: s.Name, Price: s.Price, Active: s.Active}
}

func (d extraDocument) toAggregate() *extras.Service {
	return &extras.Service{ID: extras.ServiceID(d.ID), Name: d.Name, Price: d.Price, Active: d.Active}
}
