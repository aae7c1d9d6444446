package fixtures

import (
	"encoding/json"
	"fmt"
	"os"

	"pousada/internal/app/dto"
	"pousada/internal/domain/extras"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

// Catalog is the static hotel data: rooms, packages, discount codes and extras.
type Catalog struct {
	Rooms     []*rooms.Room
	Packages  []*promotions.Package
	Discounts []*promotions.DiscountCode
	Extras    []*extras.Service
}

type packageFile struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	StartDate       daterange.Date   `json:"start_date"`
	EndDate         daterange.Date   `json:"end_date"`
	RoomPrices      map[string]int64 `json:"room_prices"`
	NoCheckInDates  []daterange.Date `json:"no_check_in_dates"`
	NoCheckOutDates []daterange.Date `json:"no_check_out_dates"`
	Active          bool             `json:"active"`
}

type extraFile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	Active bool   `json:"active"`
}

type catalogFile struct {
	Rooms     []dto.RoomDetail `json:"rooms"`
	Packages  []packageFile    `json:"packages"`
	Discounts []dto.Discount   `json:"discounts"`
	Extras    []extraFile      `json:"extras"`
}

// Load reads a catalog JSON file and validates every entry.
func Load(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return Catalog{}, fmt.Errorf("fixtures: decode catalog: %w", err)
	}
	var out Catalog
	for _, r := range file.Rooms {
		overrides := make([]rooms.DateOverride, 0, len(r.Overrides))
		for _, o := range r.Overrides {
			overrides = append(overrides, o.Domain())
		}
		room, err := rooms.NewRoom(rooms.CreateParams{
			ID:           rooms.RoomID(r.ID),
			Name:         r.Name,
			BasePrice:    r.BasePrice,
			BaseQuantity: r.BaseQuantity,
			Active:       r.Active,
			Overrides:    overrides,
		})
		if err != nil {
			return Catalog{}, fmt.Errorf("fixtures: room %q: %w", r.ID, err)
		}
		out.Rooms = append(out.Rooms, room)
	}
	for _, p := range file.Packages {
		pkg := &promotions.Package{
			ID:              promotions.PackageID(p.ID),
			Name:            p.Name,
			StartDate:       p.StartDate,
			EndDate:         p.EndDate,
			RoomPrices:      make(map[rooms.RoomID]int64, len(p.RoomPrices)),
			NoCheckInDates:  promotions.DateSet(p.NoCheckInDates...),
			NoCheckOutDates: promotions.DateSet(p.NoCheckOutDates...),
			Active:          p.Active,
		}
		for id, price := range p.RoomPrices {
			pkg.RoomPrices[rooms.RoomID(id)] = price
		}
		if err := pkg.Validate(); err != nil {
			return Catalog{}, fmt.Errorf("fixtures: package %q: %w", p.ID, err)
		}
		out.Packages = append(out.Packages, pkg)
	}
	for _, d := range file.Discounts {
		code := d.Domain()
		if err := code.Validate(); err != nil {
			return Catalog{}, fmt.Errorf("fixtures: discount %q: %w", d.Code, err)
		}
		out.Discounts = append(out.Discounts, code)
	}
	for _, e := range file.Extras {
		svc := &extras.Service{ID: extras.ServiceID(e.ID), Name: e.Name, Price: e.Price, Active: e.Active}
		if err := svc.Validate(); err != nil {
			return Catalog{}, fmt.Errorf("fixtures: extra %q: %w", e.ID, err)
		}
		out.Extras = append(out.Extras, svc)
	}
	return out, nil
}
