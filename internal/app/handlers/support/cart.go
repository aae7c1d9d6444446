package support

import (
	"context"
	"errors"
	"fmt"

	"pousada/internal/app/dto"
	"pousada/internal/app/uow"
	"pousada/internal/domain/availability"
	"pousada/internal/domain/checkout"
	"pousada/internal/domain/extras"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
)

// LoadedCart is a cart resolved against the catalog, ready for checkout.Quote.
type LoadedCart struct {
	Cart  checkout.Cart
	Codes []*promotions.DiscountCode
}

// LoadCart resolves ids in req and enforces check-in/check-out restrictions for every room.
func LoadCart(ctx context.Context, unit uow.UnitOfWork, req dto.CartRequest) (LoadedCart, error) {
	stay := req.Stay()
	if stay.Validate() != nil {
		return LoadedCart{}, checkout.ErrInvalidStay
	}
	if len(req.Rooms) == 0 {
		return LoadedCart{}, checkout.ErrEmptyCart
	}
	packages, err := ActivePackages(ctx, unit)
	if err != nil {
		return LoadedCart{}, err
	}
	cart := checkout.Cart{Stay: stay, DiscountCode: req.DiscountCode}
	for _, line := range req.Rooms {
		room, err := unit.Rooms().ByID(ctx, rooms.RoomID(line.RoomID))
		if err != nil {
			return LoadedCart{}, err
		}
		if err := availability.ValidateSelection(room, packages, stay); err != nil {
			return LoadedCart{}, err
		}
		roomLine := checkout.RoomLine{Room: room}
		if line.PackageID != "" {
			pkg, err := unit.Packages().ByID(ctx, promotions.PackageID(line.PackageID))
			if err != nil {
				return LoadedCart{}, err
			}
			roomLine.Package = pkg
		}
		cart.Rooms = append(cart.Rooms, roomLine)
	}
	for _, line := range req.Extras {
		svc, err := unit.Extras().ByID(ctx, extras.ServiceID(line.ServiceID))
		if errors.Is(err, extras.ErrServiceNotFound) {
			return LoadedCart{}, fmt.Errorf("%w: %s", checkout.ErrExtraUnavailable, line.ServiceID)
		}
		if err != nil {
			return LoadedCart{}, err
		}
		cart.Extras = append(cart.Extras, checkout.ExtraLine{Service: svc, Quantity: line.Quantity})
	}
	var codes []*promotions.DiscountCode
	if req.DiscountCode != "" {
		codes, err = unit.Discounts().List(ctx)
		if err != nil {
			return LoadedCart{}, err
		}
	}
	return LoadedCart{Cart: cart, Codes: codes}, nil
}

// ActivePackages lists the packages whose calendar rules are in force.
func ActivePackages(ctx context.Context, unit uow.UnitOfWork) ([]*promotions.Package, error) {
	all, err := unit.Packages().List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]*promotions.Package, 0, len(all))
	for _, pkg := range all {
		if pkg.Active {
			active = append(active, pkg)
		}
	}
	return active, nil
}
