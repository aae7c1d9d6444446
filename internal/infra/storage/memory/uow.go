package memory

import (
	"context"
	"errors"

	"pousada/internal/app/uow"
	"pousada/internal/domain/extras"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/reservation"
	"pousada/internal/domain/rooms"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	RoomsRepo        rooms.Repository
	PackagesRepo     promotions.PackageRepository
	DiscountsRepo    promotions.DiscountRepository
	ExtrasRepo       extras.Repository
	ReservationsRepo reservation.Repository
}

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight boundary. Writes go straight to the stores; there is no isolation.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.RoomsRepo == nil || f.PackagesRepo == nil || f.DiscountsRepo == nil || f.ExtrasRepo == nil || f.ReservationsRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{factory: f}, nil
}

type Unit struct {
	factory Factory
}

func (u *Unit) Rooms() rooms.Repository                  { return u.factory.RoomsRepo }
func (u *Unit) Packages() promotions.PackageRepository   { return u.factory.PackagesRepo }
func (u *Unit) Discounts() promotions.DiscountRepository { return u.factory.DiscountsRepo }
func (u *Unit) Extras() extras.Repository                { return u.factory.ExtrasRepo }
func (u *Unit) Reservations() reservation.Repository     { return u.factory.ReservationsRepo }
func (u *Unit) Commit(ctx context.Context) error         { return nil }
func (u *Unit) Rollback(ctx context.Context) error       { return nil }

var _ uow.UoWFactory = Factory{}
