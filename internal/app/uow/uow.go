package uow

import (
	"context"

	"pousada/internal/domain/extras"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/reservation"
	"pousada/internal/domain/rooms"
)

// UnitOfWork groups the catalog and reservation repositories behind one commit.
type UnitOfWork interface {
	Rooms() rooms.Repository
	Packages() promotions.PackageRepository
	Discounts() promotions.DiscountRepository
	Extras() extras.Repository
	Reservations() reservation.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
