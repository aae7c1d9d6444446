package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"

	"pousada/internal/app/uow"
	"pousada/internal/domain/extras"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/reservation"
	"pousada/internal/domain/rooms"
)

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	RoomsRepo        rooms.Repository
	PackagesRepo     promotions.PackageRepository
	DiscountsRepo    promotions.DiscountRepository
	ExtrasRepo       extras.Repository
	ReservationsRepo reservation.Repository
}

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// NewFactory builds the repositories over db.
func NewFactory(db *mongo.Database) Factory {
	return Factory{
		DB:               db,
		RoomsRepo:        NewRoomRepository(db),
		PackagesRepo:     NewPackageRepository(db),
		DiscountsRepo:    NewDiscountRepository(db),
		ExtrasRepo:       NewExtraRepository(db),
		ReservationsRepo: NewReservationRepository(db),
	}
}

// Begin starts a MongoDB session. Read-only units read from a snapshot without opening a transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	if opts.ReadOnly {
		session, err := f.DB.Client().StartSession(options.Session().SetSnapshot(true))
		if err != nil {
			return nil, err
		}
		return &Unit{factory: f, session: session, readOnly: true}, nil
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{factory: f, session: session}, nil
}

type Unit struct {
	factory  Factory
	session  mongo.Session
	readOnly bool
	done     bool
}

func (u *Unit) Rooms() rooms.Repository                  { return u.factory.RoomsRepo }
func (u *Unit) Packages() promotions.PackageRepository   { return u.factory.PackagesRepo }
func (u *Unit) Discounts() promotions.DiscountRepository { return u.factory.DiscountsRepo }
func (u *Unit) Extras() extras.Repository                { return u.factory.ExtrasRepo }
func (u *Unit) Reservations() reservation.Repository     { return u.factory.ReservationsRepo }

func (u *Unit) Commit(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	defer u.session.EndSession(ctx)
	if u.readOnly {
		return nil
	}
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	defer u.session.EndSession(ctx)
	if u.readOnly {
		return nil
	}
	return u.session.AbortTransaction(ctx)
}

// InjectContext ensures Mongo session is available in context for downstream repos.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}

var _ uow.UoWFactory = Factory{}
