package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pousada/internal/app/commands"
	"pousada/internal/app/dto"
	"pousada/internal/app/middleware"
	"pousada/internal/app/outbox"
	"pousada/internal/app/policies"
	"pousada/internal/app/uow"
	"pousada/internal/domain/checkout"
	"pousada/internal/domain/reservation"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
	"pousada/internal/infra/storage/memory"
)

var errStore = errors.New("store unavailable")

type flakyReservations struct {
	*memory.ReservationRepository
	failSave bool
}

func (r *flakyReservations) Save(ctx context.Context, res *reservation.Reservation) error {
	if r.failSave {
		return errStore
	}
	return r.ReservationRepository.Save(ctx, res)
}

type failingCommitFactory struct {
	memory.Factory
}

func (f failingCommitFactory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	unit, err := f.Factory.Begin(ctx, opts)
	if err != nil {
		return nil, err
	}
	return failingCommitUnit{UnitOfWork: unit}, nil
}

type failingCommitUnit struct {
	uow.UnitOfWork
}

func (failingCommitUnit) Commit(context.Context) error { return errStore }

type cancelFixture struct {
	factory memory.Factory
	repo    *flakyReservations
	ledger  *memory.InventoryLedger
	stay    daterange.DateRange
}

func newCancelFixture(t *testing.T) cancelFixture {
	t.Helper()
	ctx := context.Background()
	stay := daterange.DateRange{CheckIn: daterange.MustParseDate("2025-01-03"), CheckOut: daterange.MustParseDate("2025-01-05")}
	casal, err := rooms.NewRoom(rooms.CreateParams{ID: "casal", Name: "Casal", BasePrice: 1000, BaseQuantity: 1, Active: true})
	require.NoError(t, err)

	repo := &flakyReservations{ReservationRepository: memory.NewReservationRepository()}
	res, err := reservation.New(reservation.CreateParams{
		ID:    "res-1",
		Guest: reservation.Guest{Name: "Ana", Email: "ana@example.com"},
		Summary: checkout.Summary{
			Stay:                  stay,
			Nights:                2,
			Rooms:                 []checkout.PricedRoom{{RoomID: "casal", RoomName: "Casal", Total: 2300}},
			AccommodationSubtotal: 2300,
			AccommodationTotal:    2300,
			Total:                 2300,
		},
		Currency:  "BRL",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, res))

	ledger := memory.NewInventoryLedger()
	require.NoError(t, ledger.Hold(ctx, "res-1", policies.StayHolds(casal, stay)))

	return cancelFixture{
		factory: memory.Factory{
			RoomsRepo:        memory.NewRoomRepository(casal),
			PackagesRepo:     memory.NewPackageRepository(),
			DiscountsRepo:    memory.NewDiscountRepository(),
			ExtrasRepo:       memory.NewExtraRepository(),
			ReservationsRepo: repo,
		},
		repo:   repo,
		ledger: ledger,
		stay:   stay,
	}
}

func (f cancelFixture) held(t *testing.T) int {
	t.Helper()
	n, err := f.ledger.Held(context.Background(), "casal", f.stay.CheckIn)
	require.NoError(t, err)
	return n
}

func (f cancelFixture) bus(factory uow.UoWFactory) commands.Bus {
	h := &TransitionHandler{UoWFactory: factory, Ledger: f.ledger, Outbox: memory.NewOutbox(nil), Encoder: outbox.JSONEventEncoder{}}
	base := commands.NewInMemoryBus()
	commands.RegisterHandler(base, CancelReservationCommand{}.Key(), h.Cancel())
	commands.RegisterHandler(base, ConfirmReservationCommand{}.Key(), h.Confirm())
	return middleware.ChainCommands(base, middleware.Transaction(factory, nil))
}

func cancel(ctx context.Context, bus commands.Bus) (*dto.Reservation, error) {
	return commands.Dispatch[CancelReservationCommand, *dto.Reservation](ctx, bus,
		CancelReservationCommand{ReservationID: "res-1", Reason: "guest request"})
}

func TestCancelReleasesInventoryAfterCommit(t *testing.T) {
	f := newCancelFixture(t)
	require.Equal(t, 1, f.held(t))

	out, err := cancel(context.Background(), f.bus(f.factory))
	require.NoError(t, err)
	assert.Equal(t, string(reservation.StateCanceled), out.State)
	assert.Zero(t, f.held(t))
}

func TestCancelKeepsInventoryWhenSaveFails(t *testing.T) {
	f := newCancelFixture(t)
	f.repo.failSave = true

	_, err := cancel(context.Background(), f.bus(f.factory))
	require.ErrorIs(t, err, errStore)

	stored, err := f.repo.ByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, reservation.StatePending, stored.State)
	assert.Equal(t, 1, f.held(t))
}

func TestCancelKeepsInventoryWhenCommitFails(t *testing.T) {
	f := newCancelFixture(t)
	factory := failingCommitFactory{Factory: f.factory}

	_, err := cancel(context.Background(), f.bus(factory))
	require.ErrorIs(t, err, errStore)
	assert.Equal(t, 1, f.held(t))
}

func TestCancelWithoutMiddlewareReleasesOnOwnCommit(t *testing.T) {
	f := newCancelFixture(t)
	h := &TransitionHandler{UoWFactory: f.factory, Ledger: f.ledger, Outbox: memory.NewOutbox(nil), Encoder: outbox.JSONEventEncoder{}}

	_, err := h.Cancel().Handle(context.Background(), CancelReservationCommand{ReservationID: "res-1"})
	require.NoError(t, err)
	assert.Zero(t, f.held(t))
}

func TestConfirmKeepsInventory(t *testing.T) {
	f := newCancelFixture(t)
	_, err := commands.Dispatch[ConfirmReservationCommand, *dto.Reservation](context.Background(), f.bus(f.factory),
		ConfirmReservationCommand{ReservationID: "res-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.held(t))
}
