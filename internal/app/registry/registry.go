package registry

import (
	"log/slog"
	"time"

	"pousada/internal/app/commands"
	"pousada/internal/app/handlers/admin"
	checkoutapp "pousada/internal/app/handlers/checkout"
	packagesapp "pousada/internal/app/handlers/packages"
	"pousada/internal/app/handlers/reservations"
	roomsapp "pousada/internal/app/handlers/rooms"
	"pousada/internal/app/history"
	"pousada/internal/app/middleware"
	"pousada/internal/app/outbox"
	"pousada/internal/app/policies"
	"pousada/internal/app/queries"
	"pousada/internal/app/uow"
)

// Deps are the collaborators every handler is built from.
type Deps struct {
	UoWFactory  uow.UoWFactory
	Ledger      policies.InventoryLedger
	Outbox      outbox.Outbox
	Encoder     outbox.EventEncoder
	Idempotency middleware.IdempotencyStore
	IdempTTL    time.Duration
	History     *history.Stack
	Telemetry   policies.Telemetry
	Observer    middleware.Observer
	Currency    string
	Now         func() time.Time
	Logger      *slog.Logger
}

// Buses are the middleware-wrapped entry points plus the raw buses for introspection.
type Buses struct {
	Commands    commands.Bus
	Queries     queries.Bus
	RawCommands *commands.InMemoryBus
	RawQueries  *queries.InMemoryBus
}

func Build(d Deps) Buses {
	commandBus := commands.NewInMemoryBus()
	queryBus := queries.NewInMemoryBus()

	queries.RegisterHandler(queryBus, roomsapp.SearchRoomsQuery{}.Key(), &roomsapp.SearchRoomsHandler{UoWFactory: d.UoWFactory, Currency: d.Currency})
	queries.RegisterHandler(queryBus, roomsapp.GetCalendarQuery{}.Key(), &roomsapp.GetCalendarHandler{UoWFactory: d.UoWFactory, Currency: d.Currency})
	queries.RegisterHandler(queryBus, packagesapp.ListPackagesQuery{}.Key(), &packagesapp.ListPackagesHandler{UoWFactory: d.UoWFactory})
	queries.RegisterHandler(queryBus, checkoutapp.QuoteQuery{}.Key(), &checkoutapp.QuoteHandler{UoWFactory: d.UoWFactory, Currency: d.Currency, Telemetry: d.Telemetry})
	queries.RegisterHandler(queryBus, checkoutapp.ValidateDiscountQuery{}.Key(), &checkoutapp.ValidateDiscountHandler{UoWFactory: d.UoWFactory, Telemetry: d.Telemetry})
	queries.RegisterHandler(queryBus, reservations.GetReservationQuery{}.Key(), &reservations.GetReservationHandler{UoWFactory: d.UoWFactory})

	commands.RegisterHandler(commandBus, reservations.CreateReservationCommand{}.Key(), &reservations.CreateReservationHandler{
		UoWFactory: d.UoWFactory,
		Ledger:     d.Ledger,
		Outbox:     d.Outbox,
		Encoder:    d.Encoder,
		Telemetry:  d.Telemetry,
		Currency:   d.Currency,
		Now:        d.Now,
	})
	transitions := &reservations.TransitionHandler{
		UoWFactory: d.UoWFactory,
		Ledger:     d.Ledger,
		Outbox:     d.Outbox,
		Encoder:    d.Encoder,
		Telemetry:  d.Telemetry,
		Logger:     d.Logger,
		Now:        d.Now,
	}
	commands.RegisterHandler(commandBus, reservations.ConfirmReservationCommand{}.Key(), transitions.Confirm())
	commands.RegisterHandler(commandBus, reservations.CancelReservationCommand{}.Key(), transitions.Cancel())

	overrides := &admin.OverrideHandlers{UoWFactory: d.UoWFactory, History: d.History, Now: d.Now}
	commands.RegisterHandler(commandBus, admin.SetOverrideCommand{}.Key(), overrides.Set())
	commands.RegisterHandler(commandBus, admin.ClearOverrideCommand{}.Key(), overrides.Clear())
	commands.RegisterHandler(commandBus, admin.ReplaceOverridesCommand{}.Key(), overrides.Replace())
	discounts := &admin.DiscountHandlers{UoWFactory: d.UoWFactory, History: d.History, Now: d.Now}
	commands.RegisterHandler(commandBus, admin.UpsertDiscountCommand{}.Key(), discounts.Upsert())
	commands.RegisterHandler(commandBus, admin.DeleteDiscountCommand{}.Key(), discounts.Delete())
	undoRedo := &admin.HistoryHandlers{UoWFactory: d.UoWFactory, History: d.History}
	commands.RegisterHandler(commandBus, admin.UndoCommand{}.Key(), undoRedo.Undo())
	commands.RegisterHandler(commandBus, admin.RedoCommand{}.Key(), undoRedo.Redo())

	var (
		instrument      middleware.CommandMiddleware
		instrumentQuery middleware.QueryMiddleware
		idempotency     middleware.CommandMiddleware
		flush           middleware.CommandMiddleware
	)
	if d.Observer != nil {
		instrument = middleware.Instrumentation(d.Observer)
		instrumentQuery = middleware.QueryInstrumentation(d.Observer)
	}
	if d.Idempotency != nil {
		idempotency = middleware.Idempotency(d.Idempotency, nil, d.IdempTTL)
	}
	if d.Outbox != nil {
		flush = middleware.OutboxFlush(d.Outbox, d.Logger)
	}

	return Buses{
		Commands: middleware.ChainCommands(commandBus,
			instrument,
			middleware.Validation(middleware.SelfValidator{}),
			idempotency,
			flush,
			middleware.Transaction(d.UoWFactory, nil),
		),
		Queries: middleware.ChainQueries(queryBus,
			instrumentQuery,
			middleware.QueryValidation(middleware.SelfValidator{}),
			middleware.QuerySnapshot(d.UoWFactory),
		),
		RawCommands: commandBus,
		RawQueries:  queryBus,
	}
}
