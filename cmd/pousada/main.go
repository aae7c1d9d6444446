package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pousada/internal/app/history"
	"pousada/internal/app/middleware"
	appoutbox "pousada/internal/app/outbox"
	"pousada/internal/app/policies"
	"pousada/internal/app/registry"
	"pousada/internal/app/uow"
	"pousada/internal/infra/broker/kafka"
	"pousada/internal/infra/config"
	mongodb "pousada/internal/infra/db/mongo"
	"pousada/internal/infra/fixtures"
	ginserver "pousada/internal/infra/http/gin"
	"pousada/internal/infra/inbox"
	"pousada/internal/infra/inventory"
	"pousada/internal/infra/obs"
	"pousada/internal/infra/outbox"
	"pousada/internal/infra/payments"
	"pousada/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("pousada stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("pousada stopped")
}

// backend holds the storage-mode specific collaborators.
type backend struct {
	factory     uow.UoWFactory
	outbox      appoutbox.Outbox
	idempotency middleware.IdempotencyStore
	inbox       payments.Inbox
	queue       outbox.Queue
	checks      map[string]obs.Check
	closers     []func(context.Context) error
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	catalog, err := fixtures.Load(cfg.CatalogFixtures)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load catalog: %w", err)
		}
		logger.Warn("catalog fixtures not found, starting empty", "path", cfg.CatalogFixtures)
	}

	var be backend
	switch cfg.StorageMode {
	case config.StorageMongo:
		be, err = mongoBackend(ctx, cfg, catalog)
	default:
		be = memoryBackend(logger, catalog)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, closeFn := range be.closers {
			if err := closeFn(closeCtx); err != nil {
				logger.Warn("close failed", "error", err)
			}
		}
	}()
	if err != nil {
		return err
	}

	ledger, err := buildLedger(ctx, cfg, &be)
	if err != nil {
		return err
	}

	metrics := obs.NewMetrics()
	buses := registry.Build(registry.Deps{
		UoWFactory:  be.factory,
		Ledger:      ledger,
		Outbox:      be.outbox,
		Encoder:     appoutbox.JSONEventEncoder{Source: "app://pousada"},
		Idempotency: be.idempotency,
		IdempTTL:    cfg.IdempotencyTTL,
		History:     history.NewStack(cfg.HistoryLimit),
		Telemetry:   metrics,
		Observer:    metrics,
		Currency:    cfg.Currency,
		Logger:      logger,
	})
	logger.Info("buses ready", "commands", buses.RawCommands.Keys(), "queries", buses.RawQueries.Keys())

	obsMW := obs.Middleware{Logger: logger}
	server := ginserver.NewServer(cfg, obsMW, obs.HealthHandlers{Checks: be.checks}, metrics, ginserver.Handlers{
		Rooms:        ginserver.RoomsHandler{Queries: buses.Queries, Logger: logger},
		Checkout:     ginserver.CheckoutHandler{Queries: buses.Queries, Logger: logger},
		Reservations: ginserver.ReservationHandler{Commands: buses.Commands, Queries: buses.Queries, Logger: logger},
		Admin:        ginserver.AdminHandler{Commands: buses.Commands, Logger: logger},
	})

	var wg sync.WaitGroup
	if cfg.KafkaEnabled() {
		if err := startMessaging(ctx, &wg, cfg, logger, be, buses); err != nil {
			return err
		}
	} else {
		logger.Info("kafka disabled, events stay in the outbox")
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	wg.Wait()
	return nil
}

func memoryBackend(logger *slog.Logger, catalog fixtures.Catalog) backend {
	return backend{
		factory: memory.Factory{
			RoomsRepo:        memory.NewRoomRepository(catalog.Rooms...),
			PackagesRepo:     memory.NewPackageRepository(catalog.Packages...),
			DiscountsRepo:    memory.NewDiscountRepository(catalog.Discounts...),
			ExtrasRepo:       memory.NewExtraRepository(catalog.Extras...),
			ReservationsRepo: memory.NewReservationRepository(),
		},
		outbox:      memory.NewOutbox(logger),
		idempotency: memory.NewIdempotencyStore(),
		inbox:       memory.NewInbox(),
		checks:      map[string]obs.Check{},
	}
}

func mongoBackend(ctx context.Context, cfg config.Config, catalog fixtures.Catalog) (backend, error) {
	client, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return backend{}, fmt.Errorf("mongo: %w", err)
	}
	be := backend{
		factory: mongodb.NewFactory(client.DB),
		checks:  map[string]obs.Check{"mongo": client.Ping},
		closers: []func(context.Context) error{client.Close},
	}
	if err := mongodb.SeedCatalog(ctx, client.DB, catalog); err != nil {
		return be, fmt.Errorf("seed catalog: %w", err)
	}
	store, err := outbox.NewStore(ctx, client.DB)
	if err != nil {
		return be, fmt.Errorf("outbox store: %w", err)
	}
	be.outbox, be.queue = store, store
	if be.idempotency, err = mongodb.NewIdempotencyStore(ctx, client.DB); err != nil {
		return be, fmt.Errorf("idempotency store: %w", err)
	}
	if be.inbox, err = inbox.NewStore(ctx, client.DB, cfg.KafkaGroupID); err != nil {
		return be, fmt.Errorf("inbox store: %w", err)
	}
	return be, nil
}

func buildLedger(ctx context.Context, cfg config.Config, be *backend) (policies.InventoryLedger, error) {
	if cfg.InventoryMode != config.InventoryRedis {
		return memory.NewInventoryLedger(), nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ledger := inventory.NewRedisLedger(client, "pousada")
	if err := ledger.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	be.checks["redis"] = ledger.Ping
	be.closers = append(be.closers, func(context.Context) error { return client.Close() })
	return ledger, nil
}

func startMessaging(ctx context.Context, wg *sync.WaitGroup, cfg config.Config, logger *slog.Logger, be backend, buses registry.Buses) error {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = "pousada"
	saramaCfg.Version = sarama.V3_6_0_0

	if be.queue != nil {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, saramaCfg)
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		worker := &outbox.Worker{
			Store:       be.queue,
			Producer:    producer,
			Logger:      logger,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			ID:          "outbox-" + uuid.NewString(),
			Backoff:     cfg.RetryBackoff,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer producer.Close()
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	} else {
		logger.Info("memory storage has no durable outbox, publisher disabled")
	}

	consumerCfg := sarama.NewConfig()
	consumerCfg.ClientID = "pousada"
	consumerCfg.Version = sarama.V3_6_0_0
	consumerCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	handler := &payments.Handler{Commands: buses.Commands, Inbox: be.inbox, Logger: logger}
	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, consumerCfg, handler, logger, cfg.RetryBackoff)
	if err != nil {
		return fmt.Errorf("kafka consumer: %w", err)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer consumer.Close()
		if err := consumer.Run(ctx, []string{cfg.KafkaPaymentsTopic}); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("payments consumer stopped", "error", err)
		}
	}()
	return nil
}
