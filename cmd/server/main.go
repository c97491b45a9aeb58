package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	accountstore "healthgateway/internal/account/store"
	"healthgateway/internal/audit"
	auditstore "healthgateway/internal/audit/store"
	feedbackhandler "healthgateway/internal/feedback/handler"
	feedbackservice "healthgateway/internal/feedback/service"
	feedbackstore "healthgateway/internal/feedback/store"
	httpapi "healthgateway/internal/http"
	jwttoken "healthgateway/internal/jwt_token"
	patientcache "healthgateway/internal/patient/cache"
	patientmetrics "healthgateway/internal/patient/metrics"
	"healthgateway/internal/patient/providers"
	"healthgateway/internal/patient/providers/clientregistry"
	"healthgateway/internal/patient/providers/empi"
	patientservice "healthgateway/internal/patient/service"
	patientstore "healthgateway/internal/patient/store"
	"healthgateway/internal/patient/strategy"
	"healthgateway/internal/platform/config"
	"healthgateway/internal/platform/httpserver"
	"healthgateway/internal/platform/kafka"
	"healthgateway/internal/platform/logger"
	"healthgateway/internal/platform/metrics"
	"healthgateway/internal/platform/postgres"
	redisclient "healthgateway/internal/platform/redis"
	supporthandler "healthgateway/internal/support/handler"
	supportservice "healthgateway/internal/support/service"
	"healthgateway/pkg/platform/cacheprovider"
	"healthgateway/pkg/platform/circuit"
	"healthgateway/pkg/platform/outbox"
	txcontext "healthgateway/pkg/platform/tx"
)

// main wires dependencies, serves the router and shuts down on SIGINT/SIGTERM.
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.New(reg)
	patientMetrics := patientmetrics.New(reg)

	db, err := postgres.OpenSQL(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info("database schema applied")
	}
	pool, err := postgres.OpenPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	healthChecks := map[string]httpapi.HealthCheck{
		"postgres": db.PingContext,
		"pgx":      pool.Ping,
	}

	var cache cacheprovider.Provider
	redis, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redis != nil {
		defer redis.Close()
		cache = redis.Cache()
		healthChecks["redis"] = redis.Health
	} else {
		log.Warn("REDIS_URL not set, using in-process cache")
		cache = cacheprovider.NewMemoryCache()
	}

	registry := providers.NewProviderRegistry()
	breaker := circuit.New(clientregistry.ProviderID,
		circuit.WithFailureThreshold(cfg.ClientRegistry.FailureThreshold),
		circuit.WithCooldown(cfg.ClientRegistry.Cooldown),
	)
	if err := registry.Register(clientregistry.New(cfg.ClientRegistry.Endpoint, cfg.ClientRegistry.Timeout,
		clientregistry.WithBreaker(breaker),
		clientregistry.WithLogger(log),
	)); err != nil {
		return err
	}
	if err := registry.Register(empi.New(cfg.Empi.BaseURL, cfg.Empi.APIKey, cfg.Empi.Timeout)); err != nil {
		return err
	}
	healthChecks["providers"] = func(ctx context.Context) error {
		return joinProviderErrors(registry.HealthCheck(ctx))
	}

	patients := patientcache.New(cache, cfg.PatientService.CacheTTL,
		patientcache.WithMetrics(patientMetrics),
		patientcache.WithLogger(log),
	)
	dispatcher, err := strategy.NewDispatcher(registry, patients,
		strategy.WithMetrics(patientMetrics),
		strategy.WithLogger(log),
	)
	if err != nil {
		return err
	}

	txRunner := txcontext.NewRunner(db)
	outboxStore := outbox.New(db)
	auditStore := auditstore.NewPostgres(db)
	auditor := audit.NewPublisher(auditStore)

	repository := patientservice.New(dispatcher, patientstore.NewBlockedAccessStore(db), auditor, outboxStore, txRunner,
		patientservice.WithCache(cache, cfg.PatientService.CacheTTL),
		patientservice.WithMetrics(patientMetrics),
		patientservice.WithLogger(log),
	)
	support := supportservice.New(
		repository,
		accountstore.NewUserProfileStore(pool),
		accountstore.NewMessagingVerificationStore(pool),
		accountstore.NewResourceDelegateStore(pool),
		auditor,
		cache,
		supportservice.WithLocation(cfg.Location()),
		supportservice.WithLogger(log),
	)
	feedback := feedbackservice.New(feedbackstore.New(db), log)

	jwtValidator := jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience))

	var workers sync.WaitGroup
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers)
		if err != nil {
			return err
		}
		defer producer.Close()
		if err := producer.EnsureTopic(ctx, cfg.Kafka.BlockedAccessTopic, 3, 1); err != nil {
			log.Warn("could not ensure kafka topic", "topic", cfg.Kafka.BlockedAccessTopic, "error", err)
		}
		healthChecks["kafka"] = producer.Ping

		relay := kafka.NewRelay(outboxStore, txRunner, producer, cfg.Kafka.BlockedAccessTopic,
			kafka.WithBatchSize(cfg.Kafka.RelayBatchSize),
			kafka.WithInterval(cfg.Kafka.RelayInterval),
			kafka.WithLogger(log),
		)
		workers.Add(1)
		go func() {
			defer workers.Done()
			relay.Run(workerCtx)
		}()
	} else {
		log.Warn("KAFKA_BROKERS not set, outbox relay disabled")
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         log,
		Metrics:        httpMetrics,
		Gatherer:       reg,
		RequestTimeout: cfg.Server.RequestTimeout,
		HealthChecks:   healthChecks,
		Routes: []httpapi.RouteRegistrar{
			supporthandler.New(support, jwtValidator, log),
			feedbackhandler.New(feedback, jwtValidator, log, supporthandler.RoleAdminUser),
		},
	})

	srv := httpserver.New(cfg.Server, router)
	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting healthgateway", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	cancelWorkers()
	workers.Wait()
	return nil
}

func joinProviderErrors(failures map[string]error) error {
	if len(failures) == 0 {
		return nil
	}
	ids := make([]string, 0, len(failures))
	for id := range failures {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	errs := make([]error, 0, len(ids))
	for _, id := range ids {
		errs = append(errs, fmt.Errorf("%s: %w", id, failures[id]))
	}
	return errors.Join(errs...)
}
