// @title           DriveConnect Booking API
// @version         1.0
// @description     Car-service booking backend: authentication, role-scoped bookings, dashboard statistics and an admin user directory.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT token.
package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/driveconnect/booking-api/internal/api"
	"github.com/driveconnect/booking-api/internal/api/handler"
	"github.com/driveconnect/booking-api/internal/core/ports"
	"github.com/driveconnect/booking-api/internal/core/service"
	"github.com/driveconnect/booking-api/internal/infrastructure/db/memory"
	mongostore "github.com/driveconnect/booking-api/internal/infrastructure/db/mongo"
	redisstore "github.com/driveconnect/booking-api/internal/infrastructure/db/redis"
	"github.com/driveconnect/booking-api/internal/pkg/config"
	"github.com/driveconnect/booking-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		// Init returns the configured logger, or a default one if startup
		// failed before configuration was read.
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("booking api stopped")
	}
}

func run() error {
	// A .env file is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "booking-api",
	})

	readiness := make(map[string]handler.PingFunc)
	var closers []func(context.Context) error

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, closeFn := range closers {
			if err := closeFn(closeCtx); err != nil {
				log.Warn().Err(err).Msg("failed to close dependency")
			}
		}
	}()

	users, bookings, err := openStores(ctx, cfg, log, readiness, &closers)
	if err != nil {
		return err
	}
	idem, err := openIdempotencyStore(ctx, cfg, log, readiness, &closers)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Logger:        log,
		Auth:          service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, log),
		Bookings:      service.NewBookingService(bookings, idem, cfg.DefaultLocation, log),
		Stats:         service.NewStatsService(users, bookings),
		Users:         service.NewUserService(users),
		AuthRateLimit: cfg.AuthRateLimit,
		Readiness:     readiness,
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("store", cfg.StoreDriver).
			Msg("booking api starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("booking api stopped gracefully")
	return nil
}

// openStores builds the user and booking repositories for the configured
// driver, seeding the demo data when enabled.
func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger, readiness map[string]handler.PingFunc, closers *[]func(context.Context) error) (ports.UserRepository, ports.BookingRepository, error) {
	if cfg.StoreDriver == config.StoreMemory {
		if !cfg.SeedDemoData {
			return memory.NewUserRepository(), memory.NewBookingRepository(), nil
		}
		log.Info().Msg("seeding in-memory store with demo data")
		return memory.NewUserRepository(memory.DemoUsers()...), memory.NewBookingRepository(memory.DemoBookings()...), nil
	}

	store, err := mongostore.Open(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, nil, err
	}
	*closers = append(*closers, store.Close)
	readiness["mongodb"] = store.Ping

	if cfg.SeedDemoData {
		if err := store.Seed(ctx, memory.DemoUsers(), memory.DemoBookings()); err != nil {
			return nil, nil, err
		}
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	return store.Users, store.Bookings, nil
}

// openIdempotencyStore uses Redis when REDIS_ADDR is set and process memory otherwise.
func openIdempotencyStore(ctx context.Context, cfg *config.Config, log zerolog.Logger, readiness map[string]handler.PingFunc, closers *[]func(context.Context) error) (ports.IdempotencyStore, error) {
	if cfg.Redis.Addr == "" {
		return memory.NewIdempotencyStore(), nil
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		return nil, err
	}
	*closers = append(*closers, func(context.Context) error { return rdb.Close() })
	readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

	log.Info().Str("addr", rdb.Options().Addr).Int("db", rdb.Options().DB).Msg("connected to redis")
	return redisstore.NewIdempotencyStore(rdb), nil
}
