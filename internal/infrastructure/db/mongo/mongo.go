package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/driveconnect/booking-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for the durable store.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store bundles the client and the repositories built on it.
type Store struct {
	Client   *mongo.Client
	DB       *mongo.Database
	Users    *UserRepository
	Bookings *BookingRepository
}

// Open connects, verifies connectivity with a ping and creates indexes.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &Store{
		Client:   client,
		DB:       db,
		Users:    NewUserRepository(db),
		Bookings: NewBookingRepository(db),
	}

	if err := s.Users.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo user indexes: %w", err)
	}
	if err := s.Bookings.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo booking indexes: %w", err)
	}
	return s, nil
}

// Seed loads the demo data into empty collections.
func (s *Store) Seed(ctx context.Context, users []*domain.User, bookings []*domain.Booking) error {
	if err := s.Users.Seed(ctx, users); err != nil {
		return err
	}
	return s.Bookings.Seed(ctx, bookings)
}

// Ping backs the /health/ready check.
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
