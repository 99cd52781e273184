package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/driveconnect/booking-api/internal/core/domain"
	"github.com/driveconnect/booking-api/internal/core/ports"
)

const (
	collectionBookings = "bookings"
	counterBookings    = "bookings"
)

type BookingRepository struct {
	col *mongo.Collection
	seq *counters
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(collectionBookings), seq: newCounters(db)}
}

type mongoBooking struct {
	ID         int64  `bson:"_id"`
	ClientID   int64  `bson:"client_id"`
	ProviderID int64  `bson:"provider_id"`
	Service    string `bson:"service"`
	CarModel   string `bson:"car_model"`
	Date       string `bson:"date"`
	Time       string `bson:"time"`
	Status     string `bson:"status"`
	Price      int64  `bson:"price"`
	Location   string `bson:"location"`
	CreatedAt  int64  `bson:"created_at"`
	UpdatedAt  int64  `bson:"updated_at"`
}

func toMongoBooking(b *domain.Booking) mongoBooking {
	return mongoBooking{
		ID:         b.ID,
		ClientID:   b.ClientID,
		ProviderID: b.ProviderID,
		Service:    b.Service,
		CarModel:   b.CarModel,
		Date:       b.Date,
		Time:       b.Time,
		Status:     string(b.Status),
		Price:      b.Price,
		Location:   b.Location,
		CreatedAt:  b.CreatedAt.Unix(),
		UpdatedAt:  b.UpdatedAt.Unix(),
	}
}

func (mb mongoBooking) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:         mb.ID,
		ClientID:   mb.ClientID,
		ProviderID: mb.ProviderID,
		Service:    mb.Service,
		CarModel:   mb.CarModel,
		Date:       mb.Date,
		Time:       mb.Time,
		Status:     domain.BookingStatus(mb.Status),
		Price:      mb.Price,
		Location:   mb.Location,
		CreatedAt:  unixToTime(mb.CreatedAt),
		UpdatedAt:  unixToTime(mb.UpdatedAt),
	}
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBooking
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return mb.toDomain(), nil
}

// List sorts by _id, which is the insertion order of the sequential ids.
func (r *BookingRepository) List(ctx context.Context, f ports.BookingFilter) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.ClientID != 0 {
		filter["client_id"] = f.ClientID
	}
	if f.ProviderID != 0 {
		filter["provider_id"] = f.ProviderID
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	var docs []mongoBooking
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}

	out := make([]*domain.Booking, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *BookingRepository) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, counterBookings)
	if err != nil {
		return nil, err
	}

	stored := *booking
	stored.ID = id
	if _, err := r.col.InsertOne(ctx, toMongoBooking(&stored)); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return &stored, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBooking
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC().Unix()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mb)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return mb.toDomain(), nil
}

// Seed inserts bookings with their fixed ids when the collection is empty.
func (r *BookingRepository) Seed(ctx context.Context, bookings []*domain.Booking) error {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count bookings: %w", err)
	}
	if n > 0 {
		return nil
	}

	var maxID int64
	docs := make([]interface{}, 0, len(bookings))
	for _, b := range bookings {
		docs = append(docs, toMongoBooking(b))
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	if len(docs) > 0 {
		if _, err := r.col.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("seed bookings: %w", err)
		}
	}
	return r.seq.atLeast(ctx, counterBookings, maxID)
}

// EnsureIndexes creates indexes on the bookings collection.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
