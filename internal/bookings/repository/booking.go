package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "roomly/internal/bookings/errors"
	"roomly/pkg/config"
	mongotx "roomly/pkg/db/mongo"
	"roomly/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
)

// ListFilter narrows FindAll and CountAll. Nil fields are ignored.
type ListFilter struct {
	RoomID    string
	ManagerID string
	StartFrom *time.Time
	StartTo   *time.Time
	Active    model.ActiveFilter
}

// RoomStats aggregates active bookings for one room at a point in time.
type RoomStats struct {
	RoomID               string  `json:"room_id"`
	TotalBookings        int64   `json:"total_bookings"`
	FutureBookings       int64   `json:"future_bookings"`
	InProgressBookings   int64   `json:"in_progress_bookings"`
	PastBookings         int64   `json:"past_bookings"`
	AverageDurationHours float64 `json:"average_duration_hours"`
}

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string, active model.ActiveFilter) (*model.Booking, error)
	FindAll(ctx context.Context, filter ListFilter, limit int, offset int64) ([]*model.Booking, error)
	CountAll(ctx context.Context, filter ListFilter) (int64, error)
	Update(ctx context.Context, booking *model.Booking) error
	SoftDelete(ctx context.Context, id string, deletedAt time.Time) error
	FindOverlapping(ctx context.Context, roomID string, interval model.Interval, excludeID string) ([]*model.Booking, error)
	Stats(ctx context.Context, roomID string, now time.Time) (*RoomStats, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction. A SessionContext cannot be wrapped without breaking
// transaction semantics, so it is returned as-is with a no-op cancel.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string, active model.ActiveFilter) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": id}
	if active == model.ActiveOnly {
		filter["deleted_at"] = nil
	}

	var booking model.Booking
	err := r.collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context, filter ListFilter, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) CountAll(ctx context.Context, filter ListFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildListFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func buildListFilter(f ListFilter) bson.M {
	filter := bson.M{}

	if f.Active == model.ActiveOnly {
		filter["deleted_at"] = nil
	}
	if f.RoomID != "" {
		filter["room_id"] = f.RoomID
	}
	if f.ManagerID != "" {
		filter["manager_id"] = f.ManagerID
	}
	if f.StartFrom != nil || f.StartTo != nil {
		timeFilter := bson.M{}
		if f.StartFrom != nil {
			timeFilter["$gte"] = *f.StartFrom
		}
		if f.StartTo != nil {
			timeFilter["$lt"] = *f.StartTo
		}
		filter["start_time"] = timeFilter
	}

	return filter
}

func (r *mongoBookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	filter := bson.M{"_id": booking.ID, "deleted_at": nil}
	update := bson.M{
		"$set": bson.M{
			"name":               booking.Name,
			"description":        booking.Description,
			"start_time":         booking.StartTime,
			"end_time":           booking.EndTime,
			"coffee_option":      booking.CoffeeOption,
			"coffee_quantity":    booking.CoffeeQuantity,
			"coffee_description": booking.CoffeeDescription,
			"updated_at":         booking.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

func (r *mongoBookingRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": id, "deleted_at": nil}
	update := bson.M{
		"$set": bson.M{
			"deleted_at": deletedAt,
			"updated_at": deletedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

// FindOverlapping returns the active bookings in roomID whose half-open
// interval overlaps the given one.
func (r *mongoBookingRepository) FindOverlapping(ctx context.Context, roomID string, interval model.Interval, excludeID string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"room_id":    roomID,
		"deleted_at": nil,
		"start_time": bson.M{"$lt": interval.End},
		"end_time":   bson.M{"$gt": interval.Start},
	}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode overlapping bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) Stats(ctx context.Context, roomID string, now time.Time) (*RoomStats, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"room_id": roomID, "deleted_at": nil}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": 1},
			"future": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$gt": bson.A{"$start_time", now}}, 1, 0},
			}},
			"past": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$lte": bson.A{"$end_time", now}}, 1, 0},
			}},
			"avg_duration_ms": bson.M{"$avg": bson.M{
				"$subtract": bson.A{"$end_time", "$start_time"},
			}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate room stats: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total         int64   `bson:"total"`
		Future        int64   `bson:"future"`
		Past          int64   `bson:"past"`
		AvgDurationMs float64 `bson:"avg_duration_ms"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode room stats: %w", err)
	}

	stats := &RoomStats{RoomID: roomID}
	if len(rows) > 0 {
		row := rows[0]
		stats.TotalBookings = row.Total
		stats.FutureBookings = row.Future
		stats.PastBookings = row.Past
		stats.InProgressBookings = row.Total - row.Future - row.Past
		stats.AverageDurationHours = row.AvgDurationMs / float64(time.Hour.Milliseconds())
	}

	return stats, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
