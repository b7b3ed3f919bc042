package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "roomly/internal/bookings/errors"
	"roomly/pkg/config"
	"roomly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LockCollectionName = "Room_locks"

// RoomLockRepository provides per-room advisory locks backed by a unique
// _id insert. A TTL index on expires_at reaps locks orphaned by a crash.
type RoomLockRepository interface {
	Acquire(ctx context.Context, roomID string) (*model.RoomLock, error)
	Release(ctx context.Context, roomID string) error
}

type mongoRoomLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewRoomLockRepository(cfg *config.Config) RoomLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

// Acquire takes the advisory lock for roomID, polling until the configured
// wait elapses. Contenders that lose every retry get ErrRoomLocked, which
// the service surfaces as room unavailable rather than blocking the caller
// indefinitely.
func (r *mongoRoomLockRepository) Acquire(ctx context.Context, roomID string) (*model.RoomLock, error) {
	deadline := time.Now().Add(r.cfg.RoomLockAcquireWait)

	for {
		lock, err := r.tryInsert(ctx, roomID)
		if err == nil {
			return lock, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to acquire room lock: %w", err)
		}

		if time.Now().After(deadline) {
			return nil, bookingserrors.ErrRoomLocked
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.cfg.RoomLockRetryBackoff):
		}
	}
}

func (r *mongoRoomLockRepository) tryInsert(ctx context.Context, roomID string) (*model.RoomLock, error) {
	now := time.Now().UTC()
	lock := &model.RoomLock{
		ID:        roomID,
		RoomID:    roomID,
		ExpiresAt: now.Add(r.cfg.RoomLockTTL),
		CreatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		return nil, err
	}
	return lock, nil
}

func (r *mongoRoomLockRepository) Release(ctx context.Context, roomID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": roomID}); err != nil {
		return fmt.Errorf("failed to release room lock: %w", err)
	}
	return nil
}
