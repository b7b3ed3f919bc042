package directory

import (
	"context"
	"errors"
	"fmt"

	"roomly/pkg/config"
	"roomly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	LocationCollectionName = "Locations"
	RoomCollectionName     = "Rooms"
	ManagerCollectionName  = "Managers"
)

// EntityLookup answers existence questions about rooms and managers so the
// booking service can reject references to unknown or retired entities.
// Rooms and managers have no write API here; they are provisioned by the
// seed job or directly in the database.
type EntityLookup interface {
	RoomExists(ctx context.Context, roomID string) (bool, error)
	ManagerExists(ctx context.Context, managerID string) (bool, error)
	FindRoom(ctx context.Context, roomID string) (*model.Room, error)
	FindManager(ctx context.Context, managerID string) (*model.Manager, error)
}

type mongoEntityLookup struct {
	rooms    *mongo.Collection
	managers *mongo.Collection
}

func NewMongoEntityLookup(cfg *config.Config) EntityLookup {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoEntityLookup{
		rooms:    db.Collection(RoomCollectionName),
		managers: db.Collection(ManagerCollectionName),
	}
}

func activeByID(id string) bson.M {
	return bson.M{"_id": id, "deleted_at": nil}
}

func (l *mongoEntityLookup) RoomExists(ctx context.Context, roomID string) (bool, error) {
	count, err := l.rooms.CountDocuments(ctx, activeByID(roomID))
	if err != nil {
		return false, fmt.Errorf("failed to check room existence: %w", err)
	}
	return count > 0, nil
}

func (l *mongoEntityLookup) ManagerExists(ctx context.Context, managerID string) (bool, error) {
	count, err := l.managers.CountDocuments(ctx, activeByID(managerID))
	if err != nil {
		return false, fmt.Errorf("failed to check manager existence: %w", err)
	}
	return count > 0, nil
}

func (l *mongoEntityLookup) FindRoom(ctx context.Context, roomID string) (*model.Room, error) {
	var room model.Room
	err := l.rooms.FindOne(ctx, activeByID(roomID)).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return &room, nil
}

func (l *mongoEntityLookup) FindManager(ctx context.Context, managerID string) (*model.Manager, error) {
	var manager model.Manager
	err := l.managers.FindOne(ctx, activeByID(managerID)).Decode(&manager)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find manager: %w", err)
	}
	return &manager, nil
}
