package model

import "time"

// RoomLock is an advisory lock serializing conflict-check-and-write sequences
// for a single room. The unique _id insert is the acquisition; a TTL index on
// expires_at reclaims locks leaked by a crashed writer.
type RoomLock struct {
	ID        string    `bson:"_id" json:"id"`
	RoomID    string    `bson:"room_id" json:"room_id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
