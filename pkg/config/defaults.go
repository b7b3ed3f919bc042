package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roomly"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Room locks are held only for the duration of one conflict-check-and-write
	// sequence; the TTL is a crash-recovery bound, not an expected hold time.
	DefaultRoomLockTTL          = 10 * time.Second
	DefaultRoomLockAcquireWait  = 3 * time.Second
	DefaultRoomLockRetryBackoff = 100 * time.Millisecond

	DefaultPaginationLimit = 100
)
