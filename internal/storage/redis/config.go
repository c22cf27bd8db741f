package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// RoomTTL bounds the lifetime of room metadata, pools, and votes
	RoomTTL time.Duration

	// PlayerTTL is the presence expiry for roster entries. An entry that is
	// not touched within this window disappears from the roster; this is the
	// heartbeat+expiry substitute for connection-tied removal.
	PlayerTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		RoomTTL:      24 * time.Hour,
		PlayerTTL:    5 * time.Minute,
	}
}
