package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// DialTimeout bounds connecting and the startup ping
	DialTimeout time.Duration

	// TTL settings for different entity types
	GuestPlayerTTL time.Duration
	GameTTL        time.Duration // also applies to the active game index
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		DialTimeout:    5 * time.Second,
		GuestPlayerTTL: 24 * time.Hour,
		GameTTL:        6 * time.Hour,
	}
}
