package redisStore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/pkg/logger_i"
)

// Store wraps one redis database. Callers own the lifecycle: construct
// it during wiring, Close it on shutdown.
type Store struct {
	client *redis.Client
	logger *logger_i.Logger
}

// NewStore connects to redis and verifies the connection with a ping.
// A nil error means the store is usable.
func NewStore(ctx context.Context, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:                  config.Env("REDIS_ADDR", config.RedisAddr),
		Password:              config.RedisPassword,
		DB:                    db,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	store := &Store{
		client: client,
		logger: logger_i.NewLogger("Redis Store"),
	}
	store.logger.Info("Redis store init successfully", "db", db)
	return store, nil
}

func (s *Store) Close() error {
	s.logger.Info("Closing Redis store")
	return s.client.Close()
}

// NewTestStore wraps an externally constructed client, for miniredis.
func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		logger: logger_i.NewLogger("test redis"),
	}
}
