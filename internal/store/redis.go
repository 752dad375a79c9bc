package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/borsazengini/trading-terminal/internal/models"
)

const (
	sessionKeyPrefix = "session:"
	leaderboardKey   = "leaderboard:top"
)

// Redis carries the active-session pointers (token -> account id) and a
// short-lived cache of the leaderboard. Account state itself never lives
// here; the Store is the source of truth.
type Redis struct {
	rdb *redis.Client
}

// OpenRedis connects to Redis and verifies the connection.
func OpenRedis(addr, password string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Redis{rdb: rdb}, nil
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// PutSession records token as an active session for the account.
func (r *Redis) PutSession(ctx context.Context, token, accountID string, ttl time.Duration) error {
	return r.rdb.Set(ctx, sessionKeyPrefix+token, accountID, ttl).Err()
}

// SessionAccount resolves an active session token to its account id.
func (r *Redis) SessionAccount(ctx context.Context, token string) (string, error) {
	return r.rdb.Get(ctx, sessionKeyPrefix+token).Result()
}

// DeleteSession drops the active-session pointer for the token.
func (r *Redis) DeleteSession(ctx context.Context, token string) error {
	return r.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}

// CacheLeaderboard stores the ranking for one tick window so every client
// polling the leaderboard within the window gets the same answer cheaply.
func (r *Redis) CacheLeaderboard(ctx context.Context, entries []models.LeaderboardEntry, ttl time.Duration) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, leaderboardKey, data, ttl).Err()
}

// CachedLeaderboard returns the cached ranking, if a fresh one exists.
func (r *Redis) CachedLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, bool) {
	data, err := r.rdb.Get(ctx, leaderboardKey).Result()
	if err != nil {
		return nil, false
	}
	var entries []models.LeaderboardEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, false
	}
	return entries, true
}
