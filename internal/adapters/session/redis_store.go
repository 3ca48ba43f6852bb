package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"epsg-finder-service/internal/domain"
	"epsg-finder-service/internal/platform/obs"
	"epsg-finder-service/internal/ports"
)

const resultKeyPrefix = "result:"

// Redis backed ResultStore. Entries expire after TTL so abandoned
// sessions do not accumulate.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, TTL: ttl}
}

func resultKey(sessionID string) string { return resultKeyPrefix + sessionID }

// Replace the stored resolution for the session.
func (s *RedisStore) Save(ctx context.Context, sessionID string, res domain.ResolutionResult) error {
	if s.Client == nil {
		return errors.New("result store: redis client is nil")
	}
	if sessionID == "" {
		return errors.New("result store: session id must not be empty")
	}

	b, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("save result: marshal: %w", err)
	}

	if err := s.Client.Set(ctx, resultKey(sessionID), b, s.TTL).Err(); err != nil {
		return fmt.Errorf("save result: redis set: %w", err)
	}
	return nil
}

// Return the stored resolution, or ErrNoResult when nothing is stored.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (_ domain.ResolutionResult, err error) {
	defer obs.Time(ctx, "session.redis.Get")(&err)

	if s.Client == nil {
		return domain.ResolutionResult{}, errors.New("result store: redis client is nil")
	}
	if sessionID == "" {
		return domain.ResolutionResult{}, errors.New("result store: session id must not be empty")
	}

	b, err := s.Client.Get(ctx, resultKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ResolutionResult{}, ports.ErrNoResult
	}
	if err != nil {
		return domain.ResolutionResult{}, fmt.Errorf("get result: redis get: %w", err)
	}

	var res domain.ResolutionResult
	if err := json.Unmarshal(b, &res); err != nil {
		return domain.ResolutionResult{}, fmt.Errorf("get result: unmarshal: %w", err)
	}
	return res, nil
}

// Drop the stored resolution.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if s.Client == nil {
		return errors.New("result store: redis client is nil")
	}
	if sessionID == "" {
		return errors.New("result store: session id must not be empty")
	}

	if err := s.Client.Del(ctx, resultKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear result: redis del: %w", err)
	}
	return nil
}
