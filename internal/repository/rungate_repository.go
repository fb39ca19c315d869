package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/ledgerline/emi-scheduler/pkg/errors"
)

const runGateKeyPrefix = "emi:last_checked:"

type runGateStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRunGateStore returns a Redis-backed run gate. The TTL only bounds how
// long a stale marker can linger; expiry merely costs one redundant (and
// idempotent) run.
func NewRunGateStore(client *redis.Client, ttl time.Duration) RunGateStore {
	return &runGateStore{client: client, ttl: ttl}
}

func (s *runGateStore) LastChecked(ctx context.Context, userID string) (string, error) {
	val, err := s.client.Get(ctx, runGateKeyPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", apperrors.WrapGate(err)
	}
	return val, nil
}

func (s *runGateStore) SetChecked(ctx context.Context, userID string, day string) error {
	if err := s.client.Set(ctx, runGateKeyPrefix+userID, day, s.ttl).Err(); err != nil {
		return apperrors.WrapGate(err)
	}
	return nil
}
