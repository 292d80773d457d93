package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sweepLockKey = "ticket:sweep:lock"
	sweepLockTTL = 30 * time.Minute
)

// SweepLockStore provides a Redis-based lease so only one process runs the
// archival sweep at a time. The lease carries the holder's instance ID and
// expires on its own if the holder dies mid-sweep.
type SweepLockStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSweepLockStore(client *redis.Client) *SweepLockStore {
	return &SweepLockStore{
		client: client,
		ttl:    sweepLockTTL,
	}
}

// Acquire attempts to take the sweep lease. It returns true when this
// instance now holds the lease, false when another holder is active.
func (s *SweepLockStore) Acquire(ctx context.Context, instanceID string) (bool, error) {
	ok, err := s.client.SetNX(ctx, sweepLockKey, instanceID, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire sweep lock: %w", err)
	}
	return ok, nil
}

// Release drops the lease, but only if this instance still holds it. A lease
// that expired and was re-acquired elsewhere is left alone.
func (s *SweepLockStore) Release(ctx context.Context, instanceID string) error {
	const script = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`
	if err := redis.NewScript(script).Run(ctx, s.client, []string{sweepLockKey}, instanceID).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release sweep lock: %w", err)
	}
	return nil
}

// Holder returns the instance ID currently holding the lease, or empty when
// the lease is free.
func (s *SweepLockStore) Holder(ctx context.Context) (string, error) {
	holder, err := s.client.Get(ctx, sweepLockKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read sweep lock holder: %w", err)
	}
	return holder, nil
}
