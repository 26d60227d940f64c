package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// lockTTL bounds how long a claim can hold a job's lock. Verification is two
// network calls; a minute covers the worst case and still self-heals if a
// process dies mid-claim.
const lockTTL = time.Minute

// ClaimLock is a per-job advisory lock backed by Redis SET NX.
// Key format: paylock:<job_id>
type ClaimLock struct {
	client *redis.Client
}

// NewClaimLock creates a ClaimLock wrapping the given Redis client.
func NewClaimLock(client *redis.Client) *ClaimLock {
	return &ClaimLock{client: client}
}

// Acquire takes the lock for jobID. It returns false when another claim
// already holds it.
func (l *ClaimLock) Acquire(ctx context.Context, jobID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(jobID), "1", lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("claim lock: %w", err)
	}
	return ok, nil
}

// Release frees the lock. Errors are swallowed: the TTL reclaims the key
// anyway, and the claim's outcome is already decided.
func (l *ClaimLock) Release(ctx context.Context, jobID string) {
	_ = l.client.Del(ctx, l.key(jobID)).Err()
}

func (l *ClaimLock) key(jobID string) string {
	return fmt.Sprintf("paylock:%s", jobID)
}
