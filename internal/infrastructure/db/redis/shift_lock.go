package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/concertshift/timesheet/internal/core/ports"
)

const defaultLockTTL = 10 * time.Second

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-taken by another request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ShiftLock serialises clock-in attempts per user.
// Key format: shiftlock:<user_id>
type ShiftLock struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewShiftLock wraps client. A non-positive ttl selects 10s.
func NewShiftLock(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *ShiftLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &ShiftLock{client: client, ttl: ttl, logger: logger}
}

var _ ports.ShiftLocker = (*ShiftLock)(nil)

// Acquire takes the user's lock. ok is false when another request holds it.
func (l *ShiftLock) Acquire(ctx context.Context, userID string) (func(), bool, error) {
	key := lockKey(userID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("shift lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		// The request context may already be cancelled.
		relCtx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		if err := releaseScript.Run(relCtx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to release shift lock")
		}
	}
	return release, true, nil
}

func lockKey(userID string) string {
	return "shiftlock:" + userID
}
