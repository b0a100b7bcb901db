package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func TestLockKey(t *testing.T) {
	if got := lockKey("u-1"); got != "shiftlock:u-1" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestNewShiftLock_DefaultTTL(t *testing.T) {
	l := NewShiftLock(nil, 0, zerolog.Nop())
	if l.ttl != defaultLockTTL {
		t.Fatalf("expected default ttl %v, got %v", defaultLockTTL, l.ttl)
	}
}

func TestShiftLock_Acquire_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	l := NewShiftLock(client, time.Second, zerolog.Nop())
	release, ok, err := l.Acquire(context.Background(), "u-1")
	if err == nil {
		t.Fatalf("expected an error from an unreachable server")
	}
	if ok || release != nil {
		t.Fatalf("lock must not be reported as held on error")
	}
}
