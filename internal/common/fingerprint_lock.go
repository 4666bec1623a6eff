package common

import (
	"context"
	"fmt"
	"time"

	"flightontime/backend/internal/constants"
	"flightontime/backend/internal/logging"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// FingerprintLock serializes the cache-miss path for one prediction fingerprint
// across service instances.
type FingerprintLock interface {
	// TryLock attempts to take the lock without blocking. When ok is true the
	// caller must call unlock once done.
	TryLock(ctx context.Context, fingerprint string, ttl time.Duration) (unlock func(), ok bool, err error)
}

// RedisFingerprintLock implements FingerprintLock with SET NX PX
type RedisFingerprintLock struct {
	client *redis.Client
}

var _ FingerprintLock = (*RedisFingerprintLock)(nil)

// only the holder's token may delete the key
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewRedisFingerprintLock(client *redis.Client) *RedisFingerprintLock {
	return &RedisFingerprintLock{client: client}
}

func (l *RedisFingerprintLock) TryLock(ctx context.Context, fingerprint string, ttl time.Duration) (func(), bool, error) {
	key := string(constants.CachePrefixFingerprintLock) + fingerprint
	token := uuid.New().String()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire fingerprint lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	unlock := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseLockScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
			logging.Warn("Failed to release fingerprint lock", "key", key, "error", err.Error())
		}
	}
	return unlock, true, nil
}
