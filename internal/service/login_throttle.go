package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const loginAttemptsPrefix = "login_attempts:"

// LoginThrottle counts login attempts per email in Redis and locks the email
// out once the limit is reached within the window. A successful login resets
// the count, so only consecutive failures accumulate. Unknown emails are
// counted too. A nil throttle allows everything.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginThrottle builds the throttle. maxAttempts <= 0 disables it.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginThrottle {
	if client == nil || maxAttempts <= 0 {
		return nil
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window, logger: logger}
}

// Acquire reserves one login attempt for email and reports whether it is
// within the limit. The counter is incremented before the credentials are
// checked, so concurrent attempts never exceed maxAttempts. The window starts
// at the first attempt. Redis failures allow the attempt.
func (t *LoginThrottle) Acquire(ctx context.Context, email string) bool {
	if t == nil {
		return true
	}
	key := loginAttemptsPrefix + email
	var incr *redis.IntCmd
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, t.window)
		return nil
	})
	if err != nil {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
		return true
	}
	return incr.Val() <= int64(t.maxAttempts)
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	if t == nil {
		return
	}
	if err := t.client.Del(ctx, loginAttemptsPrefix+email).Err(); err != nil {
		t.logger.Warn("reset login failures", zap.Error(err))
	}
}
