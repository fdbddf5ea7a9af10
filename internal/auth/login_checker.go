package auth

import (
	"context"
	"errors"
	"time"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
)

// LoginChecker resolves tokens to account ids. Positive lookups are cached
// in-process so that most requests never reach redis.
type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	cache       *freecache.Cache
	now         func() time.Time
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client, cacheSizeBytes int) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		cache:       freecache.NewCache(cacheSizeBytes),
		now:         time.Now,
	}
}

// AccountID returns the account behind token, or ErrNotLogged.
func (lc *LoginChecker) AccountID(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, ErrNotLogged
	}

	if cached, err := lc.cache.Get([]byte(token)); err == nil {
		if session, err := decodeSession(string(cached)); err == nil && !session.expired(lc.ttl, lc.now()) {
			return session.AccountID, nil
		}
		lc.cache.Del([]byte(token))
	}

	val, err := lc.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotLogged
	}
	if err != nil {
		return 0, err
	}

	session, err := decodeSession(val)
	if err != nil {
		return 0, err
	}
	if session.expired(lc.ttl, lc.now()) {
		return 0, ErrNotLogged
	}

	remaining := int(lc.ttl.Seconds() - lc.now().Sub(session.CreatedAt).Seconds())
	if remaining > 0 {
		// best effort, a full cache just means the next lookup goes to redis
		_ = lc.cache.Set([]byte(token), []byte(val), remaining)
	}

	return session.AccountID, nil
}

// Forget drops the cached entry, called on logout.
func (lc *LoginChecker) Forget(token string) {
	lc.cache.Del([]byte(token))
}
