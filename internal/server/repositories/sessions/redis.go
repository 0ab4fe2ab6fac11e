package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/common"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/models"
)

const keyPrefix = "session:"

// rotateScript performs the compare-and-swap server-side: the old key is read
// and deleted and the new key written in one atomic step, so two racing
// rotations of the same token can never both succeed.
var rotateScript = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if not v then
  return 0
end
redis.call("DEL", KEYS[1])
redis.call("SET", KEYS[2], v, "PX", ARGV[1])
return 1
`)

// RedisStore implements Store on Redis. The refresh token value is the key
// (prefixed), the subject id is the value, and the session expiry is the key
// TTL, so expired sessions disappear on their own.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, userID string, token string, expiresAt time.Time) error {
	if err := s.client.Set(ctx, keyPrefix+token, userID, time.Until(expiresAt)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (s *RedisStore) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	key := keyPrefix + token

	userID, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}

	ttl, err := s.client.PTTL(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	return &models.Session{
		UserID:  userID,
		Token:   token,
		Expires: time.Now().Add(ttl),
	}, nil
}

func (s *RedisStore) Rotate(ctx context.Context, oldToken, newToken string, expiresAt time.Time) error {
	rotated, err := rotateScript.Run(ctx, s.client,
		[]string{keyPrefix + oldToken, keyPrefix + newToken},
		time.Until(expiresAt).Milliseconds(),
	).Int64()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if rotated == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (s *RedisStore) DeleteByToken(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
