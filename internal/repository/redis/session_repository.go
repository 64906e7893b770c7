package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ecommerceBackend/domain"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// SessionRepository keeps one login session per user. A new login replaces the
// previous session and invalidates its token.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

func userKey(userID string) string {
	return fmt.Sprintf("session:user:%s", userID)
}

func tokenKey(token string) string {
	return fmt.Sprintf("session:token:%s", token)
}

func (r *SessionRepository) StoreSession(ctx context.Context, data domain.Session, ttl time.Duration) error {
	if previous, err := r.getSession(ctx, data.UserID); err == nil {
		if err := r.client.Del(ctx, tokenKey(previous.Token)).Err(); err != nil {
			return errors.Wrap(err, "failed to drop previous session token")
		}
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session data")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, userKey(data.UserID), jsonData, ttl)
	pipe.Set(ctx, tokenKey(data.Token), data.UserID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to store session in redis")
	}

	return nil
}

func (r *SessionRepository) getSession(ctx context.Context, userID string) (*domain.Session, error) {
	val, err := r.client.Get(ctx, userKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.NotFoundError("Session not found")
		}
		return nil, errors.Wrap(err, "failed to get session from redis")
	}

	var data domain.Session
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session data")
	}

	return &data, nil
}

// ValidateSession returns the user id owning token, or Unauthorized when the
// session has ended.
func (r *SessionRepository) ValidateSession(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.UnauthorizedError("Session expired or logged out")
		}
		return "", errors.Wrap(err, "failed to validate session")
	}

	return userID, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, userID string) error {
	data, err := r.getSession(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := r.client.Del(ctx, userKey(userID), tokenKey(data.Token)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}
