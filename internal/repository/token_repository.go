package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenInvalid is returned for unknown, expired or revoked refresh tokens.
var ErrTokenInvalid = errors.New("refresh token invalid")

// ErrTokenStoreUnavailable is returned when no redis client is configured;
// login still works, but sessions cannot be refreshed.
var ErrTokenStoreUnavailable = errors.New("token store unavailable")

// TokenRepo persists refresh-token hashes in redis, one key per hash with
// the token subject as value. Expiry is delegated to redis key TTLs, so
// validation never compares timestamps itself.
type TokenRepo struct{ rdb *redis.Client }

func NewTokenRepo(rdb *redis.Client) *TokenRepo { return &TokenRepo{rdb: rdb} }

func tokenKey(hash string) string { return "refresh:" + hash }

// StoreRefresh saves a refresh token hash for subject until exp.
func (r *TokenRepo) StoreRefresh(ctx context.Context, subject, tokenHash string, exp time.Time) error {
	if r.rdb == nil {
		return ErrTokenStoreUnavailable
	}
	ttl := time.Until(exp)
	if ttl <= 0 {
		return ErrTokenInvalid
	}
	return r.rdb.Set(ctx, tokenKey(tokenHash), subject, ttl).Err()
}

// ValidateRefresh returns the subject a live token hash was issued to.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
	if r.rdb == nil {
		return "", ErrTokenStoreUnavailable
	}
	subject, err := r.rdb.Get(ctx, tokenKey(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenInvalid
	}
	if err != nil {
		return "", err
	}
	return subject, nil
}

// RevokeByHash deletes a token hash; revoking an unknown hash is a no-op.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	if r.rdb == nil {
		return ErrTokenStoreUnavailable
	}
	return r.rdb.Del(ctx, tokenKey(tokenHash)).Err()
}
