package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rpg-server/internal/interfaces"
	"rpg-server/internal/models"
)

var _ interfaces.TokenRepository = (*redisTokenRepository)(nil)

type redisTokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTokenRepository stores access_uuid:<uuid> -> username with the token TTL.
func NewRedisTokenRepository(client *redis.Client, logger *zap.Logger) interfaces.TokenRepository {
	return &redisTokenRepository{client: client, logger: logger.Named("RedisTokenRepo")}
}

func accessKey(accessUUID string) string {
	return fmt.Sprintf("access_uuid:%s", accessUUID)
}

func (r *redisTokenRepository) SetToken(ctx context.Context, accessUUID, username string, ttl time.Duration) error {
	if err := r.client.Set(ctx, accessKey(accessUUID), username, ttl).Err(); err != nil {
		r.logger.Error("Failed to store access token", zap.Error(err), zap.String("username", username))
		return fmt.Errorf("failed to set token details in redis: %w", err)
	}
	return nil
}

func (r *redisTokenRepository) GetUsernameByAccessUUID(ctx context.Context, accessUUID string) (string, error) {
	username, err := r.client.Get(ctx, accessKey(accessUUID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", models.ErrTokenNotFound
		}
		r.logger.Error("Failed to read access token", zap.Error(err), zap.String("accessUUID", accessUUID))
		return "", fmt.Errorf("failed to get token from redis: %w", err)
	}
	return username, nil
}

func (r *redisTokenRepository) DeleteToken(ctx context.Context, accessUUID string) error {
	deleted, err := r.client.Del(ctx, accessKey(accessUUID)).Result()
	if err != nil {
		r.logger.Error("Failed to delete access token", zap.Error(err), zap.String("accessUUID", accessUUID))
		return fmt.Errorf("failed to delete token from redis: %w", err)
	}
	r.logger.Debug("Access token deleted", zap.String("accessUUID", accessUUID), zap.Int64("deleted", deleted))
	return nil
}
