package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/interaction-analytics/internal/config"
)

// datasetVersionKey holds the version of the most recently loaded snapshot,
// published for external consumers (dashboards polling for staleness).
const datasetVersionKey = "analytics:dataset_version"

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// PublishDatasetVersion records the current snapshot version.
func (r *Redis) PublishDatasetVersion(ctx context.Context, version string) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Set(ctx, datasetVersionKey, version, 0).Err()
}

// DatasetVersion returns the published snapshot version, empty when unset.
func (r *Redis) DatasetVersion(ctx context.Context) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("redis client not configured")
	}
	version, err := r.Client.Get(ctx, datasetVersionKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return version, err
}
