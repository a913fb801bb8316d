package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pharmacy/backend/internal/domain/shared"
	"github.com/pharmacy/backend/internal/infrastructure/config"
)

// NewIdempotencyStore selects the idempotency backend from config.
// With Redis enabled the claims are shared across instances; otherwise
// a process-local store is used, which is fine for a single-instance
// deployment.
func NewIdempotencyStore(cfg config.RedisConfig, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if !cfg.Enabled {
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := NewRedisIdempotencyStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("redis idempotency store: %w", err)
	}
	logger.Info("using Redis idempotency store", zap.String("addr", cfg.Addr()))
	return store, nil
}
