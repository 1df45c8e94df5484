package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// LoginGuardFactory creates login guard stores based on configuration
type LoginGuardFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// LoginGuardFactoryOption is a functional option for configuring the factory
type LoginGuardFactoryOption func(*LoginGuardFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) LoginGuardFactoryOption {
	return func(f *LoginGuardFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory guard
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) LoginGuardFactoryOption {
	return func(f *LoginGuardFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewLoginGuardFactory creates a new factory
func NewLoginGuardFactory(cfg config.RedisConfig, opts ...LoginGuardFactoryOption) *LoginGuardFactory {
	f := &LoginGuardFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore creates a login guard, Redis first with optional in-memory
// fallback
func (f *LoginGuardFactory) CreateStore() (shared.IdempotencyStore, error) {
	store, err := NewRedisLoginGuard(RedisGuardConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("using Redis login merge guard")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for login merge guard but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory login merge guard. "+
		"A replayed login against another instance may re-run the merge.",
		zap.Error(err),
	)
	return NewInMemoryLoginGuard(), nil
}
