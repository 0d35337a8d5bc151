package cache

import (
	"github.com/agripay/agripay/internal/config"
	"github.com/agripay/agripay/internal/logger"
)

// Initialize sets up the cache system
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	log.Infow("initializing cache", "enabled", cfg.Cache.Enabled)
	return NewInMemoryCache(cfg.Cache.Enabled)
}
