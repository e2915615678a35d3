package config

import (
	"time"
)

const defaultSweepInterval = 60 * time.Second

// CacheConfig defines the in-memory cache lifecycle.
type CacheConfig struct {
	SweepInterval time.Duration `mapstructure:"sweep-interval"`
}

func (cfg *CacheConfig) Validate() error {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}
	return nil
}
