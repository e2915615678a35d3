package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	defaultGraphTimeout       = 15 * time.Second
	defaultGraphMaxRetryTimes = 3
	defaultGraphRetryInterval = 500 * time.Millisecond
)

// GraphConfig defines the subgraph endpoints, one per chain id.
type GraphConfig struct {
	// Endpoints maps decimal chain ids to subgraph URLs.
	Endpoints     map[string]string `mapstructure:"endpoints"`
	Timeout       time.Duration     `mapstructure:"timeout"`
	MaxRetryTimes uint              `mapstructure:"max-retry-times"`
	RetryInterval time.Duration     `mapstructure:"retry-interval"`
}

func (cfg *GraphConfig) Validate() error {
	if len(cfg.Endpoints) == 0 {
		return errors.New("at least one subgraph endpoint is required")
	}
	for chain, endpoint := range cfg.Endpoints {
		if _, err := strconv.ParseUint(chain, 10, 64); err != nil {
			return fmt.Errorf("subgraph endpoint key %q is not a chain id", chain)
		}
		if endpoint == "" {
			return fmt.Errorf("subgraph endpoint for chain %s is empty", chain)
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGraphTimeout
	}
	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultGraphMaxRetryTimes
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultGraphRetryInterval
	}
	return nil
}

// EndpointFor returns the subgraph URL for a chain id.
func (cfg *GraphConfig) EndpointFor(chainID uint64) (string, bool) {
	endpoint, ok := cfg.Endpoints[strconv.FormatUint(chainID, 10)]
	return endpoint, ok
}
