package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	defaultChainTimeout       = 15 * time.Second
	defaultEnrichTimeout      = 3 * time.Second
	defaultChainMaxRetryTimes = 3
	defaultChainRetryInterval = 500 * time.Millisecond
)

// ChainConfig defines the EVM RPC endpoints used for direct contract
// reads, one per chain id.
type ChainConfig struct {
	// RPCURLs maps decimal chain ids to JSON-RPC endpoints.
	RPCURLs map[string]string `mapstructure:"rpc-urls"`
	Timeout time.Duration     `mapstructure:"timeout"`
	// EnrichTimeout bounds secondary TVL enrichment reads, which are
	// best-effort and must not hold up a response.
	EnrichTimeout time.Duration `mapstructure:"enrich-timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *ChainConfig) Validate() error {
	if len(cfg.RPCURLs) == 0 {
		return errors.New("at least one chain rpc-url is required")
	}
	for chain, rpcURL := range cfg.RPCURLs {
		if _, err := strconv.ParseUint(chain, 10, 64); err != nil {
			return fmt.Errorf("rpc-url key %q is not a chain id", chain)
		}
		if rpcURL == "" {
			return fmt.Errorf("rpc-url for chain %s is empty", chain)
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultChainTimeout
	}
	if cfg.EnrichTimeout <= 0 {
		cfg.EnrichTimeout = defaultEnrichTimeout
	}
	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultChainMaxRetryTimes
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultChainRetryInterval
	}
	return nil
}

// RPCURLFor returns the JSON-RPC endpoint for a chain id.
func (cfg *ChainConfig) RPCURLFor(chainID uint64) (string, bool) {
	rpcURL, ok := cfg.RPCURLs[strconv.FormatUint(chainID, 10)]
	return rpcURL, ok
}

// ChainIDs returns the configured chain ids.
func (cfg *ChainConfig) ChainIDs() []uint64 {
	ids := make([]uint64, 0, len(cfg.RPCURLs))
	for chain := range cfg.RPCURLs {
		id, err := strconv.ParseUint(chain, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
