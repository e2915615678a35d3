package config

import (
	"fmt"

	"github.com/vaultscope/vault-aggregator/internal/types"
)

// CuratedVaultConfig pins one vault to a single authoritative provider,
// bypassing best-effort fallback for it.
type CuratedVaultConfig struct {
	Address  string `mapstructure:"address"`
	ChainID  uint64 `mapstructure:"chain-id"`
	Provider string `mapstructure:"provider"`
}

// ResolverConfig defines provider resolution: the best-effort priority
// order and the curated overrides.
type ResolverConfig struct {
	// Priority lists providers in best-effort order; the first adapter
	// returning a match wins.
	Priority []string             `mapstructure:"priority"`
	Curated  []CuratedVaultConfig `mapstructure:"curated"`
}

// defaultPriority consults direct contract reads before the hosted API,
// with the subgraph last.
var defaultPriority = []string{
	types.ProviderChain.String(),
	types.ProviderAPI.String(),
	types.ProviderGraph.String(),
}

func (cfg *ResolverConfig) Validate() error {
	if len(cfg.Priority) == 0 {
		cfg.Priority = defaultPriority
	}
	seen := make(map[string]bool)
	for _, p := range cfg.Priority {
		if !types.Provider(p).Valid() {
			return fmt.Errorf("unknown provider %q in resolver priority", p)
		}
		if seen[p] {
			return fmt.Errorf("provider %q listed twice in resolver priority", p)
		}
		seen[p] = true
	}
	for _, c := range cfg.Curated {
		if c.Address == "" {
			return fmt.Errorf("curated vault entry is missing an address")
		}
		if c.ChainID == 0 {
			return fmt.Errorf("curated vault %s is missing a chain-id", c.Address)
		}
		if !types.Provider(c.Provider).Valid() {
			return fmt.Errorf("curated vault %s has unknown provider %q", c.Address, c.Provider)
		}
	}
	return nil
}

// PriorityProviders returns the priority order as typed providers.
func (cfg *ResolverConfig) PriorityProviders() []types.Provider {
	providers := make([]types.Provider, 0, len(cfg.Priority))
	for _, p := range cfg.Priority {
		providers = append(providers, types.Provider(p))
	}
	return providers
}
