package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://api.example.com",
		},
		Graph: GraphConfig{
			Endpoints: map[string]string{
				"1":    "https://graph.example.com/mainnet",
				"8453": "https://graph.example.com/base",
			},
		},
		Chain: ChainConfig{
			RPCURLs: map[string]string{
				"1":    "https://rpc.example.com/mainnet",
				"8453": "https://rpc.example.com/base",
			},
		},
		Resolver: ResolverConfig{
			Curated: []CuratedVaultConfig{
				{
					Address:  "0x1111111111111111111111111111111111111111",
					ChainID:  1,
					Provider: "graph",
				},
			},
		},
	}
}

func TestConfigValidate_Defaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, uint(3), cfg.API.MaxRetryTimes)
	assert.Equal(t, 15*time.Second, cfg.Graph.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Chain.EnrichTimeout)
	assert.Equal(t, 60*time.Second, cfg.Cache.SweepInterval)
	assert.Equal(t, []string{"chain", "api", "graph"}, cfg.Resolver.Priority)
	assert.Equal(t, 2112, cfg.Metrics.GetMetricsPort())
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestConfigValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "missing api base url",
			mutate: func(c *Config) { c.API.BaseURL = "" },
		},
		{
			name:   "no subgraph endpoints",
			mutate: func(c *Config) { c.Graph.Endpoints = nil },
		},
		{
			name: "subgraph key is not a chain id",
			mutate: func(c *Config) {
				c.Graph.Endpoints = map[string]string{"mainnet": "https://graph.example.com"}
			},
		},
		{
			name:   "no rpc urls",
			mutate: func(c *Config) { c.Chain.RPCURLs = nil },
		},
		{
			name:   "unknown provider in priority",
			mutate: func(c *Config) { c.Resolver.Priority = []string{"chain", "oracle"} },
		},
		{
			name:   "duplicate provider in priority",
			mutate: func(c *Config) { c.Resolver.Priority = []string{"api", "api"} },
		},
		{
			name:   "curated entry without chain id",
			mutate: func(c *Config) { c.Resolver.Curated[0].ChainID = 0 },
		},
		{
			name:   "curated entry with unknown provider",
			mutate: func(c *Config) { c.Resolver.Curated[0].Provider = "mystery" },
		},
		{
			name:   "metrics port out of range",
			mutate: func(c *Config) { c.Metrics.Port = 70000 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestChainConfigLookups(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	rpcURL, ok := cfg.Chain.RPCURLFor(8453)
	require.True(t, ok)
	assert.Equal(t, "https://rpc.example.com/base", rpcURL)

	_, ok = cfg.Chain.RPCURLFor(42161)
	assert.False(t, ok)

	assert.ElementsMatch(t, []uint64{1, 8453}, cfg.Chain.ChainIDs())

	endpoint, ok := cfg.Graph.EndpointFor(1)
	require.True(t, ok)
	assert.Equal(t, "https://graph.example.com/mainnet", endpoint)
}

func TestNewFromFile(t *testing.T) {
	const raw = `
api:
  base-url: https://api.example.com
  timeout: 5s
graph:
  endpoints:
    "1": https://graph.example.com/mainnet
chain:
  rpc-urls:
    "1": https://rpc.example.com/mainnet
resolver:
  priority: [graph, chain, api]
  curated:
    - address: "0x2222222222222222222222222222222222222222"
      chain-id: 1
      provider: graph
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"graph", "chain", "api"}, cfg.Resolver.Priority)
	require.Len(t, cfg.Resolver.Curated, 1)
	assert.Equal(t, uint64(1), cfg.Resolver.Curated[0].ChainID)
}

func TestNewMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
