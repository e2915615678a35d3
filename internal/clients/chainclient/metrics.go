package chainclient

import (
	"context"
	"math/big"
	"time"

	"github.com/vaultscope/vault-aggregator/internal/observability/metrics"
	"github.com/vaultscope/vault-aggregator/internal/types"
)

type chainClientWithMetrics struct {
	chain ChainInterface
}

func NewChainClientWithMetrics(chain ChainInterface) ChainInterface {
	return &chainClientWithMetrics{chain: chain}
}

func (c *chainClientWithMetrics) TotalAssets(ctx context.Context, chainID uint64, vault string) (*big.Int, error) {
	return runChainClientMethodWithMetrics("TotalAssets", func() (*big.Int, error) {
		return c.chain.TotalAssets(ctx, chainID, vault)
	})
}

func (c *chainClientWithMetrics) TotalSupply(ctx context.Context, chainID uint64, vault string) (*big.Int, error) {
	return runChainClientMethodWithMetrics("TotalSupply", func() (*big.Int, error) {
		return c.chain.TotalSupply(ctx, chainID, vault)
	})
}

func (c *chainClientWithMetrics) Decimals(ctx context.Context, chainID uint64, token string) (uint8, error) {
	return runChainClientMethodWithMetrics("Decimals", func() (uint8, error) {
		return c.chain.Decimals(ctx, chainID, token)
	})
}

func (c *chainClientWithMetrics) Asset(ctx context.Context, chainID uint64, vault string) (string, error) {
	return runChainClientMethodWithMetrics("Asset", func() (string, error) {
		return c.chain.Asset(ctx, chainID, vault)
	})
}

func (c *chainClientWithMetrics) Name(ctx context.Context, chainID uint64, vault string) (string, error) {
	return runChainClientMethodWithMetrics("Name", func() (string, error) {
		return c.chain.Name(ctx, chainID, vault)
	})
}

func (c *chainClientWithMetrics) Symbol(ctx context.Context, chainID uint64, vault string) (string, error) {
	return runChainClientMethodWithMetrics("Symbol", func() (string, error) {
		return c.chain.Symbol(ctx, chainID, vault)
	})
}

func (c *chainClientWithMetrics) Paused(ctx context.Context, chainID uint64, vault string) (bool, error) {
	return runChainClientMethodWithMetrics("Paused", func() (bool, error) {
		return c.chain.Paused(ctx, chainID, vault)
	})
}

func (c *chainClientWithMetrics) SupportsChain(chainID uint64) bool {
	return c.chain.SupportsChain(chainID)
}

func runChainClientMethodWithMetrics[T any](method string, fn func() (T, error)) (T, error) {
	start := time.Now()
	result, err := fn()
	metrics.RecordProviderClientLatency(time.Since(start), types.ProviderChain.String(), method, err != nil)
	return result, err
}
