package apiclient

import (
	"context"
	"time"

	"github.com/vaultscope/vault-aggregator/internal/observability/metrics"
	"github.com/vaultscope/vault-aggregator/internal/types"
)

type apiClientWithMetrics struct {
	api ApiInterface
}

func NewApiClientWithMetrics(api ApiInterface) ApiInterface {
	return &apiClientWithMetrics{api: api}
}

func (c *apiClientWithMetrics) GetVault(ctx context.Context, chainID uint64, address string) (*Vault, error) {
	return runApiClientMethodWithMetrics("GetVault", func() (*Vault, error) {
		return c.api.GetVault(ctx, chainID, address)
	})
}

func (c *apiClientWithMetrics) ListVaults(ctx context.Context, chainID uint64) ([]Vault, error) {
	return runApiClientMethodWithMetrics("ListVaults", func() ([]Vault, error) {
		return c.api.ListVaults(ctx, chainID)
	})
}

func runApiClientMethodWithMetrics[T any](method string, fn func() (T, error)) (T, error) {
	start := time.Now()
	result, err := fn()
	metrics.RecordProviderClientLatency(time.Since(start), types.ProviderAPI.String(), method, err != nil)
	return result, err
}
