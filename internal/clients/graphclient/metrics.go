package graphclient

import (
	"context"
	"time"

	"github.com/vaultscope/vault-aggregator/internal/observability/metrics"
	"github.com/vaultscope/vault-aggregator/internal/types"
)

type graphClientWithMetrics struct {
	graph GraphInterface
}

func NewGraphClientWithMetrics(graph GraphInterface) GraphInterface {
	return &graphClientWithMetrics{graph: graph}
}

func (c *graphClientWithMetrics) GetVault(ctx context.Context, chainID uint64, address string) (*Vault, error) {
	return runGraphClientMethodWithMetrics("GetVault", func() (*Vault, error) {
		return c.graph.GetVault(ctx, chainID, address)
	})
}

func (c *graphClientWithMetrics) GetPeriodSummaries(ctx context.Context, chainID uint64, address string) ([]PeriodSummary, error) {
	return runGraphClientMethodWithMetrics("GetPeriodSummaries", func() ([]PeriodSummary, error) {
		return c.graph.GetPeriodSummaries(ctx, chainID, address)
	})
}

func runGraphClientMethodWithMetrics[T any](method string, fn func() (T, error)) (T, error) {
	start := time.Now()
	result, err := fn()
	metrics.RecordProviderClientLatency(time.Since(start), types.ProviderGraph.String(), method, err != nil)
	return result, err
}
