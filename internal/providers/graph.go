package providers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vaultscope/vault-aggregator/internal/clients/chainclient"
	"github.com/vaultscope/vault-aggregator/internal/clients/graphclient"
	"github.com/vaultscope/vault-aggregator/internal/normalize"
	"github.com/vaultscope/vault-aggregator/internal/types"
	"github.com/vaultscope/vault-aggregator/pkg"
)

// GraphAdapter fronts the subgraph indexer. The chain client is only
// used for best-effort TVL refreshes when the subgraph has no USD
// figure; that secondary read runs under its own short timeout and its
// failure never fails the record.
type GraphAdapter struct {
	graph         graphclient.GraphInterface
	chain         chainclient.ChainInterface
	enrichTimeout time.Duration
}

var _ Adapter = (*GraphAdapter)(nil)

func NewGraphAdapter(graph graphclient.GraphInterface, chain chainclient.ChainInterface, enrichTimeout time.Duration) *GraphAdapter {
	return &GraphAdapter{
		graph:         graph,
		chain:         chain,
		enrichTimeout: enrichTimeout,
	}
}

func (a *GraphAdapter) Provider() types.Provider {
	return types.ProviderGraph
}

func (a *GraphAdapter) Vault(ctx context.Context, chainID uint64, address string) (*types.VaultRecord, error) {
	vault, err := a.graph.GetVault(ctx, chainID, address)
	if err != nil {
		return nil, err
	}

	status := types.VaultStatusActive
	if vault.Paused {
		status = types.VaultStatusPaused
	}

	return &types.VaultRecord{
		ID:      pkg.NormalizeAddress(vault.ID),
		ChainID: chainID,
		Name:    vault.Name,
		Symbol:  vault.Symbol,
		TVLUSD:  a.tvl(ctx, chainID, vault),
		APYNet:  canonicalOrZero(ctx, "netApy", vault.NetAPY),
		Fees: types.Fees{
			MgmtBps: vault.ManagementFeeBps,
			PerfBps: vault.PerformanceFeeBps,
		},
		Underlying: types.Underlying{
			Symbol:   vault.AssetSymbol,
			Address:  pkg.NormalizeAddress(vault.Asset),
			Decimals: vault.AssetDecimals,
		},
		Status: status,
		// The subgraph indexes request/claim vaults.
		Provider: types.ProviderGraph,
		Variant:  types.VariantAsync,
	}, nil
}

// Vaults is not supported: the subgraph is consulted per vault.
func (a *GraphAdapter) Vaults(ctx context.Context, chainID uint64) ([]types.VaultRecord, error) {
	return nil, types.NewUnsupportedError("subgraph provider does not enumerate vaults")
}

// PeriodSummaries fetches and normalizes the vault's settlement
// history for the yield calculator.
func (a *GraphAdapter) PeriodSummaries(ctx context.Context, chainID uint64, address string) ([]types.PeriodSummary, error) {
	raw, err := a.graph.GetPeriodSummaries(ctx, chainID, address)
	if err != nil {
		return nil, err
	}

	summaries := make([]types.PeriodSummary, 0, len(raw))
	for _, r := range raw {
		summaries = append(summaries, types.PeriodSummary{
			TotalAssetsAtStart:  floatOrZero(r.TotalAssetsAtStart),
			TotalSupplyAtStart:  floatOrZero(r.TotalSupplyAtStart),
			TotalAssetsAtEnd:    floatOrZero(r.TotalAssetsAtEnd),
			TotalSupplyAtEnd:    floatOrZero(r.TotalSupplyAtEnd),
			NetTotalSupplyAtEnd: floatOrZero(r.NetTotalSupplyAtEnd),
			StartTimestamp:      r.StartTimestamp,
			DurationSeconds:     r.Duration,
		})
	}
	return summaries, nil
}

// tvl prefers the subgraph's USD figure; without one it refreshes
// totalAssets straight from the contract under the enrichment budget.
func (a *GraphAdapter) tvl(ctx context.Context, chainID uint64, vault *graphclient.Vault) string {
	if vault.TotalAssetsUSD != "" {
		return canonicalOrZero(ctx, "totalAssetsUsd", vault.TotalAssetsUSD)
	}

	enrichCtx, cancel := context.WithTimeout(ctx, a.enrichTimeout)
	defer cancel()

	totalAssets, err := a.chain.TotalAssets(enrichCtx, chainID, vault.ID)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("vault", vault.ID).Msg("tvl enrichment read failed, using subgraph totalAssets")
		return canonicalOrZero(ctx, "totalAssets", vault.TotalAssets)
	}
	return normalize.FromBaseUnits(totalAssets, vault.AssetDecimals)
}

func floatOrZero(s string) float64 {
	f, ok := normalize.ParseFloat(s)
	if !ok {
		return 0
	}
	return f
}
