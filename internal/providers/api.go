package providers

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/vaultscope/vault-aggregator/internal/clients/apiclient"
	"github.com/vaultscope/vault-aggregator/internal/normalize"
	"github.com/vaultscope/vault-aggregator/internal/types"
	"github.com/vaultscope/vault-aggregator/pkg"
)

// APIAdapter fronts the hosted vaults REST API.
type APIAdapter struct {
	client apiclient.ApiInterface
}

var _ Adapter = (*APIAdapter)(nil)

func NewAPIAdapter(client apiclient.ApiInterface) *APIAdapter {
	return &APIAdapter{client: client}
}

func (a *APIAdapter) Provider() types.Provider {
	return types.ProviderAPI
}

func (a *APIAdapter) Vault(ctx context.Context, chainID uint64, address string) (*types.VaultRecord, error) {
	vault, err := a.client.GetVault(ctx, chainID, address)
	if err != nil {
		return nil, err
	}
	return a.record(ctx, chainID, *vault), nil
}

func (a *APIAdapter) Vaults(ctx context.Context, chainID uint64) ([]types.VaultRecord, error) {
	vaults, err := a.client.ListVaults(ctx, chainID)
	if err != nil {
		return nil, err
	}
	records := make([]types.VaultRecord, 0, len(vaults))
	for _, v := range vaults {
		records = append(records, *a.record(ctx, chainID, v))
	}
	return records, nil
}

// AddressBySlug translates a human-readable vault slug into its
// canonical address. Slugs only exist in the REST API's catalogue.
func (a *APIAdapter) AddressBySlug(ctx context.Context, chainID uint64, slug string) (string, error) {
	vaults, err := a.client.ListVaults(ctx, chainID)
	if err != nil {
		return "", err
	}
	for _, v := range vaults {
		if strings.EqualFold(v.Slug, slug) {
			return pkg.NormalizeAddress(v.Address), nil
		}
	}
	return "", types.NewNotFoundError("no vault with slug %q on chain %d", slug, chainID)
}

func (a *APIAdapter) record(ctx context.Context, chainID uint64, v apiclient.Vault) *types.VaultRecord {
	variant := types.VariantSync
	if v.Async {
		variant = types.VariantAsync
	}
	return &types.VaultRecord{
		ID:      pkg.NormalizeAddress(v.Address),
		ChainID: chainID,
		Name:    v.Name,
		Symbol:  v.Symbol,
		TVLUSD:  canonicalOrZero(ctx, "tvlUsd", v.TVLUSD.String()),
		APYNet:  canonicalOrZero(ctx, "apyNet", v.APYNet.String()),
		Fees: types.Fees{
			MgmtBps: v.Fees.ManagementFeeBps,
			PerfBps: v.Fees.PerformanceFeeBps,
		},
		Underlying: types.Underlying{
			Symbol:   v.Underlying.Symbol,
			Address:  pkg.NormalizeAddress(v.Underlying.Address),
			Decimals: v.Underlying.Decimals,
		},
		Status:   statusFromString(v.Status),
		Provider: types.ProviderAPI,
		Variant:  variant,
	}
}

func statusFromString(s string) types.VaultStatus {
	switch types.VaultStatus(strings.ToLower(s)) {
	case types.VaultStatusPaused:
		return types.VaultStatusPaused
	case types.VaultStatusDeprecated:
		return types.VaultStatusDeprecated
	default:
		return types.VaultStatusActive
	}
}

// canonicalOrZero normalizes an upstream numeric, degrading a
// malformed value to zero instead of failing the whole record.
func canonicalOrZero(ctx context.Context, field, raw string) string {
	canonical, err := normalize.Canonical(raw)
	if err != nil {
		log.Ctx(ctx).Warn().Str("field", field).Str("value", raw).Msg("upstream numeric is malformed, using zero")
		return normalize.Zero
	}
	return canonical
}
