package providers

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vaultscope/vault-aggregator/internal/clients/chainclient"
	"github.com/vaultscope/vault-aggregator/internal/normalize"
	"github.com/vaultscope/vault-aggregator/internal/types"
	"github.com/vaultscope/vault-aggregator/pkg"
)

// ChainAdapter builds a vault record from direct contract reads. It
// carries no APY (there is no history on-chain) and reports TVL in
// underlying units, which the stable-denominated vaults this engine
// serves treat as USD.
type ChainAdapter struct {
	chain chainclient.ChainInterface
}

var _ Adapter = (*ChainAdapter)(nil)

func NewChainAdapter(chain chainclient.ChainInterface) *ChainAdapter {
	return &ChainAdapter{chain: chain}
}

func (a *ChainAdapter) Provider() types.Provider {
	return types.ProviderChain
}

func (a *ChainAdapter) Vault(ctx context.Context, chainID uint64, address string) (*types.VaultRecord, error) {
	if !a.chain.SupportsChain(chainID) {
		return nil, types.NewUnsupportedError("no rpc configured for chain %d", chainID)
	}

	// totalAssets is the ERC-4626 marker read: a contract without it
	// is not a vault, whatever else it answers.
	totalAssets, err := a.chain.TotalAssets(ctx, chainID, address)
	if err != nil {
		if types.IsUpstreamError(err) {
			return nil, err
		}
		return nil, types.NewNotFoundError("contract %s on chain %d is not a vault", address, chainID)
	}

	assetAddr, err := a.chain.Asset(ctx, chainID, address)
	if err != nil {
		return nil, types.NewNotFoundError("contract %s on chain %d has no asset(): not a vault", address, chainID)
	}
	assetDecimals, err := a.chain.Decimals(ctx, chainID, assetAddr)
	if err != nil {
		return nil, err
	}

	name, err := a.chain.Name(ctx, chainID, address)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("vault", address).Msg("vault name read failed")
	}
	symbol, err := a.chain.Symbol(ctx, chainID, address)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("vault", address).Msg("vault symbol read failed")
	}
	assetSymbol, err := a.chain.Symbol(ctx, chainID, assetAddr)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("asset", assetAddr).Msg("asset symbol read failed")
	}

	status := types.VaultStatusActive
	paused, err := a.chain.Paused(ctx, chainID, address)
	if err != nil {
		// Contracts without a pause switch are simply never paused.
		if types.IsUpstreamError(err) {
			log.Ctx(ctx).Debug().Err(err).Str("vault", address).Msg("paused read failed, assuming active")
		}
	} else if paused {
		status = types.VaultStatusPaused
	}

	return &types.VaultRecord{
		ID:      pkg.NormalizeAddress(address),
		ChainID: chainID,
		Name:    name,
		Symbol:  symbol,
		TVLUSD:  normalize.FromBaseUnits(totalAssets, assetDecimals),
		APYNet:  normalize.Zero,
		Underlying: types.Underlying{
			Symbol:   assetSymbol,
			Address:  pkg.NormalizeAddress(assetAddr),
			Decimals: assetDecimals,
		},
		Status:   status,
		Provider: types.ProviderChain,
		Variant:  types.VariantSync,
	}, nil
}

// Vaults is not supported: contracts cannot be enumerated from state.
func (a *ChainAdapter) Vaults(ctx context.Context, chainID uint64) ([]types.VaultRecord, error) {
	return nil, types.NewUnsupportedError("chain provider does not enumerate vaults")
}
