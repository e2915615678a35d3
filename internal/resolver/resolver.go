package resolver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vaultscope/vault-aggregator/internal/config"
	"github.com/vaultscope/vault-aggregator/internal/observability/metrics"
	"github.com/vaultscope/vault-aggregator/internal/providers"
	"github.com/vaultscope/vault-aggregator/internal/types"
	"github.com/vaultscope/vault-aggregator/pkg"
)

// SlugResolver translates a human-readable vault slug into an address.
type SlugResolver interface {
	AddressBySlug(ctx context.Context, chainID uint64, slug string) (string, error)
}

// curatedKey identifies one curated vault pin.
type curatedKey struct {
	chainID uint64
	address string
}

// Resolver picks the provider for a vault identifier. Curated vaults
// are pinned to a single authoritative provider and never fall back;
// everything else walks the configured priority order and takes the
// first adapter that answers.
type Resolver struct {
	adapters []providers.Adapter
	curated  map[curatedKey]types.Provider
	slugs    SlugResolver
}

// New builds a resolver over the given adapters, already sorted in
// best-effort priority order. slugs may be nil when no catalogue
// provider is configured; slug lookups then fail as unsupported.
func New(curated []config.CuratedVaultConfig, adapters []providers.Adapter, slugs SlugResolver) *Resolver {
	pins := make(map[curatedKey]types.Provider, len(curated))
	for _, c := range curated {
		pins[curatedKey{chainID: c.ChainID, address: pkg.NormalizeAddress(c.Address)}] = types.Provider(c.Provider)
	}
	return &Resolver{
		adapters: adapters,
		curated:  pins,
		slugs:    slugs,
	}
}

// Resolve returns the authoritative record for a vault identifier,
// which is either a 0x address or a catalogue slug.
func (r *Resolver) Resolve(ctx context.Context, chainID uint64, vaultID string) (*types.VaultRecord, error) {
	if !pkg.IsVaultAddress(vaultID) {
		return r.resolveSlug(ctx, chainID, vaultID)
	}

	address := pkg.NormalizeAddress(vaultID)
	if provider, ok := r.curated[curatedKey{chainID: chainID, address: address}]; ok {
		return r.resolveCurated(ctx, chainID, address, provider)
	}
	return r.resolveBestEffort(ctx, chainID, address)
}

func (r *Resolver) resolveSlug(ctx context.Context, chainID uint64, slug string) (*types.VaultRecord, error) {
	if r.slugs == nil {
		return nil, types.NewUnsupportedError("slug resolution requires the rest catalogue provider")
	}
	address, err := r.slugs.AddressBySlug(ctx, chainID, slug)
	if err != nil {
		if types.IsNotFoundError(err) {
			return nil, err
		}
		return nil, types.NewNotFoundError("slug %q on chain %d could not be resolved: %v", slug, chainID, err)
	}
	return r.Resolve(ctx, chainID, address)
}

// resolveCurated queries only the pinned provider. A subgraph outage
// degrades to a placeholder record so callers see "data temporarily
// unavailable" instead of "vault missing"; any other pinned provider
// failing means the identifier resolves to nothing.
func (r *Resolver) resolveCurated(ctx context.Context, chainID uint64, address string, provider types.Provider) (*types.VaultRecord, error) {
	start := time.Now()

	adapter := r.adapterFor(provider)
	if adapter == nil {
		metrics.RecordResolutionDuration(time.Since(start), "curated", true)
		return nil, types.NewNotFoundError("curated provider %s for vault %s is not configured", provider, address)
	}

	record, err := adapter.Vault(ctx, chainID, address)
	if err != nil {
		if provider == types.ProviderGraph {
			log.Ctx(ctx).Warn().Err(err).
				Str("vault", address).
				Uint64("chain_id", chainID).
				Msg("curated subgraph vault unavailable, serving placeholder")
			metrics.RecordResolutionDuration(time.Since(start), "curated", false)
			return placeholderRecord(chainID, address), nil
		}
		log.Ctx(ctx).Warn().Err(err).
			Str("vault", address).
			Uint64("chain_id", chainID).
			Str("provider", provider.String()).
			Msg("curated provider failed")
		metrics.RecordResolutionDuration(time.Since(start), "curated", true)
		return nil, types.NewNotFoundError("vault %s on chain %d not found", address, chainID)
	}

	metrics.RecordResolutionDuration(time.Since(start), "curated", false)
	return record, nil
}

func (r *Resolver) resolveBestEffort(ctx context.Context, chainID uint64, address string) (*types.VaultRecord, error) {
	start := time.Now()

	for _, adapter := range r.adapters {
		record, err := adapter.Vault(ctx, chainID, address)
		if err != nil {
			log.Ctx(ctx).Debug().Err(err).
				Str("vault", address).
				Uint64("chain_id", chainID).
				Str("provider", adapter.Provider().String()).
				Msg("provider could not resolve vault")
			continue
		}
		metrics.RecordResolutionDuration(time.Since(start), "best-effort", false)
		return record, nil
	}

	metrics.RecordResolutionDuration(time.Since(start), "best-effort", true)
	return nil, types.NewNotFoundError("vault %s on chain %d not found by any provider", address, chainID)
}

func (r *Resolver) adapterFor(provider types.Provider) providers.Adapter {
	for _, adapter := range r.adapters {
		if adapter.Provider() == provider {
			return adapter
		}
	}
	return nil
}

// placeholderRecord stands in for a curated subgraph vault whose
// indexer is unreachable. Economics are zeroed; the vault itself is
// known to exist, so the status stays active.
func placeholderRecord(chainID uint64, address string) *types.VaultRecord {
	return &types.VaultRecord{
		ID:       address,
		ChainID:  chainID,
		TVLUSD:   "0",
		APYNet:   "0",
		Status:   types.VaultStatusActive,
		Provider: types.ProviderGraph,
		Variant:  types.VariantAsync,
	}
}
