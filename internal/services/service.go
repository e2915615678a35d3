package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vaultscope/vault-aggregator/internal/cache"
	"github.com/vaultscope/vault-aggregator/internal/config"
	"github.com/vaultscope/vault-aggregator/internal/observability/metrics"
	"github.com/vaultscope/vault-aggregator/internal/providers"
	"github.com/vaultscope/vault-aggregator/internal/types"
	"github.com/vaultscope/vault-aggregator/internal/yield"
	"github.com/vaultscope/vault-aggregator/pkg"
)

// Cache TTLs are proportional to how fast the underlying data moves.
const (
	listTTL  = 15 * time.Second
	vaultTTL = 10 * time.Second
	// userTTL covers user-scoped reads (positions, allowances) once
	// those land; nothing uses it yet.
	userTTL = 5 * time.Second
)

// VaultResolver resolves a vault identifier to its authoritative record.
type VaultResolver interface {
	Resolve(ctx context.Context, chainID uint64, vaultID string) (*types.VaultRecord, error)
}

// HistorySource supplies a vault's settlement-period history.
type HistorySource interface {
	PeriodSummaries(ctx context.Context, chainID uint64, address string) ([]types.PeriodSummary, error)
}

// TransactionBuilder shapes an unsigned vault call.
type TransactionBuilder interface {
	Build(ctx context.Context, vault *types.VaultRecord, action types.Action, amount, userAddress string) (*types.CallDescriptor, error)
}

// Service is the engine's facade: resolution, listing, yield
// enrichment and transaction shaping behind TTL caches.
type Service struct {
	cfg      *config.Config
	resolver VaultResolver
	history  HistorySource
	listers  []providers.Adapter
	builder  TransactionBuilder

	vaultCache *cache.Cache[string, types.VaultRecord]
	listCache  *cache.Cache[string, []types.VaultRecord]

	now func() time.Time
}

func New(
	cfg *config.Config,
	resolver VaultResolver,
	history HistorySource,
	listers []providers.Adapter,
	builder TransactionBuilder,
) *Service {
	return &Service{
		cfg:        cfg,
		resolver:   resolver,
		history:    history,
		listers:    listers,
		builder:    builder,
		vaultCache: cache.New[string, types.VaultRecord](cfg.Cache.SweepInterval),
		listCache:  cache.New[string, []types.VaultRecord](cfg.Cache.SweepInterval),
		now:        time.Now,
	}
}

// Stop tears down the cache sweep loops.
func (s *Service) Stop() {
	s.vaultCache.Stop()
	s.listCache.Stop()
}

// ResolveVault returns the authoritative record for one vault,
// enriched with yield windows when history is available. The record is
// cached by canonical address, so a slug and its address share one
// entry.
func (s *Service) ResolveVault(ctx context.Context, chainID uint64, vaultID string) (*types.VaultRecord, error) {
	if pkg.IsVaultAddress(vaultID) {
		key := vaultCacheKey(chainID, pkg.NormalizeAddress(vaultID))
		if cached, ok := s.vaultCache.Get(key); ok {
			metrics.RecordCacheRequest("vault", true)
			return &cached, nil
		}
		metrics.RecordCacheRequest("vault", false)
	}

	record, err := s.resolver.Resolve(ctx, chainID, vaultID)
	if err != nil {
		return nil, err
	}

	enriched := s.enrichYield(ctx, *record)
	s.vaultCache.Set(vaultCacheKey(chainID, enriched.ID), enriched, vaultTTL)
	return &enriched, nil
}

// ListVaults fans out one goroutine per chain and joins the results.
// A failing chain is logged and dropped; the caller gets whatever the
// healthy chains produced.
func (s *Service) ListVaults(ctx context.Context, chainIDs []uint64) ([]types.VaultRecord, error) {
	results := make([][]types.VaultRecord, len(chainIDs))

	var wg sync.WaitGroup
	for i, chainID := range chainIDs {
		wg.Add(1)
		go func(i int, chainID uint64) {
			defer wg.Done()
			records, err := s.listChain(ctx, chainID)
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Uint64("chain_id", chainID).Msg("chain listing failed, dropping from results")
				return
			}
			results[i] = records
		}(i, chainID)
	}
	wg.Wait()

	var merged []types.VaultRecord
	for _, records := range results {
		merged = append(merged, records...)
	}
	return merged, nil
}

func (s *Service) listChain(ctx context.Context, chainID uint64) ([]types.VaultRecord, error) {
	key := listCacheKey(chainID)
	if cached, ok := s.listCache.Get(key); ok {
		metrics.RecordCacheRequest("list", true)
		return cached, nil
	}
	metrics.RecordCacheRequest("list", false)

	seen := make(map[string]bool)
	var records []types.VaultRecord
	var lastErr error
	for _, lister := range s.listers {
		chainRecords, err := lister.Vaults(ctx, chainID)
		if err != nil {
			if !types.IsUnsupportedError(err) {
				log.Ctx(ctx).Debug().Err(err).
					Uint64("chain_id", chainID).
					Str("provider", lister.Provider().String()).
					Msg("provider listing failed")
				lastErr = err
			}
			continue
		}
		for _, r := range chainRecords {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			records = append(records, r)
		}
	}

	if len(records) == 0 && lastErr != nil {
		return nil, lastErr
	}
	s.listCache.Set(key, records, listTTL)
	return records, nil
}

// BuildTransaction shapes the unsigned call for a user intent. Never
// cached: amounts and allowances are request-specific.
func (s *Service) BuildTransaction(ctx context.Context, vault *types.VaultRecord, action types.Action, amount, userAddress string) (*types.CallDescriptor, error) {
	call, err := s.builder.Build(ctx, vault, action, amount, userAddress)

	variant := ""
	if vault != nil {
		variant = vault.Variant.String()
	}
	metrics.RecordTxBuild(action.String(), variant, err != nil)
	return call, err
}

// enrichYield derives APR/APY windows from the vault's period history.
// Enrichment is best effort: no history or a failing read leaves the
// record as the provider produced it.
func (s *Service) enrichYield(ctx context.Context, record types.VaultRecord) types.VaultRecord {
	summaries, err := s.history.PeriodSummaries(ctx, record.ChainID, record.ID)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("vault", record.ID).Msg("period history unavailable, serving un-enriched record")
		metrics.RecordYieldEnrichment(true)
		return record
	}
	if len(summaries) == 0 {
		metrics.RecordYieldEnrichment(false)
		return record
	}

	windows := yield.ComputeWindows(summaries)
	metadata := &types.YieldMetadata{
		APRNet: types.WindowSet{
			All:       windows.APRAll,
			ThirtyDay: windows.APR30D,
			SevenDay:  windows.APR7D,
		},
		APYNet: types.WindowSet{
			All:       windows.APYAll,
			ThirtyDay: windows.APY30D,
			SevenDay:  windows.APY7D,
		},
		RealizedAPY: windows.APYAll,
	}
	if age, ok := yield.VaultAge(summaries, s.now()); ok {
		metadata.VaultAgeDays = &age
	}

	record.Metadata = metadata
	metrics.RecordYieldEnrichment(false)
	return record
}

func vaultCacheKey(chainID uint64, address string) string {
	return fmt.Sprintf("vault:%d:%s", chainID, address)
}

func listCacheKey(chainID uint64) string {
	return fmt.Sprintf("vaults:%d", chainID)
}
