package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	"github.com/vaultscope/vault-aggregator/internal/types"
)

// RandomAddress returns a random lowercase 0x address.
func RandomAddress(t *testing.T) string {
	t.Helper()
	return "0x" + strings.ToLower(gofakeit.HexUint(160)[2:])
}

// RandomVaultRecord returns a structurally valid vault record with
// randomized economics.
func RandomVaultRecord(t *testing.T, chainID uint64) types.VaultRecord {
	t.Helper()
	var record types.VaultRecord
	err := gofakeit.Struct(&record)
	require.NoError(t, err)

	record.ID = RandomAddress(t)
	record.ChainID = chainID
	record.TVLUSD = fmt.Sprintf("%.2f", gofakeit.Float64Range(0, 1e9))
	record.APYNet = fmt.Sprintf("%.4f", gofakeit.Float64Range(0, 0.5))
	record.Underlying.Address = RandomAddress(t)
	record.Status = types.VaultStatusActive
	record.Provider = types.ProviderAPI
	record.Variant = types.VariantSync
	record.Metadata = nil
	return record
}

// RandomPeriodSummaries returns n contiguous completed periods with
// randomized durations and drifting economics, oldest first.
func RandomPeriodSummaries(t *testing.T, n int) []types.PeriodSummary {
	t.Helper()

	summaries := make([]types.PeriodSummary, 0, n)
	start := int64(gofakeit.Number(1_600_000_000, 1_700_000_000))
	assets := gofakeit.Float64Range(1e3, 1e6)
	supply := assets

	for i := 0; i < n; i++ {
		duration := int64(gofakeit.Number(86400, 40*86400))
		endAssets := assets * gofakeit.Float64Range(0.95, 1.1)
		endSupply := supply * gofakeit.Float64Range(0.98, 1.02)
		summaries = append(summaries, types.PeriodSummary{
			TotalAssetsAtStart:  assets,
			TotalSupplyAtStart:  supply,
			TotalAssetsAtEnd:    endAssets,
			TotalSupplyAtEnd:    endSupply,
			NetTotalSupplyAtEnd: endSupply * gofakeit.Float64Range(0.99, 1.0),
			StartTimestamp:      start,
			DurationSeconds:     duration,
		})
		start += duration
		assets = endAssets
		supply = endSupply
	}
	return summaries
}
