// Package providers normalizes the three upstream clients into the
// canonical vault record shape. Each adapter owns the quirks of one
// source; everything downstream of this package speaks VaultRecord.
package providers

import (
	"context"

	"github.com/vaultscope/vault-aggregator/internal/types"
)

// Adapter is one provider's view of the vault universe.
type Adapter interface {
	// Provider identifies the data source this adapter fronts.
	Provider() types.Provider

	// Vault fetches one vault by canonical address. Returns a
	// NotFound error when the provider has no record for it.
	Vault(ctx context.Context, chainID uint64, address string) (*types.VaultRecord, error)

	// Vaults lists every vault the provider knows on one chain.
	// Providers that cannot enumerate return an Unsupported error.
	Vaults(ctx context.Context, chainID uint64) ([]types.VaultRecord, error)
}
