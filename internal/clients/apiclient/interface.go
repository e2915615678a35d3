package apiclient

import (
	"context"
)

type ApiInterface interface {
	GetVault(ctx context.Context, chainID uint64, address string) (*Vault, error)
	ListVaults(ctx context.Context, chainID uint64) ([]Vault, error)
}
