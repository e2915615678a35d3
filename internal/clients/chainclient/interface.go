package chainclient

import (
	"context"
	"math/big"
)

type ChainInterface interface {
	TotalAssets(ctx context.Context, chainID uint64, vault string) (*big.Int, error)
	TotalSupply(ctx context.Context, chainID uint64, vault string) (*big.Int, error)
	Decimals(ctx context.Context, chainID uint64, token string) (uint8, error)
	Asset(ctx context.Context, chainID uint64, vault string) (string, error)
	Name(ctx context.Context, chainID uint64, vault string) (string, error)
	Symbol(ctx context.Context, chainID uint64, vault string) (string, error)
	Paused(ctx context.Context, chainID uint64, vault string) (bool, error)
	SupportsChain(chainID uint64) bool
}
