package graphclient

import (
	"context"
)

type GraphInterface interface {
	GetVault(ctx context.Context, chainID uint64, address string) (*Vault, error)
	GetPeriodSummaries(ctx context.Context, chainID uint64, address string) ([]PeriodSummary, error)
}
