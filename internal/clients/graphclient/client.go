package graphclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"

	"github.com/vaultscope/vault-aggregator/internal/config"
	"github.com/vaultscope/vault-aggregator/internal/types"
)

const (
	vaultQuery = `query ($id: ID!) {
  vault(id: $id) {
    id
    name
    symbol
    asset
    assetSymbol
    assetDecimals
    totalAssets
    totalAssetsUsd
    netApy
    managementFeeBps
    performanceFeeBps
    paused
  }
}`

	periodSummariesQuery = `query ($vault: String!) {
  periodSummaries(
    where: { vault: $vault }
    orderBy: startTimestamp
    orderDirection: desc
    first: 1000
  ) {
    totalAssetsAtStart
    totalSupplyAtStart
    totalAssetsAtEnd
    totalSupplyAtEnd
    netTotalSupplyAtEnd
    startTimestamp
    duration
  }
}`

	maxResponseBytes = 8 << 20 // 8 MB
)

type Client struct {
	httpClient *http.Client
	cfg        *config.GraphConfig
}

var _ GraphInterface = (*Client)(nil)

func NewClient(cfg *config.GraphConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

// GetVault fetches the subgraph's vault entity by address.
func (c *Client) GetVault(ctx context.Context, chainID uint64, address string) (*Vault, error) {
	address = strings.ToLower(address)

	callForVault := func() (*Vault, error) {
		var data vaultData
		if err := c.query(ctx, chainID, vaultQuery, map[string]any{"id": address}, &data); err != nil {
			return nil, err
		}
		if data.Vault == nil {
			return nil, types.NewNotFoundError("subgraph has no vault %s on chain %d", address, chainID)
		}
		return data.Vault, nil
	}

	vault, err := clientCallWithRetry(ctx, callForVault, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get vault %s from subgraph: %w", address, err)
	}
	return vault, nil
}

// GetPeriodSummaries fetches the vault's settlement-period history,
// newest first as the subgraph returns it. Callers must not rely on
// the ordering.
func (c *Client) GetPeriodSummaries(ctx context.Context, chainID uint64, address string) ([]PeriodSummary, error) {
	address = strings.ToLower(address)

	callForSummaries := func() ([]PeriodSummary, error) {
		var data periodSummariesData
		if err := c.query(ctx, chainID, periodSummariesQuery, map[string]any{"vault": address}, &data); err != nil {
			return nil, err
		}
		return data.PeriodSummaries, nil
	}

	summaries, err := clientCallWithRetry(ctx, callForSummaries, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get period summaries for %s from subgraph: %w", address, err)
	}
	return summaries, nil
}

func (c *Client) query(ctx context.Context, chainID uint64, query string, variables map[string]any, out any) error {
	endpoint, ok := c.cfg.EndpointFor(chainID)
	if !ok {
		return types.NewUnsupportedError("no subgraph endpoint configured for chain %d", chainID)
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return types.NewInvalidError("encoding subgraph query: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return types.NewInvalidError("building subgraph request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.NewUpstreamError(err, "subgraph request to chain %d failed", chainID)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.NewUpstreamError(nil, "subgraph for chain %d returned status %d", chainID, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return types.NewUpstreamError(err, "reading subgraph response for chain %d", chainID)
	}

	var envelope graphQLResponse[json.RawMessage]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return types.NewUpstreamError(err, "decoding subgraph response for chain %d", chainID)
	}
	if len(envelope.Errors) > 0 {
		return types.NewUpstreamError(nil, "subgraph for chain %d returned error: %s", chainID, envelope.Errors[0].Message)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return types.NewUpstreamError(err, "decoding subgraph data for chain %d", chainID)
	}
	return nil
}

func clientCallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[T],
	cfg *config.GraphConfig,
) (T, error) {
	return retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(types.IsRetriable),
	)
}
