package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/vaultscope/vault-aggregator/internal/config"
	"github.com/vaultscope/vault-aggregator/internal/types"
)

const (
	vaultsEndpoint = "/v1/vaults"

	maxResponseBytes = 4 << 20 // 4 MB
)

type Client struct {
	httpClient *retryablehttp.Client
	cfg        *config.APIConfig
}

var _ ApiInterface = (*Client)(nil)

func NewClient(cfg *config.APIConfig) *Client {
	c := retryablehttp.NewClient()
	c.RetryMax = int(cfg.MaxRetryTimes)
	c.RetryWaitMin = cfg.RetryInterval
	c.RetryWaitMax = cfg.Timeout
	c.HTTPClient.Timeout = cfg.Timeout
	c.Logger = nil

	return &Client{
		httpClient: c,
		cfg:        cfg,
	}
}

// GetVault fetches one vault by address.
func (c *Client) GetVault(ctx context.Context, chainID uint64, address string) (*Vault, error) {
	path := fmt.Sprintf("%s/%d/%s", vaultsEndpoint, chainID, url.PathEscape(address))

	var vault Vault
	if err := c.getJSON(ctx, path, nil, &vault); err != nil {
		return nil, err
	}
	return &vault, nil
}

// ListVaults fetches every vault the API knows on one chain.
func (c *Client) ListVaults(ctx context.Context, chainID uint64) ([]Vault, error) {
	query := url.Values{"chainId": []string{strconv.FormatUint(chainID, 10)}}

	var resp vaultListResponse
	if err := c.getJSON(ctx, vaultsEndpoint, query, &resp); err != nil {
		return nil, err
	}
	return resp.Vaults, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.cfg.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.NewInvalidError("building request for %s: %v", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.NewUpstreamError(err, "vaults API request %s failed", path)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to close vaults API response body")
		}
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return types.NewNotFoundError("vaults API has no record at %s", path)
	case resp.StatusCode != http.StatusOK:
		return types.NewUpstreamError(nil, "vaults API returned status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return types.NewUpstreamError(err, "reading vaults API response for %s", path)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return types.NewUpstreamError(err, "decoding vaults API response for %s", path)
	}
	return nil
}
