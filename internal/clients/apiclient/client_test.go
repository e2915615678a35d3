package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultscope/vault-aggregator/internal/config"
	"github.com/vaultscope/vault-aggregator/internal/types"
)

func testConfig(baseURL string) *config.APIConfig {
	return &config.APIConfig{
		BaseURL:       baseURL,
		Timeout:       2 * time.Second,
		MaxRetryTimes: 2,
		RetryInterval: 10 * time.Millisecond,
	}
}

func TestGetVault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/vaults/1/0xabc0000000000000000000000000000000000001", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"address": "0xabc0000000000000000000000000000000000001",
			"chainId": 1,
			"slug": "prime-usdc",
			"name": "Prime USDC",
			"symbol": "pUSDC",
			"tvlUsd": "12500000.50",
			"apyNet": 0.0425,
			"fees": {"managementFeeBps": 100, "performanceFeeBps": 1000},
			"underlying": {"symbol": "USDC", "address": "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", "decimals": 6},
			"status": "active",
			"async": true
		}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	vault, err := client.GetVault(context.Background(), 1, "0xabc0000000000000000000000000000000000001")
	require.NoError(t, err)

	assert.Equal(t, "prime-usdc", vault.Slug)
	assert.Equal(t, "12500000.50", vault.TVLUSD.String())
	assert.Equal(t, "0.0425", vault.APYNet.String())
	assert.Equal(t, uint32(100), vault.Fees.ManagementFeeBps)
	assert.Equal(t, uint8(6), vault.Underlying.Decimals)
	assert.True(t, vault.Async)
}

func TestGetVault_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.GetVault(context.Background(), 1, "0xdead000000000000000000000000000000000001")
	require.Error(t, err)
	assert.True(t, types.IsNotFoundError(err))
}

func TestListVaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "8453", r.URL.Query().Get("chainId"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"vaults": [
			{"address": "0x01", "chainId": 8453, "tvlUsd": 100},
			{"address": "0x02", "chainId": 8453, "tvlUsd": "200"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	vaults, err := client.ListVaults(context.Background(), 8453)
	require.NoError(t, err)
	require.Len(t, vaults, 2)
	assert.Equal(t, "100", vaults[0].TVLUSD.String())
	assert.Equal(t, "200", vaults[1].TVLUSD.String())
}

func TestListVaults_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"vaults": []}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	vaults, err := client.ListVaults(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, vaults)
	assert.Equal(t, int32(2), calls.Load())
}

func TestListVaults_UpstreamAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.ListVaults(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, types.IsUpstreamError(err))
}
