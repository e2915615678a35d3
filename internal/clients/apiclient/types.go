package apiclient

import "encoding/json"

// Vault is the wire shape of a vault as the hosted REST API reports
// it. Numeric fields arrive in whatever representation the API felt
// like (string, float, integer), so they are kept raw here and
// normalized by the adapter layer.
type Vault struct {
	Address string `json:"address"`
	ChainID uint64 `json:"chainId"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`

	TVLUSD json.Number `json:"tvlUsd"`
	APYNet json.Number `json:"apyNet"`

	Fees struct {
		ManagementFeeBps  uint32 `json:"managementFeeBps"`
		PerformanceFeeBps uint32 `json:"performanceFeeBps"`
	} `json:"fees"`

	Underlying struct {
		Symbol   string `json:"symbol"`
		Address  string `json:"address"`
		Decimals uint8  `json:"decimals"`
	} `json:"underlying"`

	Status string `json:"status"`
	// Async marks request/claim redemption vaults.
	Async bool `json:"async"`
}

type vaultListResponse struct {
	Vaults []Vault `json:"vaults"`
}
