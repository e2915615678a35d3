package graphclient

// graphQLRequest is the POST body every subgraph query is wrapped in.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors,omitempty"`
}

// Vault is the subgraph's view of a vault entity. Numeric fields are
// decimal strings, the subgraph's only numeric representation.
type Vault struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Symbol            string `json:"symbol"`
	Asset             string `json:"asset"`
	AssetSymbol       string `json:"assetSymbol"`
	AssetDecimals     uint8  `json:"assetDecimals,string"`
	TotalAssets       string `json:"totalAssets"`
	TotalAssetsUSD    string `json:"totalAssetsUsd"`
	NetAPY            string `json:"netApy"`
	ManagementFeeBps  uint32 `json:"managementFeeBps,string"`
	PerformanceFeeBps uint32 `json:"performanceFeeBps,string"`
	Paused            bool   `json:"paused"`
}

// PeriodSummary is one settlement-period snapshot as stored by the
// subgraph, all economics as decimal strings.
type PeriodSummary struct {
	TotalAssetsAtStart  string `json:"totalAssetsAtStart"`
	TotalSupplyAtStart  string `json:"totalSupplyAtStart"`
	TotalAssetsAtEnd    string `json:"totalAssetsAtEnd"`
	TotalSupplyAtEnd    string `json:"totalSupplyAtEnd"`
	NetTotalSupplyAtEnd string `json:"netTotalSupplyAtEnd"`
	StartTimestamp      int64  `json:"startTimestamp,string"`
	Duration            int64  `json:"duration,string"`
}

type vaultData struct {
	Vault *Vault `json:"vault"`
}

type periodSummariesData struct {
	PeriodSummaries []PeriodSummary `json:"periodSummaries"`
}
