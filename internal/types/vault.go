package types

// Fees carries the vault fee schedule in basis points.
type Fees struct {
	MgmtBps uint32 `json:"mgmtBps"`
	PerfBps uint32 `json:"perfBps"`
}

// Underlying describes the asset a vault is denominated in.
type Underlying struct {
	Symbol   string `json:"symbol"`
	Address  string `json:"address"`
	Decimals uint8  `json:"decimals"`
}

// WindowSet holds one yield figure per measurement window, as decimal
// fractions (0.05 = 5%).
type WindowSet struct {
	All       float64 `json:"all"`
	ThirtyDay float64 `json:"30d"`
	SevenDay  float64 `json:"7d"`
}

// YieldMetadata carries yield windows derived from historical period
// summaries. Present only when the subgraph had usable history.
type YieldMetadata struct {
	APRNet       WindowSet `json:"aprNet"`
	APYNet       WindowSet `json:"apyNet"`
	VaultAgeDays *int      `json:"vaultAge,omitempty"`
	RealizedAPY  float64   `json:"realizedApy"`
}

// VaultRecord is the canonical vault view every provider adapter
// normalizes into. Records are constructed fresh per request, never
// mutated afterwards, and replaced wholesale on cache refresh.
type VaultRecord struct {
	// ID is the vault contract address, lowercase 0x form.
	ID      string `json:"id"`
	ChainID uint64 `json:"chainId"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	// TVLUSD and APYNet are canonical decimal strings; APYNet is a
	// fraction, not a percentage.
	TVLUSD     string            `json:"tvlUsd"`
	APYNet     string            `json:"apyNet"`
	Fees       Fees              `json:"fees"`
	Underlying Underlying        `json:"underlying"`
	Status     VaultStatus       `json:"status"`
	Provider   Provider          `json:"provider"`
	Variant    RedemptionVariant `json:"variant"`
	Metadata   *YieldMetadata    `json:"metadata,omitempty"`
}

// CallDescriptor is an unsigned contract call for an external signer.
type CallDescriptor struct {
	To    string `json:"to"`
	Data  string `json:"data"`
	Value string `json:"value"`
}
