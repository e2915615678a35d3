package types

// Provider identifies the data source a vault record was built from.
type Provider string

const (
	// ProviderAPI is backed by the hosted vaults REST API.
	ProviderAPI Provider = "api"
	// ProviderGraph is backed by the subgraph indexer.
	ProviderGraph Provider = "graph"
	// ProviderChain is backed by direct contract reads.
	ProviderChain Provider = "chain"
)

func (p Provider) String() string {
	return string(p)
}

func (p Provider) Valid() bool {
	switch p {
	case ProviderAPI, ProviderGraph, ProviderChain:
		return true
	}
	return false
}

// VaultStatus is the lifecycle state reported for a vault.
type VaultStatus string

const (
	VaultStatusActive     VaultStatus = "active"
	VaultStatusPaused     VaultStatus = "paused"
	VaultStatusDeprecated VaultStatus = "deprecated"
)

func (s VaultStatus) String() string {
	return string(s)
}

// Action is a user intent the transaction builder can express.
type Action string

const (
	ActionDeposit  Action = "deposit"
	ActionWithdraw Action = "withdraw"
	ActionApprove  Action = "approve"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) Valid() bool {
	switch a {
	case ActionDeposit, ActionWithdraw, ActionApprove:
		return true
	}
	return false
}

// RedemptionVariant selects the on-chain call shape of a vault.
//
// Synchronous vaults settle deposit/redeem atomically in one call.
// Asynchronous vaults only accept request calls; settlement and
// claiming happen later, off this code path.
type RedemptionVariant string

const (
	VariantSync  RedemptionVariant = "sync"
	VariantAsync RedemptionVariant = "async"
)

func (v RedemptionVariant) String() string {
	return string(v)
}

func (v RedemptionVariant) Valid() bool {
	switch v {
	case VariantSync, VariantAsync:
		return true
	}
	return false
}
