package txbuilder

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"github.com/vaultscope/vault-aggregator/internal/clients/chainclient"
	"github.com/vaultscope/vault-aggregator/internal/normalize"
	"github.com/vaultscope/vault-aggregator/internal/types"
)

// vaultWriteABI covers the calls the builder can shape: the atomic
// ERC-4626 entry points, their ERC-7540 request counterparts, and the
// ERC-20 allowance grant.
const vaultWriteABI = `[
  {"type": "function", "name": "deposit", "stateMutability": "nonpayable", "inputs": [{"name": "assets", "type": "uint256"}, {"name": "receiver", "type": "address"}], "outputs": [{"name": "", "type": "uint256"}]},
  {"type": "function", "name": "redeem", "stateMutability": "nonpayable", "inputs": [{"name": "shares", "type": "uint256"}, {"name": "receiver", "type": "address"}, {"name": "owner", "type": "address"}], "outputs": [{"name": "", "type": "uint256"}]},
  {"type": "function", "name": "requestDeposit", "stateMutability": "nonpayable", "inputs": [{"name": "assets", "type": "uint256"}, {"name": "receiver", "type": "address"}, {"name": "owner", "type": "address"}], "outputs": [{"name": "", "type": "uint256"}]},
  {"type": "function", "name": "requestRedeem", "stateMutability": "nonpayable", "inputs": [{"name": "shares", "type": "uint256"}, {"name": "receiver", "type": "address"}, {"name": "owner", "type": "address"}], "outputs": [{"name": "", "type": "uint256"}]},
  {"type": "function", "name": "approve", "stateMutability": "nonpayable", "inputs": [{"name": "spender", "type": "address"}, {"name": "amount", "type": "uint256"}], "outputs": [{"name": "", "type": "bool"}]}
]`

var writeABI = mustParseABI(vaultWriteABI)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

// Builder produces unsigned call descriptors for vault interactions.
// It is stateless apart from the chain client it reads token decimals
// through.
type Builder struct {
	chain chainclient.ChainInterface
}

func New(chain chainclient.ChainInterface) *Builder {
	return &Builder{chain: chain}
}

// Build shapes the call for the given user intent against a resolved
// vault. The amount is a human decimal string; it is scaled by the
// relevant token's decimals, which are always read fresh from the
// contract. A decimals read failure aborts the build: a call with
// guessed precision is worse than no call.
func (b *Builder) Build(ctx context.Context, vault *types.VaultRecord, action types.Action, amount, userAddress string) (*types.CallDescriptor, error) {
	if vault == nil {
		return nil, types.NewInvalidError("vault record is required")
	}
	if !action.Valid() {
		return nil, types.NewInvalidError("unknown action %q", action)
	}
	if !vault.Variant.Valid() {
		return nil, types.NewInvalidError("vault %s has unknown redemption variant %q", vault.ID, vault.Variant)
	}
	if !common.IsHexAddress(userAddress) {
		return nil, types.NewInvalidError("user address %q is not a valid address", userAddress)
	}
	if !common.IsHexAddress(vault.ID) {
		return nil, types.NewInvalidError("vault address %q is not a valid address", vault.ID)
	}
	if action != types.ActionWithdraw && !common.IsHexAddress(vault.Underlying.Address) {
		return nil, types.NewInvalidError("vault %s has no underlying token address", vault.ID)
	}

	user := common.HexToAddress(userAddress)
	vaultAddr := common.HexToAddress(vault.ID)

	switch action {
	case types.ActionApprove:
		return b.buildApprove(ctx, vault, vaultAddr, amount)
	case types.ActionDeposit:
		return b.buildDeposit(ctx, vault, vaultAddr, user, amount)
	case types.ActionWithdraw:
		return b.buildWithdraw(ctx, vault, vaultAddr, user, amount)
	default:
		return nil, types.NewInvalidError("unknown action %q", action)
	}
}

// buildApprove grants the vault an allowance on the underlying token.
// The call shape is the same for both redemption variants.
func (b *Builder) buildApprove(ctx context.Context, vault *types.VaultRecord, vaultAddr common.Address, amount string) (*types.CallDescriptor, error) {
	assets, err := b.scaledAmount(ctx, vault.ChainID, vault.Underlying.Address, amount)
	if err != nil {
		return nil, err
	}
	data, err := writeABI.Pack("approve", vaultAddr, assets)
	if err != nil {
		return nil, types.NewInvalidError("packing approve call: %v", err)
	}
	return descriptor(common.HexToAddress(vault.Underlying.Address), data), nil
}

func (b *Builder) buildDeposit(ctx context.Context, vault *types.VaultRecord, vaultAddr, user common.Address, amount string) (*types.CallDescriptor, error) {
	assets, err := b.scaledAmount(ctx, vault.ChainID, vault.Underlying.Address, amount)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch vault.Variant {
	case types.VariantSync:
		data, err = writeABI.Pack("deposit", assets, user)
	case types.VariantAsync:
		data, err = writeABI.Pack("requestDeposit", assets, user, user)
	}
	if err != nil {
		return nil, types.NewInvalidError("packing deposit call: %v", err)
	}
	return descriptor(vaultAddr, data), nil
}

// buildWithdraw redeems shares, so the amount is scaled by the vault's
// own share decimals rather than the underlying's.
func (b *Builder) buildWithdraw(ctx context.Context, vault *types.VaultRecord, vaultAddr, user common.Address, amount string) (*types.CallDescriptor, error) {
	shares, err := b.scaledAmount(ctx, vault.ChainID, vault.ID, amount)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch vault.Variant {
	case types.VariantSync:
		data, err = writeABI.Pack("redeem", shares, user, user)
	case types.VariantAsync:
		data, err = writeABI.Pack("requestRedeem", shares, user, user)
	}
	if err != nil {
		return nil, types.NewInvalidError("packing redeem call: %v", err)
	}
	return descriptor(vaultAddr, data), nil
}

// scaledAmount converts a human decimal amount into base units of the
// given token. Amount validation happens before the decimals read so
// malformed input never costs a network round trip.
func (b *Builder) scaledAmount(ctx context.Context, chainID uint64, token, amount string) (*big.Int, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	decimals, err := b.chain.Decimals(ctx, chainID, token)
	if err != nil {
		return nil, types.NewUpstreamError(err, "reading decimals of %s on chain %d", token, chainID)
	}
	raw, err := normalize.ToBaseUnits(amount, decimals)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func validateAmount(amount string) error {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return types.NewInvalidError("amount %q is not a number", amount)
	}
	if !d.IsPositive() {
		return types.NewInvalidError("amount must be positive, got %q", amount)
	}
	return nil
}

func descriptor(to common.Address, data []byte) *types.CallDescriptor {
	return &types.CallDescriptor{
		To:    strings.ToLower(to.Hex()),
		Data:  hexutil.Encode(data),
		Value: "0",
	}
}
