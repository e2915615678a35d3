package chainclient

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog/log"

	"github.com/vaultscope/vault-aggregator/internal/config"
	"github.com/vaultscope/vault-aggregator/internal/types"
)

type Client struct {
	clients map[uint64]*ethclient.Client
	cfg     *config.ChainConfig
}

var _ ChainInterface = (*Client)(nil)

// NewClient dials one RPC connection per configured chain.
func NewClient(cfg *config.ChainConfig) (*Client, error) {
	clients := make(map[uint64]*ethclient.Client)
	for _, chainID := range cfg.ChainIDs() {
		rpcURL, _ := cfg.RPCURLFor(chainID)
		eth, err := ethclient.Dial(rpcURL)
		if err != nil {
			return nil, fmt.Errorf("failed to dial rpc for chain %d: %w", chainID, err)
		}
		clients[chainID] = eth
		log.Debug().Uint64("chainId", chainID).Msg("dialed chain rpc")
	}
	return &Client{clients: clients, cfg: cfg}, nil
}

func (c *Client) SupportsChain(chainID uint64) bool {
	_, ok := c.clients[chainID]
	return ok
}

func (c *Client) TotalAssets(ctx context.Context, chainID uint64, vault string) (*big.Int, error) {
	return readBigInt(ctx, c, chainID, vault, "totalAssets")
}

func (c *Client) TotalSupply(ctx context.Context, chainID uint64, vault string) (*big.Int, error) {
	return readBigInt(ctx, c, chainID, vault, "totalSupply")
}

// Decimals reads a token's precision from the contract. The value is
// never assumed: a hardcoded default here is how 100x amount bugs are
// made.
func (c *Client) Decimals(ctx context.Context, chainID uint64, token string) (uint8, error) {
	out, err := c.read(ctx, chainID, token, "decimals")
	if err != nil {
		return 0, err
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, types.NewUpstreamError(nil, "decimals() of %s returned unexpected type", token)
	}
	return decimals, nil
}

func (c *Client) Asset(ctx context.Context, chainID uint64, vault string) (string, error) {
	out, err := c.read(ctx, chainID, vault, "asset")
	if err != nil {
		return "", err
	}
	addr, ok := out[0].(common.Address)
	if !ok {
		return "", types.NewUpstreamError(nil, "asset() of %s returned unexpected type", vault)
	}
	return addr.Hex(), nil
}

func (c *Client) Name(ctx context.Context, chainID uint64, vault string) (string, error) {
	return readString(ctx, c, chainID, vault, "name")
}

func (c *Client) Symbol(ctx context.Context, chainID uint64, vault string) (string, error) {
	return readString(ctx, c, chainID, vault, "symbol")
}

// Paused reads the pause flag. Contracts without a paused() view
// revert, which callers treat as "not paused".
func (c *Client) Paused(ctx context.Context, chainID uint64, vault string) (bool, error) {
	out, err := c.read(ctx, chainID, vault, "paused")
	if err != nil {
		return false, err
	}
	paused, ok := out[0].(bool)
	if !ok {
		return false, types.NewUpstreamError(nil, "paused() of %s returned unexpected type", vault)
	}
	return paused, nil
}

func readBigInt(ctx context.Context, c *Client, chainID uint64, contract, method string) (*big.Int, error) {
	out, err := c.read(ctx, chainID, contract, method)
	if err != nil {
		return nil, err
	}
	value, ok := out[0].(*big.Int)
	if !ok {
		return nil, types.NewUpstreamError(nil, "%s() of %s returned unexpected type", method, contract)
	}
	return value, nil
}

func readString(ctx context.Context, c *Client, chainID uint64, contract, method string) (string, error) {
	out, err := c.read(ctx, chainID, contract, method)
	if err != nil {
		return "", err
	}
	value, ok := out[0].(string)
	if !ok {
		return "", types.NewUpstreamError(nil, "%s() of %s returned unexpected type", method, contract)
	}
	return value, nil
}

func (c *Client) read(ctx context.Context, chainID uint64, contract, method string) ([]any, error) {
	eth, ok := c.clients[chainID]
	if !ok {
		return nil, types.NewUnsupportedError("no rpc configured for chain %d", chainID)
	}
	if !common.IsHexAddress(contract) {
		return nil, types.NewInvalidError("contract %q is not a valid address", contract)
	}

	data, err := readABI.Pack(method)
	if err != nil {
		return nil, types.NewInvalidError("packing %s() call: %v", method, err)
	}
	to := common.HexToAddress(contract)
	msg := ethereum.CallMsg{To: &to, Data: data}

	callContract := func() ([]byte, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		raw, err := eth.CallContract(callCtx, msg, nil)
		if err != nil {
			return nil, types.NewUpstreamError(err, "%s() call to %s on chain %d failed", method, contract, chainID)
		}
		return raw, nil
	}

	raw, err := clientCallWithRetry(ctx, callContract, c.cfg)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		// An empty return usually means the method does not exist on
		// this contract.
		return nil, types.NewNotFoundError("%s() is not implemented by %s on chain %d", method, contract, chainID)
	}

	out, err := readABI.Unpack(method, raw)
	if err != nil {
		return nil, types.NewUpstreamError(err, "unpacking %s() result from %s", method, contract)
	}
	if len(out) == 0 {
		return nil, types.NewUpstreamError(nil, "%s() of %s returned no values", method, contract)
	}
	return out, nil
}

func clientCallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[T],
	cfg *config.ChainConfig,
) (T, error) {
	return retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransientChainError),
	)
}

// isTransientChainError keeps retries to transport-level failures.
// Contract reverts are definitive and retrying them only burns the
// caller's deadline.
func isTransientChainError(err error) bool {
	if !types.IsRetriable(err) {
		return false
	}
	return !isRevertError(err)
}

func isRevertError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "execution reverted")
}
