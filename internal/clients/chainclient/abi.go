package chainclient

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// vaultReadABI covers the read surface the engine needs from a vault
// or token contract: the ERC-4626/ERC-20 metadata views plus the
// optional pause flag.
const vaultReadABI = `[
  {"type": "function", "name": "totalAssets", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "uint256"}]},
  {"type": "function", "name": "totalSupply", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "uint256"}]},
  {"type": "function", "name": "decimals", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "uint8"}]},
  {"type": "function", "name": "asset", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "address"}]},
  {"type": "function", "name": "name", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "string"}]},
  {"type": "function", "name": "symbol", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "string"}]},
  {"type": "function", "name": "paused", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "bool"}]}
]`

var readABI = mustParseABI(vaultReadABI)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
