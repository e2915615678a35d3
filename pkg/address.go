package pkg

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsVaultAddress reports whether s looks like a 0x-prefixed EVM
// address. Identifiers failing this check are treated as slugs.
func IsVaultAddress(s string) bool {
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

// NormalizeAddress returns the canonical lowercase 0x form of an
// address. Cache keys and record ids are always in this form.
func NormalizeAddress(s string) string {
	return strings.ToLower(common.HexToAddress(s).Hex())
}
