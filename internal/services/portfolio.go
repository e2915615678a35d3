package services

import (
	"github.com/shopspring/decimal"

	"github.com/vaultscope/vault-aggregator/internal/types"
)

// TotalTVL sums the TVL of the given records into one canonical
// decimal string. Records with malformed TVL contribute zero.
func TotalTVL(records []types.VaultRecord) string {
	total := decimal.Zero
	for _, r := range records {
		d, err := decimal.NewFromString(r.TVLUSD)
		if err != nil {
			continue
		}
		total = total.Add(d)
	}
	return total.String()
}
