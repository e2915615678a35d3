// Package normalize converts the numeric representations the three
// upstreams use (fixed-point integers, floats, strings) into canonical
// decimal strings and base-unit integers.
package normalize

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/vaultscope/vault-aggregator/internal/types"
)

// Zero is the canonical decimal zero.
const Zero = "0"

// Canonical parses an arbitrary decimal string and returns its
// canonical form. Empty input is treated as zero.
func Canonical(s string) (string, error) {
	if s == "" {
		return Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", types.NewInvalidError("value %q is not a valid decimal", s)
	}
	return d.String(), nil
}

// FromFloat renders a float as a canonical decimal string. NaN and
// infinities collapse to zero rather than leaking to callers.
func FromFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero
	}
	return decimal.NewFromFloat(f).String()
}

// FromBaseUnits converts a raw fixed-point integer into a decimal
// string using the token's precision.
func FromBaseUnits(raw *big.Int, decimals uint8) string {
	if raw == nil {
		return Zero
	}
	return decimal.NewFromBigInt(raw, -int32(decimals)).String()
}

// ToBaseUnits converts a positive decimal amount string into base
// units at the given precision. Digits beyond the precision are
// truncated toward zero. Zero, negative and non-numeric amounts are
// rejected, as is an amount that truncates to zero base units.
func ToBaseUnits(amount string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, types.NewInvalidError("amount %q is not a valid decimal", amount)
	}
	if d.Sign() <= 0 {
		return nil, types.NewInvalidError("amount must be positive, got %q", amount)
	}
	units := d.Shift(int32(decimals)).Truncate(0)
	if units.Sign() <= 0 {
		return nil, types.NewInvalidError("amount %q is below one base unit at %d decimals", amount, decimals)
	}
	return units.BigInt(), nil
}

// ParseFloat parses a decimal string into a finite float64. Returns
// false for unparseable or non-finite input.
func ParseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
