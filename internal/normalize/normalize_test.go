package normalize

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultscope/vault-aggregator/internal/types"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
		wantErr  bool
	}{
		{name: "plain integer", in: "1000", expected: "1000"},
		{name: "trailing zeros trimmed", in: "1.5000", expected: "1.5"},
		{name: "scientific notation", in: "1.2e6", expected: "1200000"},
		{name: "negative", in: "-0.25", expected: "-0.25"},
		{name: "empty is zero", in: "", expected: "0"},
		{name: "garbage", in: "12abc", wantErr: true},
		{name: "lone dot", in: ".", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonical(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, types.IsInvalidError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, "0.365", FromFloat(0.365))
	assert.Equal(t, "0", FromFloat(math.NaN()))
	assert.Equal(t, "0", FromFloat(math.Inf(1)))
	assert.Equal(t, "0", FromFloat(math.Inf(-1)))
}

func TestFromBaseUnits(t *testing.T) {
	raw, ok := new(big.Int).SetString("1234567890", 10)
	require.True(t, ok)
	assert.Equal(t, "1234.56789", FromBaseUnits(raw, 6))
	assert.Equal(t, "0", FromBaseUnits(nil, 18))
}

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals uint8
		expected string
		wantErr  bool
	}{
		{name: "usdc whole units", amount: "100", decimals: 6, expected: "100000000"},
		{name: "fractional", amount: "0.5", decimals: 18, expected: "500000000000000000"},
		{name: "excess precision truncates", amount: "1.0000019", decimals: 6, expected: "1000001"},
		{name: "zero rejected", amount: "0", wantErr: true},
		{name: "negative rejected", amount: "-3", decimals: 6, wantErr: true},
		{name: "non-numeric rejected", amount: "ten", decimals: 6, wantErr: true},
		{name: "below one base unit rejected", amount: "0.0000001", decimals: 6, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBaseUnits(tt.amount, tt.decimals)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, types.IsInvalidError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestParseFloat(t *testing.T) {
	f, ok := ParseFloat("12.25")
	require.True(t, ok)
	assert.InDelta(t, 12.25, f, 1e-12)

	_, ok = ParseFloat("")
	assert.False(t, ok)
	_, ok = ParseFloat("nope")
	assert.False(t, ok)
}
