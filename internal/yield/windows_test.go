package yield

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultscope/vault-aggregator/internal/types"
)

const day = int64(86400)

// thirtyDayPeriod is the worked example: one completed 30-day period
// with 3% growth and no pending redemptions.
func thirtyDayPeriod() types.PeriodSummary {
	return types.PeriodSummary{
		TotalAssetsAtStart:  1000,
		TotalSupplyAtStart:  1000,
		TotalAssetsAtEnd:    1030,
		TotalSupplyAtEnd:    1000,
		NetTotalSupplyAtEnd: 1000,
		StartTimestamp:      0,
		DurationSeconds:     30 * day,
	}
}

func TestComputeWindows_Empty(t *testing.T) {
	assert.Equal(t, Windows{}, ComputeWindows(nil))
	assert.Equal(t, Windows{}, ComputeWindows([]types.PeriodSummary{}))
}

func TestComputeWindows_OnlyOpenPeriod(t *testing.T) {
	open := thirtyDayPeriod()
	open.DurationSeconds = 0
	assert.Equal(t, Windows{}, ComputeWindows([]types.PeriodSummary{open}))
}

func TestComputeWindows_SingleThirtyDayPeriod(t *testing.T) {
	w := ComputeWindows([]types.PeriodSummary{thirtyDayPeriod()})

	// 3% over 30 days annualizes linearly to 36.5%.
	assert.InDelta(t, 0.365, w.APR30D, 1e-9)
	assert.InDelta(t, 0.4328, w.APY30D, 1e-3)

	// The full history is that same 30-day span.
	assert.InDelta(t, 0.365, w.APRAll, 1e-9)
	assert.InDelta(t, w.APY30D, w.APYAll, 1e-12)

	// The 7-day mark falls inside the single period, so the start
	// price is interpolated: p(23d) = 1 + 23/30*0.03 = 1.023.
	assert.InDelta(t, (1.03-1.023)/1.023*(365.0/7.0), w.APR7D, 1e-9)
	assert.InDelta(t, 0.4270, w.APY7D, 1e-3)
}

func TestComputeWindows_WindowExceedsHistory(t *testing.T) {
	short := thirtyDayPeriod()
	short.DurationSeconds = 5 * day
	short.TotalAssetsAtEnd = 1005

	w := ComputeWindows([]types.PeriodSummary{short})

	// Both fixed windows reach before the epoch of recorded history.
	assert.Zero(t, w.APR30D)
	assert.Zero(t, w.APY30D)
	assert.Zero(t, w.APR7D)
	assert.Zero(t, w.APY7D)
	// The ALL window still works over the 5 recorded days.
	assert.InDelta(t, 0.005*365.0/5.0, w.APRAll, 1e-9)
}

func TestComputeWindows_GapYieldsZeroNotGuess(t *testing.T) {
	old := types.PeriodSummary{
		TotalAssetsAtStart:  1000,
		TotalSupplyAtStart:  1000,
		TotalAssetsAtEnd:    1010,
		TotalSupplyAtEnd:    1000,
		NetTotalSupplyAtEnd: 1000,
		StartTimestamp:      0,
		DurationSeconds:     10 * day,
	}
	old.DurationSeconds = 8 * day
	old.TotalAssetsAtEnd = 1008
	// 22 days of missing history, then a recent 10-day period: the
	// 7d-back target lands inside it, the 30d-back target in the gap.
	recent := types.PeriodSummary{
		TotalAssetsAtStart:  1010,
		TotalSupplyAtStart:  1000,
		TotalAssetsAtEnd:    1020,
		TotalSupplyAtEnd:    1000,
		NetTotalSupplyAtEnd: 1000,
		StartTimestamp:      30 * day,
		DurationSeconds:     10 * day,
	}

	w := ComputeWindows([]types.PeriodSummary{recent, old})

	assert.Zero(t, w.APR30D)
	assert.Zero(t, w.APY30D)
	assert.NotZero(t, w.APR7D)
	assert.NotZero(t, w.APRAll)
}

func TestComputeWindows_OrderIndependent(t *testing.T) {
	a := thirtyDayPeriod()
	b := types.PeriodSummary{
		TotalAssetsAtStart:  1030,
		TotalSupplyAtStart:  1000,
		TotalAssetsAtEnd:    1045,
		TotalSupplyAtEnd:    1000,
		NetTotalSupplyAtEnd: 1000,
		StartTimestamp:      30 * day,
		DurationSeconds:     30 * day,
	}

	ascending := ComputeWindows([]types.PeriodSummary{a, b})
	descending := ComputeWindows([]types.PeriodSummary{b, a})
	assert.Equal(t, ascending, descending)

	// The ALL window spans both periods regardless of input order.
	assert.InDelta(t, 0.045*365.0/60.0, ascending.APRAll, 1e-9)
}

func TestComputeWindows_NetSupplyCorrectsForPendingRedemptions(t *testing.T) {
	p := thirtyDayPeriod()
	// 100 shares queued for redemption: the end price is measured
	// against 900 shares, not 1000.
	p.TotalSupplyAtEnd = 1000
	p.NetTotalSupplyAtEnd = 900
	p.TotalAssetsAtEnd = 927 // 927/900 = 1.03 per share

	w := ComputeWindows([]types.PeriodSummary{p})
	assert.InDelta(t, 0.365, w.APR30D, 1e-9)
}

func TestComputeWindows_FallbackToGrossSupply(t *testing.T) {
	p := thirtyDayPeriod()
	p.NetTotalSupplyAtEnd = 0

	w := ComputeWindows([]types.PeriodSummary{p})
	assert.InDelta(t, 0.365, w.APR30D, 1e-9)
}

func TestComputeWindows_InvalidStartPriceSkipped(t *testing.T) {
	broken := thirtyDayPeriod()
	broken.TotalSupplyAtStart = 0
	broken.StartTimestamp = -100 * day

	w := ComputeWindows([]types.PeriodSummary{broken, thirtyDayPeriod()})
	// The zero-supply summary cannot anchor the ALL window.
	assert.InDelta(t, 0.365, w.APRAll, 1e-9)
}

func TestComputeWindows_APYNeverBelowMinusOneAndFinite(t *testing.T) {
	crash := thirtyDayPeriod()
	crash.TotalAssetsAtEnd = 0.0001 // near-total loss

	w := ComputeWindows([]types.PeriodSummary{crash})
	for _, v := range []float64{w.APYAll, w.APY30D, w.APY7D, w.APRAll, w.APR30D, w.APR7D} {
		assert.False(t, v != v, "NaN leaked")
	}
	for _, apy := range []float64{w.APYAll, w.APY30D, w.APY7D} {
		assert.GreaterOrEqual(t, apy, -1.0)
	}
	assert.Less(t, w.APYAll, 0.0)
}

func TestComputeWindows_SmallWindowAPRConvergesToAPY(t *testing.T) {
	tiny := types.PeriodSummary{
		TotalAssetsAtStart:  1_000_000,
		TotalSupplyAtStart:  1_000_000,
		TotalAssetsAtEnd:    1_000_001, // one part per million over a day
		TotalSupplyAtEnd:    1_000_000,
		NetTotalSupplyAtEnd: 1_000_000,
		StartTimestamp:      0,
		DurationSeconds:     day,
	}

	w := ComputeWindows([]types.PeriodSummary{tiny})
	require.NotZero(t, w.APRAll)
	assert.InDelta(t, w.APRAll, w.APYAll, 1e-6)
}

func TestPriceAt_ExactBoundaries(t *testing.T) {
	p := thirtyDayPeriod()
	summaries := []types.PeriodSummary{p}

	start, ok := priceAt(summaries, p.StartTimestamp)
	require.True(t, ok)
	assert.InDelta(t, 1.0, start, 0)

	end, ok := priceAt(summaries, p.EndTimestamp())
	require.True(t, ok)
	assert.InDelta(t, 1.03, end, 0)

	_, ok = priceAt(summaries, p.EndTimestamp()+1)
	assert.False(t, ok)
}

func TestVaultAge(t *testing.T) {
	p := thirtyDayPeriod()
	p.StartTimestamp = 1_000_000

	now := time.Unix(1_000_000+45*day+3600, 0)
	age, ok := VaultAge([]types.PeriodSummary{p}, now)
	require.True(t, ok)
	assert.Equal(t, 45, age)

	_, ok = VaultAge(nil, now)
	assert.False(t, ok)

	zeroSupply := p
	zeroSupply.TotalSupplyAtStart = 0
	_, ok = VaultAge([]types.PeriodSummary{zeroSupply}, now)
	assert.False(t, ok)
}
