package yield

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vaultscope/vault-aggregator/testutil"
)

// Randomized histories must never leak NaN or infinities, whatever the
// drift and period spacing.
func TestComputeWindows_RandomHistoriesStayFinite(t *testing.T) {
	for i := 0; i < 200; i++ {
		summaries := testutil.RandomPeriodSummaries(t, 1+i%12)

		w := ComputeWindows(summaries)
		for _, v := range []float64{w.APRAll, w.APR30D, w.APR7D, w.APYAll, w.APY30D, w.APY7D} {
			assert.False(t, math.IsNaN(v))
			assert.False(t, math.IsInf(v, 0))
		}
		assert.GreaterOrEqual(t, w.APYAll, -1.0)

		age, ok := VaultAge(summaries, time.Now())
		if assert.True(t, ok) {
			assert.GreaterOrEqual(t, age, 0)
		}
	}
}
