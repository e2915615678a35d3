package types

// PeriodSummary is one settlement-period snapshot of vault economics,
// the measurement checkpoint the yield calculator works from. Summaries
// usually arrive ordered by StartTimestamp descending, but nothing may
// rely on that.
type PeriodSummary struct {
	TotalAssetsAtStart float64 `json:"totalAssetsAtStart"`
	TotalSupplyAtStart float64 `json:"totalSupplyAtStart"`
	TotalAssetsAtEnd   float64 `json:"totalAssetsAtEnd"`
	TotalSupplyAtEnd   float64 `json:"totalSupplyAtEnd"`
	// NetTotalSupplyAtEnd is end supply net of shares already queued
	// for redemption. Zero means the subgraph did not report it.
	NetTotalSupplyAtEnd float64 `json:"netTotalSupplyAtEnd"`
	// StartTimestamp is unix seconds.
	StartTimestamp  int64 `json:"startTimestamp"`
	DurationSeconds int64 `json:"durationSeconds"`
}

// Completed reports whether this period has settled. An in-progress
// period has DurationSeconds == 0 and is excluded from window math.
func (p PeriodSummary) Completed() bool {
	return p.DurationSeconds > 0 && p.TotalAssetsAtEnd > 0 && p.TotalSupplyAtEnd > 0
}

// EndTimestamp is the unix second the period settled at.
func (p PeriodSummary) EndTimestamp() int64 {
	return p.StartTimestamp + p.DurationSeconds
}
