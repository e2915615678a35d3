// Package yield derives annualized yield figures from irregularly
// spaced period summaries using price-per-share interpolation.
//
// All windows are measured back from the end of the most recent
// completed period, never from "now", so an open, still-accruing
// period cannot skew the result. Missing or insufficient history is a
// normal state and yields zeros, not errors.
package yield

import (
	"math"
	"time"

	"github.com/vaultscope/vault-aggregator/internal/types"
)

const (
	SecondsPerYear int64 = 365 * 86400
	SecondsPerDay  int64 = 86400

	Window30D int64 = 30 * SecondsPerDay
	Window7D  int64 = 7 * SecondsPerDay
)

// Windows holds annualized yield over the full history and the rolling
// 30-day and 7-day windows, as decimal fractions.
type Windows struct {
	APRAll float64
	APR30D float64
	APR7D  float64
	APYAll float64
	APY30D float64
	APY7D  float64
}

// ComputeWindows derives all yield windows from the given summaries.
// Input order is arbitrary; endpoints are discovered by scanning, not
// assumed from sort order.
func ComputeWindows(summaries []types.PeriodSummary) Windows {
	var w Windows

	latest, ok := latestCompleted(summaries)
	if !ok {
		return w
	}
	p1, ok := endPrice(latest)
	if !ok {
		return w
	}

	if earliest, ok := earliestValidStart(summaries); ok {
		p0, _ := startPrice(earliest)
		window := latest.EndTimestamp() - earliest.StartTimestamp
		if window > 0 {
			w.APRAll = linearAPR(p0, p1, window)
			w.APYAll = compoundedAPY(p0, p1, window)
		}
	}

	w.APR30D, w.APY30D = fixedWindow(summaries, latest, p1, Window30D)
	w.APR7D, w.APY7D = fixedWindow(summaries, latest, p1, Window7D)
	return w
}

// VaultAge returns the vault's age in whole days, measured from the
// earliest summary with a valid start price. ok is false when no such
// summary exists; callers surface that as "unknown", not zero.
func VaultAge(summaries []types.PeriodSummary, now time.Time) (int, bool) {
	earliest, ok := earliestValidStart(summaries)
	if !ok {
		return 0, false
	}
	age := now.Unix() - earliest.StartTimestamp
	if age < 0 {
		return 0, false
	}
	return int(age / SecondsPerDay), true
}

// fixedWindow computes APR/APY over exactly window seconds ending at
// the latest completed period's end. The start price is linearly
// interpolated inside the one period whose interval contains the
// target instant; a gap in history yields zeros rather than a guess.
func fixedWindow(summaries []types.PeriodSummary, latest types.PeriodSummary, p1 float64, window int64) (apr, apy float64) {
	target := latest.EndTimestamp() - window
	if target < 0 {
		return 0, 0
	}
	p0, ok := priceAt(summaries, target)
	if !ok {
		return 0, 0
	}
	return linearAPR(p0, p1, window), compoundedAPY(p0, p1, window)
}

// priceAt interpolates price-per-share at instant t inside the period
// containing it.
func priceAt(summaries []types.PeriodSummary, t int64) (float64, bool) {
	for _, s := range summaries {
		if s.DurationSeconds <= 0 {
			continue
		}
		if t < s.StartTimestamp || t > s.EndTimestamp() {
			continue
		}
		pStart, ok := startPrice(s)
		if !ok {
			return 0, false
		}
		pEnd, ok := endPrice(s)
		if !ok {
			return 0, false
		}
		frac := float64(t-s.StartTimestamp) / float64(s.DurationSeconds)
		p := pStart + frac*(pEnd-pStart)
		if !isFinitePositive(p) {
			return 0, false
		}
		return p, true
	}
	return 0, false
}

// latestCompleted finds the completed summary with the greatest end
// timestamp.
func latestCompleted(summaries []types.PeriodSummary) (types.PeriodSummary, bool) {
	var best types.PeriodSummary
	found := false
	for _, s := range summaries {
		if !s.Completed() {
			continue
		}
		if !found || s.EndTimestamp() > best.EndTimestamp() {
			best = s
			found = true
		}
	}
	return best, found
}

// earliestValidStart finds the summary with the smallest start
// timestamp among those with a positive, finite start price.
func earliestValidStart(summaries []types.PeriodSummary) (types.PeriodSummary, bool) {
	var best types.PeriodSummary
	found := false
	for _, s := range summaries {
		if _, ok := startPrice(s); !ok {
			continue
		}
		if !found || s.StartTimestamp < best.StartTimestamp {
			best = s
			found = true
		}
	}
	return best, found
}

func startPrice(s types.PeriodSummary) (float64, bool) {
	if s.TotalSupplyAtStart <= 0 {
		return 0, false
	}
	p := s.TotalAssetsAtStart / s.TotalSupplyAtStart
	if !isFinitePositive(p) {
		return 0, false
	}
	return p, true
}

// endPrice divides end assets by supply net of pending redemptions, so
// shares already queued for exit do not dilute the measurement. Falls
// back to gross end supply when net supply was not reported.
func endPrice(s types.PeriodSummary) (float64, bool) {
	supply := s.NetTotalSupplyAtEnd
	if supply <= 0 {
		supply = s.TotalSupplyAtEnd
	}
	if supply <= 0 {
		return 0, false
	}
	p := s.TotalAssetsAtEnd / supply
	if !isFinitePositive(p) {
		return 0, false
	}
	return p, true
}

func linearAPR(p0, p1 float64, window int64) float64 {
	if p0 <= 0 || window <= 0 {
		return 0
	}
	return sanitize((p1 - p0) / p0 * (float64(SecondsPerYear) / float64(window)))
}

func compoundedAPY(p0, p1 float64, window int64) float64 {
	if p0 <= 0 || window <= 0 {
		return 0
	}
	return sanitize(math.Pow(p1/p0, float64(SecondsPerYear)/float64(window)) - 1)
}

// sanitize collapses any non-finite intermediate to zero so NaN and
// infinities never reach callers.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
