package risk

import "time"

// Trend labels the short-term temperature direction for a site.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// Samples further back than this split into the "earlier" window.
const recentWindow = 3 * 24 * time.Hour

// A mean shift beyond this band counts as a direction change.
const trendBand = 0.3

// Sample is one dated SST reading.
type Sample struct {
	Date time.Time
	SST  float64
}

// EstimateTrend compares the mean SST of the most recent ~3 days against
// the mean of the remainder of the window. Missing or one-sided data yields
// stable; this never fails.
func EstimateTrend(samples []Sample, now time.Time) Trend {
	if len(samples) == 0 {
		return TrendStable
	}

	cutoff := now.Add(-recentWindow)
	var (
		recentSum, earlierSum     float64
		recentCount, earlierCount int
	)
	for _, s := range samples {
		if s.Date.Before(cutoff) {
			earlierSum += s.SST
			earlierCount++
		} else {
			recentSum += s.SST
			recentCount++
		}
	}
	if recentCount == 0 || earlierCount == 0 {
		return TrendStable
	}

	diff := recentSum/float64(recentCount) - earlierSum/float64(earlierCount)
	switch {
	case diff > trendBand:
		return TrendRising
	case diff < -trendBand:
		return TrendFalling
	default:
		return TrendStable
	}
}
