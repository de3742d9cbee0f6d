package warehouse

import (
	"context"
	"math"
	"time"

	"github.com/rprovine/reefwatch/internal/domain/alerts"
	"github.com/rprovine/reefwatch/internal/domain/ocean"
	"github.com/rprovine/reefwatch/internal/domain/risk"
	"github.com/rprovine/reefwatch/internal/domain/sites"
)

// Memory is a synthetic warehouse for local development and tests. Data is
// generated deterministically per site so responses are stable across
// restarts.
type Memory struct {
	now func() time.Time
}

var (
	_ ocean.Warehouse = (*Memory)(nil)
	_ alerts.Source   = (*Memory)(nil)
)

// NewMemory constructs the synthetic warehouse.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) RecentBySite(ctx context.Context, windowDays int) (map[string][]ocean.Observation, error) {
	out := make(map[string][]ocean.Observation, sites.Count())
	for i, site := range sites.All() {
		window := make([]ocean.Observation, 0, windowDays)
		for _, day := range m.dates(windowDays) {
			sst, anomaly, hotspot, dhw := synthesize(i, day)
			window = append(window, ocean.Observation{
				SiteName: site.Name,
				Date:     day,
				SST:      &sst,
				Anomaly:  &anomaly,
				Hotspot:  &hotspot,
				DHW:      &dhw,
				Source:   "synthetic",
			})
		}
		out[site.Name] = window
	}
	return out, nil
}

func (m *Memory) SiteHistory(ctx context.Context, siteName string, days int) ([]ocean.HistoricalPoint, error) {
	siteIndex := -1
	for i, site := range sites.All() {
		if site.Name == siteName {
			siteIndex = i
			break
		}
	}
	if siteIndex < 0 {
		return []ocean.HistoricalPoint{}, nil
	}

	out := make([]ocean.HistoricalPoint, 0, days)
	for _, day := range m.dates(days) {
		sst, anomaly, _, dhw := synthesize(siteIndex, day)
		out = append(out, ocean.HistoricalPoint{
			Date:      day,
			SST:       &sst,
			Anomaly:   &anomaly,
			DHW:       &dhw,
			RiskLevel: risk.FromDHW(dhw).Level,
		})
	}
	return out, nil
}

func (m *Memory) SiteStatistics(ctx context.Context, siteName string, days int) (ocean.SiteStatistics, bool, error) {
	history, err := m.SiteHistory(ctx, siteName, days)
	if err != nil || len(history) == 0 {
		return ocean.SiteStatistics{}, false, err
	}

	stats := ocean.SiteStatistics{MinSST: math.MaxFloat64}
	var sstSum, dhwSum float64
	for _, h := range history {
		sstSum += *h.SST
		dhwSum += *h.DHW
		stats.MaxSST = math.Max(stats.MaxSST, *h.SST)
		stats.MinSST = math.Min(stats.MinSST, *h.SST)
		stats.MaxDHW = math.Max(stats.MaxDHW, *h.DHW)
		if risk.Rank(h.RiskLevel) >= risk.Rank(risk.LevelHigh) && h.RiskLevel != risk.LevelUnknown {
			stats.DaysAtRisk++
		}
	}
	n := float64(len(history))
	stats.AvgSST = round2(sstSum / n)
	stats.AvgDHW = round2(dhwSum / n)
	stats.MaxSST = round2(stats.MaxSST)
	stats.MinSST = round2(stats.MinSST)
	stats.MaxDHW = round2(stats.MaxDHW)
	stats.DataCoverage = math.Min(n/float64(days), 1.0)
	return stats, true, nil
}

// ActiveAlerts returns no stored rows; the engine still synthesizes
// alerts from conditions.
func (m *Memory) ActiveAlerts(ctx context.Context) ([]alerts.Alert, error) {
	return []alerts.Alert{}, nil
}

// dates yields the trailing N days up to yesterday, ascending.
func (m *Memory) dates(days int) []time.Time {
	now := m.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, 0, days)
	for i := days; i >= 1; i-- {
		out = append(out, today.AddDate(0, 0, -i))
	}
	return out
}

// synthesize produces a plausible observation for a site and day. A slow
// sinusoid over the year plus a per-site offset keeps values in the
// Hawaiian range with a couple of sites running warm.
func synthesize(siteIndex int, day time.Time) (sst, anomaly, hotspot, dhw float64) {
	seasonal := 1.5 * math.Sin(2*math.Pi*float64(day.YearDay())/365)
	offset := 0.3 * float64(siteIndex%5)

	sst = roundTenth(26.0 + seasonal + offset)
	anomaly = roundTenth(offset + seasonal*0.3)
	hotspot = roundTenth(math.Max(0, anomaly-0.2))
	dhw = roundTenth(math.Max(0, offset*4+seasonal))
	return sst, anomaly, hotspot, dhw
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
