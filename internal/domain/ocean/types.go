package ocean

import (
	"context"
	"time"

	"github.com/rprovine/reefwatch/internal/domain/risk"
	"github.com/rprovine/reefwatch/internal/domain/sites"
)

// Observation is one day of upstream measurements for a site. All signal
// fields are nullable; the warehouse owns this data and the core treats it
// as read-only input.
type Observation struct {
	SiteName string
	Date     time.Time
	SST      *float64
	Anomaly  *float64
	Hotspot  *float64
	DHW      *float64
	// RiskLevel carries the pre-classified tier when the warehouse row has
	// one. A populated value is authoritative and is not re-escalated.
	RiskLevel risk.Level
	Source    string
}

// Conditions is the observation slice of a SiteView as served to clients.
type Conditions struct {
	SST     *float64   `json:"sst"`
	Anomaly *float64   `json:"sstAnomaly"`
	Hotspot *float64   `json:"hotspot"`
	DHW     *float64   `json:"dhw"`
	Trend   risk.Trend `json:"temperatureTrend"`
}

// SiteView merges static site metadata with the freshest observation and
// derived risk. One exists for every catalog site even when no observation
// is available.
type SiteView struct {
	sites.Site
	Conditions  *Conditions     `json:"conditions"`
	Risk        risk.Assessment `json:"risk"`
	LastUpdated *time.Time      `json:"lastUpdated"`
}

// HistoricalPoint is one day of a site's history.
type HistoricalPoint struct {
	Date      time.Time  `json:"date"`
	SST       *float64   `json:"sst"`
	Anomaly   *float64   `json:"sstAnomaly"`
	DHW       *float64   `json:"dhw"`
	RiskLevel risk.Level `json:"riskLevel"`
}

// SiteStatistics summarizes a site over a requested window.
type SiteStatistics struct {
	AvgSST       float64 `json:"avgSst"`
	MaxSST       float64 `json:"maxSst"`
	MinSST       float64 `json:"minSst"`
	AvgDHW       float64 `json:"avgDhw"`
	MaxDHW       float64 `json:"maxDhw"`
	DaysAtRisk   int     `json:"daysAtRisk"`
	DataCoverage float64 `json:"dataCoverage"`
}

// RiskDistribution counts sites per tier.
type RiskDistribution struct {
	Low      int `json:"low"`
	Moderate int `json:"moderate"`
	High     int `json:"high"`
	Severe   int `json:"severe"`
}

// SummarySite is the per-site row inside a Summary.
type SummarySite struct {
	Name string     `json:"name"`
	SST  *float64   `json:"sst"`
	DHW  *float64   `json:"dhw"`
	Risk risk.Level `json:"risk"`
}

// Summary condenses current conditions for chat context injection and the
// admin statistics endpoint.
type Summary struct {
	Date             string           `json:"date"`
	TotalSites       int              `json:"totalSites"`
	SitesWithData    int              `json:"sitesWithData"`
	AverageSST       *float64         `json:"averageSst"`
	MaxSST           *float64         `json:"maxSst"`
	AverageDHW       *float64         `json:"averageDhw"`
	MaxDHW           *float64         `json:"maxDhw"`
	RiskDistribution RiskDistribution `json:"riskDistribution"`
	Sites            []SummarySite    `json:"sites"`
}

// Warehouse is the read-only upstream time-series store.
type Warehouse interface {
	// RecentBySite returns the trailing window of observations per site
	// name, ordered by date ascending within each site.
	RecentBySite(ctx context.Context, windowDays int) (map[string][]Observation, error)
	SiteHistory(ctx context.Context, siteName string, days int) ([]HistoricalPoint, error)
	SiteStatistics(ctx context.Context, siteName string, days int) (SiteStatistics, bool, error)
}

// Store caches derived views between warehouse refreshes. Implementations
// must publish entries atomically: readers see either the prior value or
// the fully-built new one.
type Store interface {
	GetConditions(ctx context.Context) ([]SiteView, bool, error)
	SaveConditions(ctx context.Context, views []SiteView, ttl time.Duration) error
	GetHistory(ctx context.Context, siteID string, days int) ([]HistoricalPoint, bool, error)
	SaveHistory(ctx context.Context, siteID string, days int, points []HistoricalPoint, ttl time.Duration) error
	GetStatistics(ctx context.Context, siteID string, days int) (SiteStatistics, bool, error)
	SaveStatistics(ctx context.Context, siteID string, days int, stats SiteStatistics, ttl time.Duration) error
	Clear(ctx context.Context) error
}
