package warehouse

import (
	"context"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rprovine/reefwatch/internal/domain/alerts"
	"github.com/rprovine/reefwatch/internal/domain/ocean"
	"github.com/rprovine/reefwatch/internal/domain/risk"
)

// Postgres reads the ocean_conditions_daily and alerts tables. The tables
// are populated by the ingestion pipeline; this store never writes them.
type Postgres struct {
	pool *pgxpool.Pool
}

var (
	_ ocean.Warehouse = (*Postgres)(nil)
	_ alerts.Source   = (*Postgres)(nil)
)

// NewPostgres constructs the warehouse reader.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// RecentBySite returns the trailing window of rows per site name, dates
// ascending within each site.
func (p *Postgres) RecentBySite(ctx context.Context, windowDays int) (map[string][]ocean.Observation, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT site_name, date, sst, sst_anomaly, hotspot, dhw, risk_level, data_source
		FROM ocean_conditions_daily
		WHERE date >= CURRENT_DATE - $1::int
		ORDER BY site_name, date
	`, windowDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]ocean.Observation)
	for rows.Next() {
		var (
			obs       ocean.Observation
			riskLevel *string
			source    *string
		)
		if err := rows.Scan(&obs.SiteName, &obs.Date, &obs.SST, &obs.Anomaly, &obs.Hotspot, &obs.DHW, &riskLevel, &source); err != nil {
			return nil, err
		}
		if riskLevel != nil {
			obs.RiskLevel = risk.ParseLevel(*riskLevel)
		}
		if source != nil {
			obs.Source = *source
		}
		out[obs.SiteName] = append(out[obs.SiteName], obs)
	}
	return out, rows.Err()
}

// SiteHistory returns daily rows for one site, dates ascending.
func (p *Postgres) SiteHistory(ctx context.Context, siteName string, days int) ([]ocean.HistoricalPoint, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT date, sst, sst_anomaly, dhw, risk_level
		FROM ocean_conditions_daily
		WHERE site_name = $1
		AND date >= CURRENT_DATE - $2::int
		ORDER BY date
	`, siteName, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ocean.HistoricalPoint{}
	for rows.Next() {
		var (
			point     ocean.HistoricalPoint
			riskLevel *string
		)
		if err := rows.Scan(&point.Date, &point.SST, &point.Anomaly, &point.DHW, &riskLevel); err != nil {
			return nil, err
		}
		point.RiskLevel = risk.LevelUnknown
		if riskLevel != nil {
			point.RiskLevel = risk.ParseLevel(*riskLevel)
		}
		out = append(out, point)
	}
	return out, rows.Err()
}

// SiteStatistics aggregates one site over the requested window.
func (p *Postgres) SiteStatistics(ctx context.Context, siteName string, days int) (ocean.SiteStatistics, bool, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT
			COALESCE(AVG(sst), 0),
			COALESCE(MAX(sst), 0),
			COALESCE(MIN(sst), 0),
			COALESCE(AVG(dhw), 0),
			COALESCE(MAX(dhw), 0),
			COUNT(*) FILTER (WHERE risk_score >= 2),
			COUNT(*)
		FROM ocean_conditions_daily
		WHERE site_name = $1
		AND date >= CURRENT_DATE - $2::int
	`, siteName, days)

	var (
		stats     ocean.SiteStatistics
		totalDays int
	)
	if err := row.Scan(&stats.AvgSST, &stats.MaxSST, &stats.MinSST, &stats.AvgDHW, &stats.MaxDHW, &stats.DaysAtRisk, &totalDays); err != nil {
		return ocean.SiteStatistics{}, false, err
	}
	if totalDays == 0 {
		return ocean.SiteStatistics{}, false, nil
	}

	stats.AvgSST = round2(stats.AvgSST)
	stats.MaxSST = round2(stats.MaxSST)
	stats.MinSST = round2(stats.MinSST)
	stats.AvgDHW = round2(stats.AvgDHW)
	stats.MaxDHW = round2(stats.MaxDHW)
	if days > 0 {
		stats.DataCoverage = math.Min(float64(totalDays)/float64(days), 1.0)
	}
	return stats, true, nil
}

// ActiveAlerts returns unexpired active alert rows, newest first.
func (p *Postgres) ActiveAlerts(ctx context.Context) ([]alerts.Alert, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT alert_id, alert_type, severity, title, description, affected_sites, created_at, expires_at, is_active
		FROM alerts
		WHERE is_active = TRUE
		AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []alerts.Alert{}
	for rows.Next() {
		var (
			alert     alerts.Alert
			alertType string
			severity  string
			expiresAt *time.Time
		)
		if err := rows.Scan(&alert.ID, &alertType, &severity, &alert.Title, &alert.Description, &alert.AffectedSites, &alert.CreatedAt, &expiresAt, &alert.IsActive); err != nil {
			return nil, err
		}
		alert.Type = alerts.ParseType(alertType)
		alert.Severity = alerts.ParseSeverity(severity)
		alert.ExpiresAt = expiresAt
		out = append(out, alert)
	}
	return out, rows.Err()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
