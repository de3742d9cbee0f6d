package ocean

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/rprovine/reefwatch/internal/domain/risk"
	"github.com/rprovine/reefwatch/internal/domain/sites"
	"github.com/rprovine/reefwatch/internal/observability"
	apperrors "github.com/rprovine/reefwatch/pkg/errors"
)

// Service exposes the conditions cache/aggregator.
type Service interface {
	// CurrentConditions returns one SiteView per catalog site. It never
	// surfaces upstream failures; a dead warehouse degrades every view to
	// Unknown risk.
	CurrentConditions(ctx context.Context) ([]SiteView, error)
	SiteHistory(ctx context.Context, siteID string, days int) ([]HistoricalPoint, error)
	SiteStatistics(ctx context.Context, siteID string, days int) (SiteStatistics, error)
	Summary(ctx context.Context) (Summary, error)
	ClearCache(ctx context.Context)
}

// Config carries the cache and window settings for the ocean domain.
type Config struct {
	CacheTTL         time.Duration
	LatestWindowDays int
	MaxHistoryDays   int
}

type service struct {
	cfg       Config
	warehouse Warehouse
	store     Store
	metrics   *observability.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the ocean conditions domain.
func NewService(cfg Config, warehouse Warehouse, store Store, metrics *observability.Metrics, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		warehouse: warehouse,
		store:     store,
		metrics:   metrics,
		logger:    logger.With("component", "ocean.service"),
		now:       time.Now,
	}
}

func (s *service) CurrentConditions(ctx context.Context) ([]SiteView, error) {
	if views, ok, err := s.store.GetConditions(ctx); err == nil && ok {
		s.metrics.CacheLookups.WithLabelValues("conditions", "hit").Inc()
		return views, nil
	} else if err != nil {
		s.logger.Warn("conditions cache read failed", "error", err)
	}
	s.metrics.CacheLookups.WithLabelValues("conditions", "miss").Inc()

	recent, err := s.warehouse.RecentBySite(ctx, s.cfg.LatestWindowDays)
	if err != nil {
		s.metrics.WarehouseCalls.WithLabelValues("recent_by_site", "error").Inc()
		s.logger.Error("warehouse fetch failed, serving degraded conditions", "error", err)
		return s.degradedViews(), nil
	}
	s.metrics.WarehouseCalls.WithLabelValues("recent_by_site", "success").Inc()

	views := s.buildViews(recent)
	if err := s.store.SaveConditions(ctx, views, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("conditions cache write failed", "error", err)
	}
	return views, nil
}

func (s *service) buildViews(recent map[string][]Observation) []SiteView {
	now := s.now()
	views := make([]SiteView, 0, sites.Count())
	for _, site := range sites.All() {
		window := recent[site.Name]
		if len(window) == 0 {
			views = append(views, SiteView{
				Site: site,
				Risk: risk.FromLevel(risk.LevelUnknown),
			})
			continue
		}

		latest := window[len(window)-1]
		trend := risk.EstimateTrend(sstSamples(window), now)
		views = append(views, SiteView{
			Site: site,
			Conditions: &Conditions{
				SST:     latest.SST,
				Anomaly: latest.Anomaly,
				Hotspot: latest.Hotspot,
				DHW:     latest.DHW,
				Trend:   trend,
			},
			Risk:        assess(latest),
			LastUpdated: timePtr(latest.Date),
		})
	}
	return views
}

// assess prefers the warehouse's pre-classified tier; the full classifier
// with anomaly escalation only runs when the row carries raw signals alone.
func assess(obs Observation) risk.Assessment {
	if obs.RiskLevel != "" {
		return risk.FromLevel(risk.ParseLevel(string(obs.RiskLevel)))
	}
	return risk.Classify(obs.DHW, obs.Anomaly)
}

func (s *service) degradedViews() []SiteView {
	views := make([]SiteView, 0, sites.Count())
	for _, site := range sites.All() {
		views = append(views, SiteView{
			Site: site,
			Risk: risk.FromLevel(risk.LevelUnknown),
		})
	}
	return views
}

func (s *service) SiteHistory(ctx context.Context, siteID string, days int) ([]HistoricalPoint, error) {
	site, ok := sites.ByID(siteID)
	if !ok {
		return nil, apperrors.Wrap("not_found", "unknown site: "+siteID, nil)
	}
	if days < 1 || days > s.cfg.MaxHistoryDays {
		return nil, apperrors.Wrap("invalid_input", "history days out of range", nil)
	}

	if points, ok, err := s.store.GetHistory(ctx, siteID, days); err == nil && ok {
		s.metrics.CacheLookups.WithLabelValues("history", "hit").Inc()
		return points, nil
	}
	s.metrics.CacheLookups.WithLabelValues("history", "miss").Inc()

	points, err := s.warehouse.SiteHistory(ctx, site.Name, days)
	if err != nil {
		s.metrics.WarehouseCalls.WithLabelValues("site_history", "error").Inc()
		s.logger.Error("warehouse history fetch failed", "site", siteID, "error", err)
		return []HistoricalPoint{}, nil
	}
	s.metrics.WarehouseCalls.WithLabelValues("site_history", "success").Inc()
	if err := s.store.SaveHistory(ctx, siteID, days, points, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("history cache write failed", "site", siteID, "error", err)
	}
	return points, nil
}

func (s *service) SiteStatistics(ctx context.Context, siteID string, days int) (SiteStatistics, error) {
	site, ok := sites.ByID(siteID)
	if !ok {
		return SiteStatistics{}, apperrors.Wrap("not_found", "unknown site: "+siteID, nil)
	}
	if days < 1 || days > s.cfg.MaxHistoryDays {
		return SiteStatistics{}, apperrors.Wrap("invalid_input", "statistics days out of range", nil)
	}

	if stats, ok, err := s.store.GetStatistics(ctx, siteID, days); err == nil && ok {
		s.metrics.CacheLookups.WithLabelValues("statistics", "hit").Inc()
		return stats, nil
	}
	s.metrics.CacheLookups.WithLabelValues("statistics", "miss").Inc()

	stats, found, err := s.warehouse.SiteStatistics(ctx, site.Name, days)
	if err != nil {
		s.metrics.WarehouseCalls.WithLabelValues("site_statistics", "error").Inc()
		s.logger.Error("warehouse statistics fetch failed", "site", siteID, "error", err)
		return SiteStatistics{}, nil
	}
	s.metrics.WarehouseCalls.WithLabelValues("site_statistics", "success").Inc()
	if !found {
		return SiteStatistics{}, nil
	}
	stats.DataCoverage = math.Min(stats.DataCoverage, 1.0)
	if err := s.store.SaveStatistics(ctx, siteID, days, stats, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("statistics cache write failed", "site", siteID, "error", err)
	}
	return stats, nil
}

func (s *service) Summary(ctx context.Context) (Summary, error) {
	views, err := s.CurrentConditions(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Date:       s.now().UTC().Format("2006-01-02"),
		TotalSites: len(views),
		Sites:      make([]SummarySite, 0, len(views)),
	}

	var sstValues, dhwValues []float64
	for _, v := range views {
		row := SummarySite{Name: v.Name, Risk: v.Risk.Level}
		if v.Conditions != nil {
			summary.SitesWithData++
			row.SST = v.Conditions.SST
			row.DHW = v.Conditions.DHW
			if v.Conditions.SST != nil {
				sstValues = append(sstValues, *v.Conditions.SST)
			}
			if v.Conditions.DHW != nil {
				dhwValues = append(dhwValues, *v.Conditions.DHW)
			}
		}
		switch v.Risk.Level {
		case risk.LevelLow:
			summary.RiskDistribution.Low++
		case risk.LevelModerate:
			summary.RiskDistribution.Moderate++
		case risk.LevelHigh:
			summary.RiskDistribution.High++
		case risk.LevelSevere:
			summary.RiskDistribution.Severe++
		}
		summary.Sites = append(summary.Sites, row)
	}

	if len(sstValues) > 0 {
		summary.AverageSST = roundPtr(mean(sstValues), 1)
		summary.MaxSST = roundPtr(maxOf(sstValues), 1)
	}
	if len(dhwValues) > 0 {
		summary.AverageDHW = roundPtr(mean(dhwValues), 1)
		summary.MaxDHW = roundPtr(maxOf(dhwValues), 1)
	}
	return summary, nil
}

func (s *service) ClearCache(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("cache clear failed", "error", err)
		return
	}
	s.logger.Info("conditions cache cleared")
}

func sstSamples(window []Observation) []risk.Sample {
	samples := make([]risk.Sample, 0, len(window))
	for _, obs := range window {
		if obs.SST == nil {
			continue
		}
		samples = append(samples, risk.Sample{Date: obs.Date, SST: *obs.SST})
	}
	return samples
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func roundPtr(v float64, decimals int) *float64 {
	factor := math.Pow10(decimals)
	rounded := math.Round(v*factor) / factor
	return &rounded
}

func timePtr(t time.Time) *time.Time {
	return &t
}
