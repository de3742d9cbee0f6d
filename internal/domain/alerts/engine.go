package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rprovine/reefwatch/internal/domain/ocean"
	"github.com/rprovine/reefwatch/internal/observability"
)

const (
	severeAlertID = "dynamic-severe-bleaching"
	highAlertID   = "dynamic-high-bleaching"
)

// Risk scores at or above these thresholds trigger synthetic alerts.
const (
	highScoreFloor   = 2
	severeScoreFloor = 3
)

// Service produces the active alert feed.
type Service interface {
	// ActiveAlerts merges stored alerts with synthetic bleaching alerts
	// derived from current conditions. Never fails; a dead source degrades
	// to synthetic alerts only.
	ActiveAlerts(ctx context.Context) ([]Alert, error)
}

// ConditionsProvider is the slice of the ocean service the engine needs.
type ConditionsProvider interface {
	CurrentConditions(ctx context.Context) ([]ocean.SiteView, error)
}

type service struct {
	cacheTTL   time.Duration
	source     Source
	cache      Cache
	conditions ConditionsProvider
	metrics    *observability.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

// NewService wires up the alert engine.
func NewService(cacheTTL time.Duration, source Source, cache Cache, conditions ConditionsProvider, metrics *observability.Metrics, logger *slog.Logger) Service {
	return &service{
		cacheTTL:   cacheTTL,
		source:     source,
		cache:      cache,
		conditions: conditions,
		metrics:    metrics,
		logger:     logger.With("component", "alerts.engine"),
		now:        time.Now,
	}
}

func (s *service) ActiveAlerts(ctx context.Context) ([]Alert, error) {
	if cached, ok, err := s.cache.GetAlerts(ctx); err == nil && ok {
		s.metrics.CacheLookups.WithLabelValues("alerts", "hit").Inc()
		return cached, nil
	}
	s.metrics.CacheLookups.WithLabelValues("alerts", "miss").Inc()

	out := []Alert{}
	stored, err := s.source.ActiveAlerts(ctx)
	if err != nil {
		s.metrics.WarehouseCalls.WithLabelValues("active_alerts", "error").Inc()
		s.logger.Warn("stored alerts unavailable", "error", err)
	} else {
		s.metrics.WarehouseCalls.WithLabelValues("active_alerts", "success").Inc()
		out = append(out, stored...)
	}

	views, err := s.conditions.CurrentConditions(ctx)
	if err != nil {
		s.logger.Error("conditions unavailable for alert synthesis", "error", err)
		views = nil
	}
	if synthetic := s.synthesize(views); synthetic != nil {
		out = append(out, *synthetic)
		s.metrics.AlertsGenerated.WithLabelValues(string(synthetic.Severity)).Inc()
	}

	if err := s.cache.SaveAlerts(ctx, out, s.cacheTTL); err != nil {
		s.logger.Warn("alert cache write failed", "error", err)
	}
	return out, nil
}

// synthesize emits at most one bleaching alert: the severe alert when any
// site scores Severe, otherwise the high warning when any site scores High.
func (s *service) synthesize(views []ocean.SiteView) *Alert {
	var highSites, severeSites []string
	for _, v := range views {
		if v.Risk.Score >= highScoreFloor {
			highSites = append(highSites, v.ID)
		}
		if v.Risk.Score >= severeScoreFloor {
			severeSites = append(severeSites, v.ID)
		}
	}

	switch {
	case len(severeSites) > 0:
		return &Alert{
			ID:       severeAlertID,
			Type:     TypeBleaching,
			Severity: SeverityAlert,
			Title:    "Severe Coral Bleaching Alert",
			Description: fmt.Sprintf("Severe bleaching conditions detected at %d site(s). "+
				"DHW values exceed 12°C-weeks. Avoid contact with coral.", len(severeSites)),
			AffectedSites: severeSites,
			CreatedAt:     s.now().UTC(),
			IsActive:      true,
		}
	case len(highSites) > 0:
		return &Alert{
			ID:       highAlertID,
			Type:     TypeBleaching,
			Severity: SeverityWarning,
			Title:    "Coral Bleaching Warning",
			Description: fmt.Sprintf("Elevated bleaching risk at %d site(s). "+
				"Water temperatures are above normal. Please be gentle with reef ecosystems.", len(highSites)),
			AffectedSites: highSites,
			CreatedAt:     s.now().UTC(),
			IsActive:      true,
		}
	default:
		return nil
	}
}
