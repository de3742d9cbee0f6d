package forecast

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/rprovine/reefwatch/internal/domain/ocean"
	"github.com/rprovine/reefwatch/internal/domain/risk"
	"github.com/rprovine/reefwatch/internal/domain/sites"
	"github.com/rprovine/reefwatch/internal/observability"
	apperrors "github.com/rprovine/reefwatch/pkg/errors"
)

// Physical bounds kept on projections. Hawaiian nearshore waters stay
// within this SST range year-round.
const (
	minSST = 22.0
	maxSST = 32.0
	maxDHW = 20.0
)

// Per-day damping applied to the projected trend and to confidence.
const (
	dampingStep  = 0.1
	dampingFloor = 0.3
)

// Service generates persistence forecasts.
type Service interface {
	// Site projects conditions for one site over the next 1..MaxDays days.
	Site(ctx context.Context, siteID string, days int) (SiteForecast, error)
	// All projects every catalog site.
	All(ctx context.Context, days int) ([]SiteForecast, error)
	// BestSites ranks sites for a target date, lowest predicted risk first.
	// Dates outside the forecastable horizon yield an empty list.
	BestSites(ctx context.Context, targetDate time.Time) ([]Recommendation, error)
}

// HistoryProvider is the slice of the ocean service the forecaster reads.
type HistoryProvider interface {
	SiteHistory(ctx context.Context, siteID string, days int) ([]ocean.HistoricalPoint, error)
}

// Config carries forecast tuning.
type Config struct {
	MaxDays         int
	TrendWindowDays int
	BaselineSST     float64
	BaselineDHW     float64
}

type service struct {
	cfg     Config
	history HistoryProvider
	metrics *observability.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires up the forecast generator.
func NewService(cfg Config, history HistoryProvider, metrics *observability.Metrics, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		history: history,
		metrics: metrics,
		logger:  logger.With("component", "forecast.service"),
		now:     time.Now,
	}
}

func (s *service) Site(ctx context.Context, siteID string, days int) (SiteForecast, error) {
	site, ok := sites.ByID(siteID)
	if !ok {
		return SiteForecast{}, apperrors.Wrap("not_found", "unknown site: "+siteID, nil)
	}
	if days < 1 || days > s.cfg.MaxDays {
		return SiteForecast{}, apperrors.Wrap("invalid_input", "forecast days out of range", nil)
	}
	s.metrics.ForecastRequests.Inc()

	history, err := s.history.SiteHistory(ctx, siteID, s.cfg.TrendWindowDays)
	if err != nil {
		s.logger.Warn("history unavailable for forecast", "site", siteID, "error", err)
		history = nil
	}
	if len(history) == 0 {
		return SiteForecast{
			SiteID:      site.ID,
			SiteName:    site.Name,
			Forecast:    s.baseline(days),
			GeneratedAt: s.now().UTC(),
		}, nil
	}

	var sstValues, dhwValues []float64
	for _, h := range history {
		if h.SST != nil {
			sstValues = append(sstValues, *h.SST)
		}
		if h.DHW != nil {
			dhwValues = append(dhwValues, *h.DHW)
		}
	}

	return SiteForecast{
		SiteID:      site.ID,
		SiteName:    site.Name,
		Forecast:    s.persistence(sstValues, dhwValues, days),
		GeneratedAt: s.now().UTC(),
	}, nil
}

func (s *service) All(ctx context.Context, days int) ([]SiteForecast, error) {
	if days < 1 || days > s.cfg.MaxDays {
		return nil, apperrors.Wrap("invalid_input", "forecast days out of range", nil)
	}

	out := make([]SiteForecast, 0, sites.Count())
	for _, site := range sites.All() {
		fc, err := s.Site(ctx, site.ID, days)
		if err != nil {
			s.logger.Warn("site forecast failed", "site", site.ID, "error", err)
			continue
		}
		out = append(out, fc)
	}
	return out, nil
}

func (s *service) BestSites(ctx context.Context, targetDate time.Time) ([]Recommendation, error) {
	today := s.today()
	target := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, time.UTC)
	daysAhead := int(target.Sub(today).Hours() / 24)
	if daysAhead < 1 || daysAhead > s.cfg.MaxDays {
		return []Recommendation{}, nil
	}

	forecasts, err := s.All(ctx, daysAhead)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(forecasts))
	for _, fc := range forecasts {
		if len(fc.Forecast) < daysAhead {
			continue
		}
		p := fc.Forecast[daysAhead-1]
		recs = append(recs, Recommendation{
			SiteID:        fc.SiteID,
			SiteName:      fc.SiteName,
			PredictedSST:  p.PredictedSST,
			PredictedDHW:  p.PredictedDHW,
			PredictedRisk: p.PredictedRisk,
			Confidence:    p.Confidence,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := risk.Rank(recs[i].PredictedRisk), risk.Rank(recs[j].PredictedRisk)
		if ri != rj {
			return ri < rj
		}
		return recs[i].Confidence > recs[j].Confidence
	})
	return recs, nil
}

// persistence projects the latest values forward along a damped recent
// trend. Empty inputs yield an empty forecast.
func (s *service) persistence(sstValues, dhwValues []float64, days int) []Point {
	if len(sstValues) == 0 || len(dhwValues) == 0 {
		return []Point{}
	}

	sstTrend := dailyTrend(sstValues)
	dhwTrend := dailyTrend(dhwValues)
	currentSST := sstValues[len(sstValues)-1]
	currentDHW := dhwValues[len(dhwValues)-1]

	today := s.today()
	points := make([]Point, 0, days)
	for i := 1; i <= days; i++ {
		damping := math.Max(1-float64(i)*dampingStep, dampingFloor)

		sst := clamp(currentSST+sstTrend*float64(i)*damping, minSST, maxSST)
		dhw := clamp(currentDHW+dhwTrend*float64(i)*damping, 0, maxDHW)
		confidence := math.Max(dampingFloor, 1-float64(i)*dampingStep)

		points = append(points, Point{
			Date:          today.AddDate(0, 0, i),
			PredictedSST:  round1(sst),
			PredictedDHW:  round1(dhw),
			PredictedRisk: risk.FromDHW(round1(dhw)).Level,
			Confidence:    round2(confidence),
		})
	}
	return points
}

// baseline is the flat low-confidence forecast served when a site has no
// usable history.
func (s *service) baseline(days int) []Point {
	today := s.today()
	points := make([]Point, 0, days)
	for i := 1; i <= days; i++ {
		points = append(points, Point{
			Date:          today.AddDate(0, 0, i),
			PredictedSST:  s.cfg.BaselineSST,
			PredictedDHW:  s.cfg.BaselineDHW,
			PredictedRisk: risk.LevelLow,
			Confidence:    0.2,
		})
	}
	return points
}

// dailyTrend estimates per-day change from the trailing week when enough
// samples exist, falling back to the full span for short series.
func dailyTrend(values []float64) float64 {
	switch {
	case len(values) >= 7:
		return (values[len(values)-1] - values[len(values)-7]) / 7
	case len(values) >= 2:
		return (values[len(values)-1] - values[0]) / float64(len(values))
	default:
		return 0
	}
}

func (s *service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
