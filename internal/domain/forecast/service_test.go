package forecast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rprovine/reefwatch/internal/domain/ocean"
	"github.com/rprovine/reefwatch/internal/domain/risk"
	"github.com/rprovine/reefwatch/internal/domain/sites"
	"github.com/rprovine/reefwatch/internal/observability"
	apperrors "github.com/rprovine/reefwatch/pkg/errors"
)

type stubHistory struct {
	points map[string][]ocean.HistoricalPoint
	err    error
}

func (s *stubHistory) SiteHistory(ctx context.Context, siteID string, days int) ([]ocean.HistoricalPoint, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.points[siteID], nil
}

func fp(v float64) *float64 { return &v }

func flatHistory(n int, sst, dhw float64) []ocean.HistoricalPoint {
	out := make([]ocean.HistoricalPoint, n)
	base := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = ocean.HistoricalPoint{Date: base.AddDate(0, 0, i), SST: fp(sst), DHW: fp(dhw)}
	}
	return out
}

func newTestForecaster(h HistoryProvider) *service {
	cfg := Config{MaxDays: 7, TrendWindowDays: 14, BaselineSST: 26.0, BaselineDHW: 2.0}
	svc := NewService(cfg, h, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = func() time.Time { return time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestSiteForecastFlatHistoryStaysFlat(t *testing.T) {
	h := &stubHistory{points: map[string][]ocean.HistoricalPoint{
		"hanauma-bay": flatHistory(14, 27.0, 3.0),
	}}
	svc := newTestForecaster(h)

	fc, err := svc.Site(context.Background(), "hanauma-bay", 7)
	require.NoError(t, err)
	require.Equal(t, "Hanauma Bay", fc.SiteName)
	require.Len(t, fc.Forecast, 7)
	for i, p := range fc.Forecast {
		require.InDelta(t, 27.0, p.PredictedSST, 0.001)
		require.InDelta(t, 3.0, p.PredictedDHW, 0.001)
		require.Equal(t, risk.LevelLow, p.PredictedRisk)
		require.Equal(t, time.Date(2025, 9, 16+i, 0, 0, 0, 0, time.UTC), p.Date)
	}
}

func TestSiteForecastConfidenceDecays(t *testing.T) {
	h := &stubHistory{points: map[string][]ocean.HistoricalPoint{
		"hanauma-bay": flatHistory(14, 27.0, 3.0),
	}}
	svc := newTestForecaster(h)

	fc, err := svc.Site(context.Background(), "hanauma-bay", 7)
	require.NoError(t, err)
	require.InDelta(t, 0.9, fc.Forecast[0].Confidence, 0.001)
	require.InDelta(t, 0.3, fc.Forecast[6].Confidence, 0.001)
	for i := 1; i < len(fc.Forecast); i++ {
		require.LessOrEqual(t, fc.Forecast[i].Confidence, fc.Forecast[i-1].Confidence)
	}
}

func TestSiteForecastClampsBounds(t *testing.T) {
	// Steep rising trend must not push SST past the physical ceiling.
	points := make([]ocean.HistoricalPoint, 14)
	base := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	for i := range points {
		points[i] = ocean.HistoricalPoint{Date: base.AddDate(0, 0, i), SST: fp(25.0 + float64(i)), DHW: fp(float64(i) * 2)}
	}
	h := &stubHistory{points: map[string][]ocean.HistoricalPoint{"hanauma-bay": points}}
	svc := newTestForecaster(h)

	fc, err := svc.Site(context.Background(), "hanauma-bay", 7)
	require.NoError(t, err)
	for _, p := range fc.Forecast {
		require.LessOrEqual(t, p.PredictedSST, 32.0)
		require.GreaterOrEqual(t, p.PredictedSST, 22.0)
		require.LessOrEqual(t, p.PredictedDHW, 20.0)
		require.GreaterOrEqual(t, p.PredictedDHW, 0.0)
	}
}

func TestSiteForecastBaselineWithoutHistory(t *testing.T) {
	svc := newTestForecaster(&stubHistory{})

	fc, err := svc.Site(context.Background(), "hanauma-bay", 3)
	require.NoError(t, err)
	require.Len(t, fc.Forecast, 3)
	for _, p := range fc.Forecast {
		require.Equal(t, 26.0, p.PredictedSST)
		require.Equal(t, 2.0, p.PredictedDHW)
		require.Equal(t, risk.LevelLow, p.PredictedRisk)
		require.Equal(t, 0.2, p.Confidence)
	}
}

func TestSiteForecastBaselineWhenHistoryFails(t *testing.T) {
	svc := newTestForecaster(&stubHistory{err: errors.New("warehouse down")})

	fc, err := svc.Site(context.Background(), "hanauma-bay", 7)
	require.NoError(t, err)
	require.Len(t, fc.Forecast, 7)
	require.Equal(t, 0.2, fc.Forecast[0].Confidence)
}

func TestSiteForecastEmptyWhenSeriesAllNil(t *testing.T) {
	points := make([]ocean.HistoricalPoint, 5)
	base := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	for i := range points {
		points[i] = ocean.HistoricalPoint{Date: base.AddDate(0, 0, i)}
	}
	svc := newTestForecaster(&stubHistory{points: map[string][]ocean.HistoricalPoint{"hanauma-bay": points}})

	// Rows exist but carry no usable readings: the forecast is empty
	// rather than a baseline, since the site is being observed.
	fc, err := svc.Site(context.Background(), "hanauma-bay", 3)
	require.NoError(t, err)
	require.Empty(t, fc.Forecast)
}

func TestSiteForecastValidation(t *testing.T) {
	svc := newTestForecaster(&stubHistory{})

	_, err := svc.Site(context.Background(), "nope", 7)
	require.True(t, apperrors.IsCode(err, "not_found"))

	for _, days := range []int{0, 8} {
		_, err := svc.Site(context.Background(), "hanauma-bay", days)
		require.True(t, apperrors.IsCode(err, "invalid_input"), "days=%d", days)
	}
}

func TestAllForecastsCoverCatalog(t *testing.T) {
	svc := newTestForecaster(&stubHistory{})

	out, err := svc.All(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, out, sites.Count())
}

func TestBestSitesRanksByRiskThenConfidence(t *testing.T) {
	h := &stubHistory{points: map[string][]ocean.HistoricalPoint{
		"hanauma-bay":   flatHistory(14, 29.0, 9.0),
		"sharks-cove":   flatHistory(14, 27.0, 1.0),
		"waikiki-beach": flatHistory(14, 28.0, 5.0),
	}}
	svc := newTestForecaster(h)

	recs, err := svc.BestSites(context.Background(), time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, recs, sites.Count())

	pos := map[string]int{}
	for i, r := range recs {
		pos[r.SiteID] = i
	}
	require.Less(t, pos["sharks-cove"], pos["waikiki-beach"])
	require.Less(t, pos["waikiki-beach"], pos["hanauma-bay"])
	require.Equal(t, risk.LevelHigh, recs[pos["hanauma-bay"]].PredictedRisk)
}

func TestBestSitesOutOfHorizon(t *testing.T) {
	svc := newTestForecaster(&stubHistory{})

	for _, target := range []time.Time{
		time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
	} {
		recs, err := svc.BestSites(context.Background(), target)
		require.NoError(t, err)
		require.Empty(t, recs)
	}
}
