package ocean

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rprovine/reefwatch/internal/domain/risk"
	"github.com/rprovine/reefwatch/internal/domain/sites"
	"github.com/rprovine/reefwatch/internal/observability"
	apperrors "github.com/rprovine/reefwatch/pkg/errors"
)

type stubWarehouse struct {
	recent     map[string][]Observation
	recentErr  error
	history    []HistoricalPoint
	historyErr error
	stats      SiteStatistics
	statsFound bool
	statsErr   error
	calls      int
}

func (s *stubWarehouse) RecentBySite(ctx context.Context, windowDays int) (map[string][]Observation, error) {
	s.calls++
	if s.recentErr != nil {
		return nil, s.recentErr
	}
	return s.recent, nil
}

func (s *stubWarehouse) SiteHistory(ctx context.Context, siteName string, days int) ([]HistoricalPoint, error) {
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	return s.history, nil
}

func (s *stubWarehouse) SiteStatistics(ctx context.Context, siteName string, days int) (SiteStatistics, bool, error) {
	if s.statsErr != nil {
		return SiteStatistics{}, false, s.statsErr
	}
	return s.stats, s.statsFound, nil
}

type stubStore struct {
	conditions []SiteView
	hasCond    bool
	saves      int
}

func (s *stubStore) GetConditions(ctx context.Context) ([]SiteView, bool, error) {
	return s.conditions, s.hasCond, nil
}

func (s *stubStore) SaveConditions(ctx context.Context, views []SiteView, ttl time.Duration) error {
	s.conditions = views
	s.hasCond = true
	s.saves++
	return nil
}

func (s *stubStore) GetHistory(ctx context.Context, siteID string, days int) ([]HistoricalPoint, bool, error) {
	return nil, false, nil
}

func (s *stubStore) SaveHistory(ctx context.Context, siteID string, days int, points []HistoricalPoint, ttl time.Duration) error {
	return nil
}

func (s *stubStore) GetStatistics(ctx context.Context, siteID string, days int) (SiteStatistics, bool, error) {
	return SiteStatistics{}, false, nil
}

func (s *stubStore) SaveStatistics(ctx context.Context, siteID string, days int, stats SiteStatistics, ttl time.Duration) error {
	return nil
}

func (s *stubStore) Clear(ctx context.Context) error {
	s.conditions = nil
	s.hasCond = false
	return nil
}

func newTestService(wh Warehouse, store Store) *service {
	cfg := Config{CacheTTL: 5 * time.Minute, LatestWindowDays: 7, MaxHistoryDays: 365}
	svc := NewService(cfg, wh, store, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = func() time.Time { return time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func fp(v float64) *float64 { return &v }

func TestCurrentConditionsBuildsViewForEverySite(t *testing.T) {
	wh := &stubWarehouse{recent: map[string][]Observation{
		"Hanauma Bay": {
			{SiteName: "Hanauma Bay", Date: time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC), SST: fp(27.5), DHW: fp(5.2)},
		},
	}}
	svc := newTestService(wh, &stubStore{})

	views, err := svc.CurrentConditions(context.Background())
	require.NoError(t, err)
	require.Len(t, views, sites.Count())

	byID := make(map[string]SiteView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	hanauma := byID["hanauma-bay"]
	require.NotNil(t, hanauma.Conditions)
	require.Equal(t, risk.LevelModerate, hanauma.Risk.Level)
	require.NotNil(t, hanauma.LastUpdated)

	// Sites with no observations still get a view, at Unknown.
	waikiki := byID["waikiki-beach"]
	require.Nil(t, waikiki.Conditions)
	require.Equal(t, risk.LevelUnknown, waikiki.Risk.Level)
	require.Equal(t, -1, waikiki.Risk.Score)
}

func TestCurrentConditionsPrefersPreclassifiedLevel(t *testing.T) {
	// DHW alone would classify Low, but the warehouse row says High.
	wh := &stubWarehouse{recent: map[string][]Observation{
		"Hanauma Bay": {
			{SiteName: "Hanauma Bay", Date: time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC), SST: fp(27.0), DHW: fp(1.0), RiskLevel: risk.LevelHigh},
		},
	}}
	svc := newTestService(wh, &stubStore{})

	views, err := svc.CurrentConditions(context.Background())
	require.NoError(t, err)
	for _, v := range views {
		if v.ID == "hanauma-bay" {
			require.Equal(t, risk.LevelHigh, v.Risk.Level)
		}
	}
}

func TestCurrentConditionsServesCacheWithoutWarehouse(t *testing.T) {
	wh := &stubWarehouse{recent: map[string][]Observation{}}
	store := &stubStore{}
	svc := newTestService(wh, store)

	_, err := svc.CurrentConditions(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, wh.calls)

	_, err = svc.CurrentConditions(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, wh.calls, "second call must hit the cache")
	require.Equal(t, 1, store.saves)
}

func TestCurrentConditionsDegradesOnWarehouseFailure(t *testing.T) {
	wh := &stubWarehouse{recentErr: errors.New("connection refused")}
	store := &stubStore{}
	svc := newTestService(wh, store)

	views, err := svc.CurrentConditions(context.Background())
	require.NoError(t, err)
	require.Len(t, views, sites.Count())
	for _, v := range views {
		require.Equal(t, risk.LevelUnknown, v.Risk.Level)
	}
	require.Equal(t, 0, store.saves, "degraded views must not be cached")
}

func TestCurrentConditionsComputesTrend(t *testing.T) {
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
	window := []Observation{
		{Date: now.AddDate(0, 0, -6), SST: fp(26.0)},
		{Date: now.AddDate(0, 0, -5), SST: fp(26.1)},
		{Date: now.AddDate(0, 0, -4), SST: fp(26.0)},
		{Date: now.AddDate(0, 0, -2), SST: fp(27.0)},
		{Date: now.AddDate(0, 0, -1), SST: fp(27.2)},
	}
	wh := &stubWarehouse{recent: map[string][]Observation{"Hanauma Bay": window}}
	svc := newTestService(wh, &stubStore{})

	views, err := svc.CurrentConditions(context.Background())
	require.NoError(t, err)
	for _, v := range views {
		if v.ID == "hanauma-bay" {
			require.Equal(t, risk.TrendRising, v.Conditions.Trend)
		}
	}
}

func TestSiteHistoryUnknownSite(t *testing.T) {
	svc := newTestService(&stubWarehouse{}, &stubStore{})
	_, err := svc.SiteHistory(context.Background(), "atlantis", 30)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestSiteHistoryRejectsBadWindow(t *testing.T) {
	svc := newTestService(&stubWarehouse{}, &stubStore{})
	for _, days := range []int{0, -1, 366} {
		_, err := svc.SiteHistory(context.Background(), "hanauma-bay", days)
		require.True(t, apperrors.IsCode(err, "invalid_input"), "days=%d", days)
	}
}

func TestSiteHistoryDegradesToEmpty(t *testing.T) {
	wh := &stubWarehouse{historyErr: errors.New("timeout")}
	svc := newTestService(wh, &stubStore{})

	points, err := svc.SiteHistory(context.Background(), "hanauma-bay", 30)
	require.NoError(t, err)
	require.Empty(t, points)
}

func TestSiteStatisticsCapsCoverage(t *testing.T) {
	wh := &stubWarehouse{stats: SiteStatistics{AvgSST: 27.0, DataCoverage: 1.2}, statsFound: true}
	svc := newTestService(wh, &stubStore{})

	stats, err := svc.SiteStatistics(context.Background(), "hanauma-bay", 30)
	require.NoError(t, err)
	require.Equal(t, 1.0, stats.DataCoverage)
}

func TestSummaryAggregates(t *testing.T) {
	wh := &stubWarehouse{recent: map[string][]Observation{
		"Hanauma Bay": {{Date: time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC), SST: fp(28.0), DHW: fp(9.0)}},
		"Sharks Cove": {{Date: time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC), SST: fp(27.0), DHW: fp(3.0)}},
	}}
	svc := newTestService(wh, &stubStore{})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, sites.Count(), summary.TotalSites)
	require.Equal(t, 2, summary.SitesWithData)
	require.Equal(t, "2025-09-15", summary.Date)
	require.NotNil(t, summary.AverageSST)
	require.InDelta(t, 27.5, *summary.AverageSST, 0.001)
	require.NotNil(t, summary.MaxDHW)
	require.InDelta(t, 9.0, *summary.MaxDHW, 0.001)
	require.Equal(t, 1, summary.RiskDistribution.High)
	require.Equal(t, 1, summary.RiskDistribution.Low)
}
