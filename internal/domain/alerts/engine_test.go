package alerts

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
)

type stubSource struct {
	alerts []Alert
	err    error
}

func (s *stubSource) ActiveAlerts(ctx context.Context) ([]Alert, error) {
	return s.alerts, s.err
}

type stubCache struct {
	alerts []Alert
	has    bool
	saves  int
}

func (c *stubCache) GetAlerts(ctx context.Context) ([]Alert, bool, error) {
	return c.alerts, c.has, nil
}

func (c *stubCache) SaveAlerts(ctx context.Context, alerts []Alert, ttl time.Duration) error {
	c.alerts = alerts
	c.has = true
	c.saves++
	return nil
}

type stubConditions struct {
	views []ocean.SiteView
	err   error
}

func (c *stubConditions) CurrentConditions(ctx context.Context) ([]ocean.SiteView, error) {
	return c.views, c.err
}

func viewAt(id string, level risk.Level) ocean.SiteView {
	site, _ := sites.ByID(id)
	return ocean.SiteView{Site: site, Risk: risk.FromLevel(level)}
}

func newTestEngine(src Source, cache Cache, cond ConditionsProvider) *service {
	svc := NewService(5*time.Minute, src, cache, cond, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = func() time.Time { return time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestActiveAlertsSynthesizesSevere(t *testing.T) {
	cond := &stubConditions{views: []ocean.SiteView{
		viewAt("hanauma-bay", risk.LevelSevere),
		viewAt("sharks-cove", risk.LevelHigh),
		viewAt("waikiki-beach", risk.LevelLow),
	}}
	svc := newTestEngine(&stubSource{}, &stubCache{}, cond)

	out, err := svc.ActiveAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "dynamic-severe-bleaching", out[0].ID)
	require.Equal(t, SeverityAlert, out[0].Severity)
	require.Equal(t, []string{"hanauma-bay"}, out[0].AffectedSites)
	require.True(t, out[0].IsActive)
}

func TestActiveAlertsSynthesizesHighOnlyWithoutSevere(t *testing.T) {
	cond := &stubConditions{views: []ocean.SiteView{
		viewAt("hanauma-bay", risk.LevelHigh),
		viewAt("sharks-cove", risk.LevelHigh),
	}}
	svc := newTestEngine(&stubSource{}, &stubCache{}, cond)

	out, err := svc.ActiveAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "dynamic-high-bleaching", out[0].ID)
	require.Equal(t, SeverityWarning, out[0].Severity)
	require.ElementsMatch(t, []string{"hanauma-bay", "sharks-cove"}, out[0].AffectedSites)
}

func TestActiveAlertsNoSyntheticWhenCalm(t *testing.T) {
	cond := &stubConditions{views: []ocean.SiteView{
		viewAt("hanauma-bay", risk.LevelLow),
		viewAt("sharks-cove", risk.LevelModerate),
		viewAt("waikiki-beach", risk.LevelUnknown),
	}}
	svc := newTestEngine(&stubSource{}, &stubCache{}, cond)

	out, err := svc.ActiveAlerts(context.Background())
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestActiveAlertsMergesStored(t *testing.T) {
	stored := Alert{ID: "stored-1", Type: TypeWeather, Severity: SeverityWatch, Title: "High surf advisory", IsActive: true}
	cond := &stubConditions{views: []ocean.SiteView{viewAt("hanauma-bay", risk.LevelSevere)}}
	svc := newTestEngine(&stubSource{alerts: []Alert{stored}}, &stubCache{}, cond)

	out, err := svc.ActiveAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "stored-1", out[0].ID)
	require.Equal(t, "dynamic-severe-bleaching", out[1].ID)
}

func TestActiveAlertsDegradesWhenSourceFails(t *testing.T) {
	cond := &stubConditions{views: []ocean.SiteView{viewAt("hanauma-bay", risk.LevelHigh)}}
	svc := newTestEngine(&stubSource{err: errors.New("query failed")}, &stubCache{}, cond)

	out, err := svc.ActiveAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1, "synthetic alerts still flow when storage is down")
}

func TestActiveAlertsServesCache(t *testing.T) {
	cache := &stubCache{}
	cond := &stubConditions{}
	svc := newTestEngine(&stubSource{}, cache, cond)

	_, err := svc.ActiveAlerts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, cache.saves)

	cond.err = errors.New("should not be called")
	out, err := svc.ActiveAlerts(context.Background())
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, 1, cache.saves)
}

func TestParseSeverityDegrades(t *testing.T) {
	require.Equal(t, SeverityAlert, ParseSeverity("ALERT"))
	require.Equal(t, SeverityWatch, ParseSeverity("catastrophic"))
	require.Equal(t, TypeBleaching, ParseType("volcano"))
}
