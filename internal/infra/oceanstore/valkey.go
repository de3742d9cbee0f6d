package oceanstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/rprovine/reefwatch/internal/domain/alerts"
	"github.com/rprovine/reefwatch/internal/domain/ocean"
)

// ValkeyStore keeps derived views in a Valkey-compatible database so
// multiple replicas share one cache. SET with EX publishes each value
// atomically.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

var (
	_ ocean.Store  = (*ValkeyStore)(nil)
	_ alerts.Cache = (*ValkeyStore)(nil)
)

// NewValkeyStore constructs the shared cache.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "reef"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) GetConditions(ctx context.Context) ([]ocean.SiteView, bool, error) {
	var views []ocean.SiteView
	ok, err := s.getJSON(ctx, s.key(conditionsKey), &views)
	return views, ok, err
}

func (s *ValkeyStore) SaveConditions(ctx context.Context, views []ocean.SiteView, ttl time.Duration) error {
	return s.setJSON(ctx, s.key(conditionsKey), views, ttl)
}

func (s *ValkeyStore) GetHistory(ctx context.Context, siteID string, days int) ([]ocean.HistoricalPoint, bool, error) {
	var points []ocean.HistoricalPoint
	ok, err := s.getJSON(ctx, s.key(historyKey(siteID, days)), &points)
	return points, ok, err
}

func (s *ValkeyStore) SaveHistory(ctx context.Context, siteID string, days int, points []ocean.HistoricalPoint, ttl time.Duration) error {
	return s.setJSON(ctx, s.key(historyKey(siteID, days)), points, ttl)
}

func (s *ValkeyStore) GetStatistics(ctx context.Context, siteID string, days int) (ocean.SiteStatistics, bool, error) {
	var stats ocean.SiteStatistics
	ok, err := s.getJSON(ctx, s.key(statsKey(siteID, days)), &stats)
	return stats, ok, err
}

func (s *ValkeyStore) SaveStatistics(ctx context.Context, siteID string, days int, stats ocean.SiteStatistics, ttl time.Duration) error {
	return s.setJSON(ctx, s.key(statsKey(siteID, days)), stats, ttl)
}

func (s *ValkeyStore) GetAlerts(ctx context.Context) ([]alerts.Alert, bool, error) {
	var list []alerts.Alert
	ok, err := s.getJSON(ctx, s.key(alertsKey), &list)
	return list, ok, err
}

func (s *ValkeyStore) SaveAlerts(ctx context.Context, list []alerts.Alert, ttl time.Duration) error {
	return s.setJSON(ctx, s.key(alertsKey), list, ttl)
}

// Clear removes every key under the cache prefix using cursor scans.
func (s *ValkeyStore) Clear(ctx context.Context) error {
	var cursor uint64
	pattern := s.prefix + ":*"
	for {
		resp := s.client.Do(ctx, s.client.B().Scan().Cursor(cursor).Match(pattern).Count(100).Build())
		scan, err := resp.AsScanEntry()
		if err != nil {
			return err
		}
		if len(scan.Elements) > 0 {
			if err := s.client.Do(ctx, s.client.B().Del().Key(scan.Elements...).Build()).Error(); err != nil {
				return err
			}
		}
		cursor = scan.Cursor
		if cursor == 0 {
			return nil
		}
	}
}

func (s *ValkeyStore) getJSON(ctx context.Context, key string, out any) (bool, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(key).Build())
	payload, err := resp.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ValkeyStore) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(key).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key(suffix string) string {
	return fmt.Sprintf("%s:%s", s.prefix, suffix)
}
