package alerts

import (
	"context"
	"strings"
	"time"
)

// Type categorizes an alert.
type Type string

const (
	TypeBleaching    Type = "bleaching"
	TypeWeather      Type = "weather"
	TypeWaterQuality Type = "water_quality"
)

// Severity orders alerts from advisory to urgent.
type Severity string

const (
	SeverityWatch   Severity = "watch"
	SeverityWarning Severity = "warning"
	SeverityAlert   Severity = "alert"
)

// ParseType degrades unrecognized input to the bleaching type, the most
// common stored kind, rather than failing the whole alert feed.
func ParseType(v string) Type {
	switch Type(strings.ToLower(strings.TrimSpace(v))) {
	case TypeBleaching, TypeWeather, TypeWaterQuality:
		return Type(strings.ToLower(strings.TrimSpace(v)))
	default:
		return TypeBleaching
	}
}

// ParseSeverity degrades unrecognized input to watch.
func ParseSeverity(v string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(v))) {
	case SeverityWatch, SeverityWarning, SeverityAlert:
		return Severity(strings.ToLower(strings.TrimSpace(v)))
	default:
		return SeverityWatch
	}
}

// Alert is an active advisory, either stored upstream or synthesized from
// current conditions.
type Alert struct {
	ID            string     `json:"id"`
	Type          Type       `json:"type"`
	Severity      Severity   `json:"severity"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	AffectedSites []string   `json:"affectedSites"`
	CreatedAt     time.Time  `json:"createdAt"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	IsActive      bool       `json:"isActive"`
}

// Source reads stored alerts from the warehouse.
type Source interface {
	// ActiveAlerts returns unexpired active rows, newest first.
	ActiveAlerts(ctx context.Context) ([]Alert, error)
}

// Cache persists the derived alert list between refreshes.
type Cache interface {
	GetAlerts(ctx context.Context) ([]Alert, bool, error)
	SaveAlerts(ctx context.Context, alerts []Alert, ttl time.Duration) error
}
