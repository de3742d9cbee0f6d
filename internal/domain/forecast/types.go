package forecast

import (
	"time"

	"github.com/rprovine/reefwatch/internal/domain/risk"
)

// Point is one projected day for a site.
type Point struct {
	Date          time.Time  `json:"date"`
	PredictedSST  float64    `json:"predictedSst"`
	PredictedDHW  float64    `json:"predictedDhw"`
	PredictedRisk risk.Level `json:"predictedRisk"`
	Confidence    float64    `json:"confidence"`
}

// SiteForecast is the projection for a single site.
type SiteForecast struct {
	SiteID      string    `json:"siteId"`
	SiteName    string    `json:"siteName"`
	Forecast    []Point   `json:"forecast"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Recommendation ranks a site for a target date, best conditions first.
type Recommendation struct {
	SiteID        string     `json:"siteId"`
	SiteName      string     `json:"siteName"`
	PredictedSST  float64    `json:"predictedSst"`
	PredictedDHW  float64    `json:"predictedDhw"`
	PredictedRisk risk.Level `json:"predictedRisk"`
	Confidence    float64    `json:"confidence"`
}
