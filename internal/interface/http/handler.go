package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rprovine/reefwatch/internal/domain/alerts"
	"github.com/rprovine/reefwatch/internal/domain/forecast"
	"github.com/rprovine/reefwatch/internal/domain/ocean"
	"github.com/rprovine/reefwatch/internal/domain/sites"
	"github.com/rprovine/reefwatch/internal/infra/config"
	apperrors "github.com/rprovine/reefwatch/pkg/errors"
)

const apiVersion = "1.0.0"

// Handler wires the read-side HTTP transport to domain services.
type Handler struct {
	cfg         *config.Config
	oceanSvc    ocean.Service
	alertsSvc   alerts.Service
	forecastSvc forecast.Service
	logger      *slog.Logger
	now         func() time.Time
}

// NewHandler constructs the root HTTP handler.
func NewHandler(cfg *config.Config, oceanSvc ocean.Service, alertsSvc alerts.Service, forecastSvc forecast.Service, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:         cfg,
		oceanSvc:    oceanSvc,
		alertsSvc:   alertsSvc,
		forecastSvc: forecastSvc,
		logger:      logger.With("component", "http.handler"),
		now:         time.Now,
	}
}

// Health reports service and dependency status for load balancers.
func (h *Handler) Health(c *gin.Context) {
	checks := gin.H{"api": "healthy", "warehouse": "unknown"}

	views, err := h.oceanSvc.CurrentConditions(c.Request.Context())
	switch {
	case err != nil:
		checks["warehouse"] = "unhealthy"
	case hasLiveData(views):
		checks["warehouse"] = "healthy"
	default:
		checks["warehouse"] = "degraded"
	}

	status := "healthy"
	if checks["warehouse"] != "healthy" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"version":   apiVersion,
		"timestamp": h.now().UTC(),
		"checks":    checks,
	})
}

func hasLiveData(views []ocean.SiteView) bool {
	for _, v := range views {
		if v.Conditions != nil {
			return true
		}
	}
	return false
}

// Sites lists catalog sites with optional type and difficulty filters.
// Unrecognized filter values match nothing rather than erroring.
func (h *Handler) Sites(c *gin.Context) {
	siteType := sites.ParseType(c.Query("type"))
	if c.Query("type") != "" && siteType == "" {
		c.JSON(http.StatusOK, gin.H{"sites": []sites.Site{}, "count": 0})
		return
	}
	difficulty := sites.ParseDifficulty(c.Query("difficulty"))
	if c.Query("difficulty") != "" && difficulty == "" {
		c.JSON(http.StatusOK, gin.H{"sites": []sites.Site{}, "count": 0})
		return
	}

	filtered := sites.Filter(siteType, difficulty)
	c.JSON(http.StatusOK, gin.H{"sites": filtered, "count": len(filtered)})
}

// Site returns metadata for one site.
func (h *Handler) Site(c *gin.Context) {
	site, ok := sites.ByID(c.Param("site_id"))
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "site not found: "+c.Param("site_id"), nil))
		return
	}
	c.JSON(http.StatusOK, site)
}

// SiteHistory returns a site's daily history plus aggregate statistics.
func (h *Handler) SiteHistory(c *gin.Context) {
	siteID := c.Param("site_id")
	site, ok := sites.ByID(siteID)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "site not found: "+siteID, nil))
		return
	}

	days, err := h.daysParam(c, h.cfg.Ocean.DefaultHistoryDays, h.cfg.Ocean.MaxHistoryDays)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}

	history, err := h.oceanSvc.SiteHistory(c.Request.Context(), siteID, days)
	if err != nil {
		h.abortDomainError(c, err, "history_failed")
		return
	}
	stats, err := h.oceanSvc.SiteStatistics(c.Request.Context(), siteID, days)
	if err != nil {
		h.abortDomainError(c, err, "history_failed")
		return
	}

	periodStart, periodEnd := h.now().UTC(), h.now().UTC()
	if len(history) > 0 {
		periodStart = history[0].Date
		periodEnd = history[len(history)-1].Date
	}

	c.JSON(http.StatusOK, gin.H{
		"site_id":      siteID,
		"site_name":    site.Name,
		"data":         history,
		"period_start": periodStart.Format("2006-01-02"),
		"period_end":   periodEnd.Format("2006-01-02"),
		"statistics":   stats,
	})
}

// CurrentConditions returns the freshest view for every site.
func (h *Handler) CurrentConditions(c *gin.Context) {
	views, err := h.oceanSvc.CurrentConditions(c.Request.Context())
	if err != nil {
		h.abortDomainError(c, err, "conditions_failed")
		return
	}

	var dataDate time.Time
	for _, v := range views {
		if v.LastUpdated != nil && v.LastUpdated.After(dataDate) {
			dataDate = *v.LastUpdated
		}
	}
	if dataDate.IsZero() {
		dataDate = h.now().UTC()
	}

	c.JSON(http.StatusOK, gin.H{
		"sites":      views,
		"data_date":  dataDate.Format("2006-01-02"),
		"updated_at": h.now().UTC(),
	})
}

// Alerts returns stored plus synthesized active alerts.
func (h *Handler) Alerts(c *gin.Context) {
	active, err := h.alertsSvc.ActiveAlerts(c.Request.Context())
	if err != nil {
		h.abortDomainError(c, err, "alerts_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": active, "count": len(active)})
}

// Forecast returns projections for every site.
func (h *Handler) Forecast(c *gin.Context) {
	days, err := h.daysParam(c, h.cfg.Forecast.MaxDays, h.cfg.Forecast.MaxDays)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}

	forecasts, err := h.forecastSvc.All(c.Request.Context(), days)
	if err != nil {
		h.abortDomainError(c, err, "forecast_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecasts": forecasts, "generated_at": h.now().UTC()})
}

// SiteForecast returns the projection for one site.
func (h *Handler) SiteForecast(c *gin.Context) {
	days, err := h.daysParam(c, h.cfg.Forecast.MaxDays, h.cfg.Forecast.MaxDays)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}

	fc, err := h.forecastSvc.Site(c.Request.Context(), c.Param("site_id"), days)
	if err != nil {
		h.abortDomainError(c, err, "forecast_failed")
		return
	}
	c.JSON(http.StatusOK, fc)
}

// Recommendations ranks sites for a target date.
func (h *Handler) Recommendations(c *gin.Context) {
	raw := c.Query("target_date")
	target, err := time.Parse("2006-01-02", raw)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "target_date must be YYYY-MM-DD", err))
		return
	}

	now := h.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysAhead := int(target.Sub(today).Hours() / 24)
	if daysAhead < 1 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "date must be in the future", nil))
		return
	}
	if daysAhead > h.cfg.Forecast.MaxDays {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "cannot recommend beyond the forecast horizon", nil))
		return
	}

	recs, err := h.forecastSvc.BestSites(c.Request.Context(), target)
	if err != nil {
		h.abortDomainError(c, err, "forecast_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"target_date":     raw,
		"recommendations": recs,
	})
}

// AdminRefresh drops cached views so the next request refetches.
func (h *Handler) AdminRefresh(c *gin.Context) {
	h.oceanSvc.ClearCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"message":         "Cache cleared. Data will refresh on next request.",
		"records_updated": 0,
		"timestamp":       h.now().UTC(),
	})
}

// AdminStats exposes the data summary and cache settings.
func (h *Handler) AdminStats(c *gin.Context) {
	summary, err := h.oceanSvc.Summary(c.Request.Context())
	if err != nil {
		h.abortDomainError(c, err, "stats_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data_summary": summary,
		"cache_info": gin.H{
			"max_size":    h.cfg.Ocean.CacheMaxEntries,
			"ttl_seconds": int(h.cfg.Ocean.CacheTTL.Seconds()),
		},
	})
}

func (h *Handler) daysParam(c *gin.Context, def, max int) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return def, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Wrap("invalid_input", "days must be an integer", err)
	}
	if days < 1 || days > max {
		return 0, apperrors.Wrap("invalid_input", "days out of range", nil)
	}
	return days, nil
}

func (h *Handler) abortDomainError(c *gin.Context, err error, code string) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsCode(err, "not_found"):
		status = http.StatusNotFound
		code = "not_found"
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	}
	abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
