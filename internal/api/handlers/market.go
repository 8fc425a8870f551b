package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"agri-market/internal/api/models"
	"agri-market/internal/data"
	"agri-market/internal/market"
	"agri-market/internal/metrics"
	"agri-market/internal/notify"
	"agri-market/internal/report"

	"github.com/gin-gonic/gin"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// MarketHandler serves the Market Data page.
type MarketHandler struct {
	store    *data.Store
	catalog  *market.Catalog
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewMarketHandler(store *data.Store, notifier notify.Notifier, m *metrics.Metrics, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{
		store:    store,
		catalog:  &market.Catalog{},
		notifier: notifier,
		metrics:  m,
		logger:   logger.With(slog.String("component", "api.market")),
	}
}

// List handles GET /api/v1/market
func (h *MarketHandler) List(c *gin.Context) {
	ds, q, ok := h.query(c)
	if !ok {
		return
	}
	criteria := q.Criteria()
	records := market.Filter(ds.Records, criteria)
	h.metrics.FilterResults.Observe(float64(len(records)))

	c.JSON(http.StatusOK, models.MarketResponse{
		Records:  records,
		Count:    len(records),
		Total:    len(ds.Records),
		Empty:    len(records) == 0,
		Criteria: criteria,
		Version:  ds.Version,
	})
}

// Cards handles GET /api/v1/market/cards
func (h *MarketHandler) Cards(c *gin.Context) {
	ds, q, ok := h.query(c)
	if !ok {
		return
	}
	criteria := q.Criteria()
	records := market.Filter(ds.Records, criteria)
	h.metrics.FilterResults.Observe(float64(len(records)))

	c.JSON(http.StatusOK, models.CardsResponse{
		Cards:    market.Cards(records),
		Count:    len(records),
		Empty:    len(records) == 0,
		Criteria: criteria,
	})
}

// Options handles GET /api/v1/market/options
func (h *MarketHandler) Options(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	opts, _ := h.catalog.Derived(ds.Version, ds.Records)
	c.JSON(http.StatusOK, models.OptionsResponse{
		Categories: models.OptionInfos("category", opts.Categories),
		Markets:    models.OptionInfos("market", opts.Markets),
	})
}

// Summary handles GET /api/v1/market/summary. Filter parameters are
// ignored on purpose: the panel describes the whole dataset.
func (h *MarketHandler) Summary(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	_, sum := h.catalog.Derived(ds.Version, ds.Records)
	c.JSON(http.StatusOK, models.SummaryResponse{
		Summary: sum,
		Total:   sum.Total(),
		Version: ds.Version,
	})
}

// Movers handles GET /api/v1/market/movers. limit defaults to 3.
func (h *MarketHandler) Movers(c *gin.Context) {
	ds, q, ok := h.query(c)
	if !ok {
		return
	}
	limit := 3
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.badRequest(c, fmt.Errorf("limit must be a non-negative integer, got %q", raw))
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, market.RankMovers(market.Filter(ds.Records, q.Criteria()), limit))
}

// Refresh handles POST /api/v1/market/refresh
func (h *MarketHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	event := notify.NewEvent(notify.KindRefreshRequested, "Refreshing market data", nil)
	h.emit(c, event)

	ds, err := h.store.Refresh(ctx)
	h.metrics.ObserveReload(recordCount(ds), err)
	if err != nil {
		var remoteErr *data.RemoteError
		if errors.As(err, &remoteErr) {
			status := http.StatusBadGateway
			switch remoteErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				status = http.StatusUnauthorized
			case http.StatusTooManyRequests:
				status = http.StatusTooManyRequests
			}
			c.JSON(status, models.NewError(remoteErr.Code, remoteErr.Message, map[string]interface{}{
				"status_code": remoteErr.StatusCode,
				"retry_after": remoteErr.RetryAfter,
				"event_id":    event.ID,
			}))
			return
		}
		c.JSON(http.StatusBadGateway, models.NewError("DATA_FETCH_ERROR", err.Error(),
			map[string]interface{}{"event_id": event.ID}))
		return
	}

	c.JSON(http.StatusAccepted, models.RefreshResponse{
		Status:   "accepted",
		EventID:  event.ID,
		Version:  ds.Version,
		Records:  len(ds.Records),
		LoadedAt: ds.LoadedAt,
	})
}

// Export handles GET /api/v1/market/export
func (h *MarketHandler) Export(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	var q models.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	if q.Format == "" {
		q.Format = "csv"
	}
	records := market.Filter(ds.Records, q.Criteria())

	var buf bytes.Buffer
	var contentType string
	var err error
	switch q.Format {
	case "xlsx":
		_, sum := h.catalog.Derived(ds.Version, ds.Records)
		err = report.WriteMarketXLSX(&buf, records, sum)
		contentType = contentTypeXLSX
	default:
		err = report.WriteMarketCSV(&buf, records)
		contentType = contentTypeCSV
	}
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "export failed",
			slog.String("format", q.Format),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, models.NewError("EXPORT_ERROR", err.Error(), nil))
		return
	}

	h.metrics.Exports.WithLabelValues(q.Format).Inc()
	h.emit(c, notify.NewEvent(notify.KindReportRequested, "Market report generated", map[string]any{
		"format":  q.Format,
		"records": len(records),
	}))

	filename := fmt.Sprintf("market-data-v%d.%s", ds.Version, q.Format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *MarketHandler) dataset(c *gin.Context) (*data.Dataset, bool) {
	ds, err := h.store.Current()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.NewError("DATA_NOT_LOADED", err.Error(), nil))
		return nil, false
	}
	return ds, true
}

func (h *MarketHandler) query(c *gin.Context) (*data.Dataset, models.MarketQuery, bool) {
	var q models.MarketQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return nil, q, false
	}
	ds, ok := h.dataset(c)
	return ds, q, ok
}

func (h *MarketHandler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error(), nil))
}

func (h *MarketHandler) emit(c *gin.Context, e notify.Event) {
	h.metrics.Notifications.WithLabelValues(string(e.Kind)).Inc()
	h.notifier.Notify(c.Request.Context(), e)
}

func recordCount(ds *data.Dataset) int {
	if ds == nil {
		return 0
	}
	return len(ds.Records)
}
