package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"agri-market/internal/api/models"
	"agri-market/internal/demographics"
	"agri-market/internal/metrics"
	"agri-market/internal/notify"

	"github.com/gin-gonic/gin"
)

// DemographicsHandler serves the Demographics page.
type DemographicsHandler struct {
	page     *demographics.Page
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewDemographicsHandler(page *demographics.Page, notifier notify.Notifier, m *metrics.Metrics, logger *slog.Logger) *DemographicsHandler {
	return &DemographicsHandler{
		page:     page,
		notifier: notifier,
		metrics:  m,
		logger:   logger.With(slog.String("component", "api.demographics")),
	}
}

// Get handles GET /api/v1/demographics
func (h *DemographicsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.page.Payload())
}

// Select handles PUT /api/v1/demographics/selection
func (h *DemographicsHandler) Select(c *gin.Context) {
	var req models.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error(), nil))
		return
	}

	view, err := h.page.Select(c.Request.Context(), demographics.Selection{
		Region:    req.Region,
		Crop:      req.Crop,
		Timeframe: req.Timeframe,
	})
	if err != nil {
		status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
		if errors.Is(err, demographics.ErrInvalidSelection) {
			status, code = http.StatusUnprocessableEntity, "INVALID_SELECTION"
		}
		c.JSON(status, models.NewError(code, err.Error(), map[string]interface{}{
			"options": demographics.Options(),
		}))
		return
	}
	h.metrics.SelectionChange.Inc()
	c.JSON(http.StatusOK, models.SelectionResponse{View: view})
}

// Report handles POST /api/v1/demographics/report. The body is optional.
func (h *DemographicsHandler) Report(c *gin.Context) {
	var req models.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error(), nil))
		return
	}

	view := h.page.View()
	data := map[string]any{
		"region":    view.Selection.Region,
		"crop":      view.Selection.Crop,
		"timeframe": view.Selection.Timeframe,
	}
	if req.Note != "" {
		data["note"] = req.Note
	}
	event := notify.NewEvent(notify.KindReportRequested, "Generating demographics report", data)
	h.metrics.Notifications.WithLabelValues(string(event.Kind)).Inc()
	h.notifier.Notify(c.Request.Context(), event)

	c.JSON(http.StatusAccepted, models.AcceptedResponse{Status: "accepted", EventID: event.ID})
}
