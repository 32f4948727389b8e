// backend-go/internal/api/handlers/forecast_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pharmatrack/backend-go/internal/domain"
	"github.com/pharmatrack/backend-go/internal/service"
)

const (
	maxHorizonMonths = 6
	maxTopN          = 200
)

type ForecastHandler struct {
	service     *service.ForecastService
	defaultTopN int
}

func NewForecastHandler(svc *service.ForecastService, defaultTopN int) *ForecastHandler {
	if defaultTopN <= 0 {
		defaultTopN = 50
	}
	return &ForecastHandler{service: svc, defaultTopN: defaultTopN}
}

// GetTopProducts returns the best-selling products by total history.
func (h *ForecastHandler) GetTopProducts(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", strconv.Itoa(h.defaultTopN)))
	if n <= 0 {
		n = h.defaultTopN
	}
	if n > maxTopN {
		n = maxTopN
	}

	c.JSON(http.StatusOK, gin.H{"products": h.service.TopProducts(c.Request.Context(), n)})
}

// GetForecast predicts demand for a single product.
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	productName := strings.TrimSpace(c.Param("product"))
	if productName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product name is required"})
		return
	}

	months := h.parseMonths(c)

	forecast, err := h.service.Forecast(c.Request.Context(), productName, months)
	if err != nil {
		if domain.IsInsufficientData(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "product": productName})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate forecast", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, forecast)
}

// GetReport generates the classified demand forecast report for the
// top-selling products.
func (h *ForecastHandler) GetReport(c *gin.Context) {
	params := domain.ReportParams{
		TopN:        h.defaultTopN,
		MonthsAhead: h.parseMonths(c),
	}

	if n, err := strconv.Atoi(c.DefaultQuery("top_n", strconv.Itoa(h.defaultTopN))); err == nil && n > 0 {
		params.TopN = n
	}
	if params.TopN > maxTopN {
		params.TopN = maxTopN
	}

	view := strings.TrimSpace(c.DefaultQuery("view", "cumulative"))
	if strings.EqualFold(view, "cumulative") {
		params.View = domain.ReportView{Cumulative: true}
	} else {
		month, err := time.Parse("2006-01", view)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "view must be 'cumulative' or a month in YYYY-MM format"})
			return
		}
		params.View = domain.ReportView{Month: month}
	}

	rows, err := h.service.BuildReport(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":  rows,
		"total": len(rows),
	})
}

// InvalidateReport drops the cached reports so subsequent requests are
// regenerated from current history, e.g. after a stock correction.
func (h *ForecastHandler) InvalidateReport(c *gin.Context) {
	if err := h.service.InvalidateReportCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to invalidate report cache", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}

func (h *ForecastHandler) parseMonths(c *gin.Context) int {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "1"))
	if months <= 0 {
		months = 1
	}
	if months > maxHorizonMonths {
		months = maxHorizonMonths
	}
	return months
}
