package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "uangsaku/internal/errors"
	"uangsaku/internal/services"
)

// AnalyticsHandler serves the derived read-only aggregates.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetSummary handles the income/expense/balance summary.
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.analyticsService.Summarize()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetDailyCashflow handles the daily net cash-flow series. The window
// defaults to 7 days.
func (h *AnalyticsHandler) GetDailyCashflow(c *gin.Context) {
	days, err := parseWindow(c, "days", 7)
	if err != nil {
		respondWithError(c, err)
		return
	}

	points, err := h.analyticsService.DailyCashflow(days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cashflow": points})
}

// GetMonthlyComparison handles the month-bucketed income/expense series.
// The window defaults to 4 months.
func (h *AnalyticsHandler) GetMonthlyComparison(c *gin.Context) {
	months, err := parseWindow(c, "months", 4)
	if err != nil {
		respondWithError(c, err)
		return
	}

	points, err := h.analyticsService.MonthlyComparison(months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"monthly": points})
}

// GetCategoryTotals handles this month's expense totals per category.
func (h *AnalyticsHandler) GetCategoryTotals(c *gin.Context) {
	totals, err := h.analyticsService.CategoryTotalsCurrentMonth()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

// parseWindow reads a positive integer query parameter with a default.
func parseWindow(c *gin.Context, param string, fallback int) (int, error) {
	raw := c.Query(param)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return n, nil
}
