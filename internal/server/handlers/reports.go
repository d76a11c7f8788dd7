package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linsamsir/pro-erp/internal/service/reporting"
)

// MonthlyReport computes the P&L summary for the requested month.
func (h *Handler) MonthlyReport(c *gin.Context) {
	year, month, ok := parsePeriodQuery(c)
	if !ok {
		return
	}

	report, err := h.reports.GenerateMonthly(c.Request.Context(), year, month)
	if err != nil {
		h.logger.Error("failed generating monthly report", zap.Error(err))
		internalError(c, "failed to generate report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// JobAnalysis computes the profitability breakdown of one job for the
// requested month (defaulting to the job's own service month would force
// date parsing, so the period is explicit).
func (h *Handler) JobAnalysis(c *gin.Context) {
	year, month, ok := parsePeriodQuery(c)
	if !ok {
		return
	}

	result, err := h.reports.AnalyzeJob(c.Request.Context(), c.Param("id"), year, month)
	if err != nil {
		if errors.Is(err, reporting.ErrJobNotFound) {
			notFound(c, "job not found")
			return
		}
		h.logger.Error("failed analyzing job", zap.Error(err))
		internalError(c, "failed to analyze job")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListAudit returns the most recent audit entries, newest first.
func (h *Handler) ListAudit(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.store.ListAuditEntries(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed listing audit entries", zap.Error(err))
		internalError(c, "failed to load audit log")
		return
	}

	c.JSON(http.StatusOK, entries)
}

func parsePeriodQuery(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		badRequest(c, "year must be a positive integer")
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		badRequest(c, "month must be between 1 and 12")
		return 0, 0, false
	}
	return year, time.Month(month), true
}
