package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linsamsir/pro-erp/internal/domain/models"
	"github.com/linsamsir/pro-erp/internal/service/audit"
)

// ListStockLogs returns the full inventory-purchase history.
func (h *Handler) ListStockLogs(c *gin.Context) {
	logs, err := h.store.ListStockLogs(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing stock logs", zap.Error(err))
		internalError(c, "failed to load stock logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// CreateStockLog records a new inventory purchase.
func (h *Handler) CreateStockLog(c *gin.Context) {
	var log models.StockLog
	if err := c.ShouldBindJSON(&log); err != nil {
		badRequest(c, "invalid stock log payload")
		return
	}
	if log.Type != models.ConsumableCitricAcid && log.Type != models.ConsumableChemical {
		badRequest(c, "type must be citric_acid or chemical")
		return
	}
	log.ID = ""

	if err := h.store.SaveStockLog(c.Request.Context(), &log); err != nil {
		h.logger.Error("failed saving stock log", zap.Error(err))
		internalError(c, "failed to save stock log")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "stock",
		Action:  models.AuditCreate,
		Target:  models.AuditTarget{Type: "stock_log", ID: log.ID, Name: string(log.Type)},
		Summary: fmt.Sprintf("Purchased %.1f units of %s for %.2f", log.Quantity, log.Type, log.TotalCost),
		After:   log,
	})

	c.JSON(http.StatusCreated, log)
}

// UpdateStockLog replaces an existing purchase record. Stock history is
// otherwise immutable; this exists for explicit corrections only.
func (h *Handler) UpdateStockLog(c *gin.Context) {
	id := c.Param("id")
	before, err := h.store.GetStockLog(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading stock log", zap.Error(err))
		internalError(c, "failed to load stock log")
		return
	}
	if before == nil {
		notFound(c, "stock log not found")
		return
	}

	var log models.StockLog
	if err := c.ShouldBindJSON(&log); err != nil {
		badRequest(c, "invalid stock log payload")
		return
	}
	log.ID = id
	log.CreatedAt = before.CreatedAt

	if err := h.store.SaveStockLog(c.Request.Context(), &log); err != nil {
		h.logger.Error("failed saving stock log", zap.Error(err))
		internalError(c, "failed to save stock log")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "stock",
		Action:  models.AuditUpdate,
		Target:  models.AuditTarget{Type: "stock_log", ID: id, Name: string(log.Type)},
		Summary: fmt.Sprintf("Corrected stock purchase of %s", log.Type),
		Before:  *before,
		After:   log,
	})

	c.JSON(http.StatusOK, log)
}

// DeleteStockLog soft-deletes a purchase record.
func (h *Handler) DeleteStockLog(c *gin.Context) {
	id := c.Param("id")
	before, err := h.store.GetStockLog(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading stock log", zap.Error(err))
		internalError(c, "failed to load stock log")
		return
	}
	if before == nil {
		notFound(c, "stock log not found")
		return
	}

	if err := h.store.DeleteStockLog(c.Request.Context(), id); err != nil {
		h.logger.Error("failed deleting stock log", zap.Error(err))
		internalError(c, "failed to delete stock log")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "stock",
		Action:  models.AuditDelete,
		Target:  models.AuditTarget{Type: "stock_log", ID: id, Name: string(before.Type)},
		Summary: fmt.Sprintf("Deleted stock purchase of %s", before.Type),
		Before:  *before,
	})

	c.Status(http.StatusNoContent)
}
