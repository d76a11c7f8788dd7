package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linsamsir/pro-erp/internal/domain/models"
	"github.com/linsamsir/pro-erp/internal/service/audit"
)

// ListAssets returns all active assets.
func (h *Handler) ListAssets(c *gin.Context) {
	assets, err := h.store.ListAssets(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing assets", zap.Error(err))
		internalError(c, "failed to load assets")
		return
	}
	c.JSON(http.StatusOK, assets)
}

// CreateAsset stores a new depreciable asset.
func (h *Handler) CreateAsset(c *gin.Context) {
	var asset models.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		badRequest(c, "invalid asset payload")
		return
	}
	if asset.Name == "" || asset.LifespanMonths <= 0 {
		badRequest(c, "name and a positive lifespan_months are required")
		return
	}
	asset.ID = ""

	if err := h.store.SaveAsset(c.Request.Context(), &asset); err != nil {
		h.logger.Error("failed saving asset", zap.Error(err))
		internalError(c, "failed to save asset")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "assets",
		Action:  models.AuditCreate,
		Target:  models.AuditTarget{Type: "asset", ID: asset.ID, Name: asset.Name},
		Summary: fmt.Sprintf("Added asset %s costing %.2f", asset.Name, asset.Cost),
		After:   asset,
	})

	c.JSON(http.StatusCreated, asset)
}

// UpdateAsset replaces an existing asset. Cost and lifespan changes only
// ever happen here, by explicit operator edit; the engine never rewrites them.
func (h *Handler) UpdateAsset(c *gin.Context) {
	id := c.Param("id")
	before, err := h.store.GetAsset(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading asset", zap.Error(err))
		internalError(c, "failed to load asset")
		return
	}
	if before == nil {
		notFound(c, "asset not found")
		return
	}

	var asset models.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		badRequest(c, "invalid asset payload")
		return
	}
	asset.ID = id
	asset.CreatedAt = before.CreatedAt

	if err := h.store.SaveAsset(c.Request.Context(), &asset); err != nil {
		h.logger.Error("failed saving asset", zap.Error(err))
		internalError(c, "failed to save asset")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "assets",
		Action:  models.AuditUpdate,
		Target:  models.AuditTarget{Type: "asset", ID: id, Name: asset.Name},
		Summary: fmt.Sprintf("Updated asset %s", asset.Name),
		Before:  *before,
		After:   asset,
	})

	c.JSON(http.StatusOK, asset)
}

// DeleteAsset soft-deletes an asset.
func (h *Handler) DeleteAsset(c *gin.Context) {
	id := c.Param("id")
	before, err := h.store.GetAsset(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading asset", zap.Error(err))
		internalError(c, "failed to load asset")
		return
	}
	if before == nil {
		notFound(c, "asset not found")
		return
	}

	if err := h.store.DeleteAsset(c.Request.Context(), id); err != nil {
		h.logger.Error("failed deleting asset", zap.Error(err))
		internalError(c, "failed to delete asset")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "assets",
		Action:  models.AuditDelete,
		Target:  models.AuditTarget{Type: "asset", ID: id, Name: before.Name},
		Summary: fmt.Sprintf("Deleted asset %s", before.Name),
		Before:  *before,
	})

	c.Status(http.StatusNoContent)
}
