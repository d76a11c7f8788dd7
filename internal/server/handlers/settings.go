package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linsamsir/pro-erp/internal/domain/models"
	"github.com/linsamsir/pro-erp/internal/service/audit"
)

// GetSettings returns the settings singleton (zero-valued when unset).
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.store.GetSettings(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading settings", zap.Error(err))
		internalError(c, "failed to load settings")
		return
	}
	if settings == nil {
		settings = &models.Settings{}
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings replaces the settings singleton.
func (h *Handler) UpdateSettings(c *gin.Context) {
	before, err := h.store.GetSettings(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading settings", zap.Error(err))
		internalError(c, "failed to load settings")
		return
	}

	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		badRequest(c, "invalid settings payload")
		return
	}

	if err := h.store.SaveSettings(c.Request.Context(), &settings); err != nil {
		h.logger.Error("failed saving settings", zap.Error(err))
		internalError(c, "failed to save settings")
		return
	}

	entry := audit.Entry{
		Module:  "settings",
		Action:  models.AuditUpdate,
		Target:  models.AuditTarget{Type: "settings", ID: settings.ID},
		Summary: "Updated labor settings",
		After:   settings,
	}
	if before != nil {
		entry.Before = *before
	}
	h.recorder.Record(c.Request.Context(), actorFrom(c), entry)

	c.JSON(http.StatusOK, settings)
}
