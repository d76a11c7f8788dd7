package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linsamsir/pro-erp/internal/domain/models"
	"github.com/linsamsir/pro-erp/internal/service/audit"
)

// ListJobs returns all active work orders.
func (h *Handler) ListJobs(c *gin.Context) {
	jobs, err := h.store.ListJobs(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing jobs", zap.Error(err))
		internalError(c, "failed to load jobs")
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJob returns one job by id.
func (h *Handler) GetJob(c *gin.Context) {
	job, err := h.store.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed loading job", zap.Error(err))
		internalError(c, "failed to load job")
		return
	}
	if job == nil {
		notFound(c, "job not found")
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob stores a new work order, estimating travel time when the
// operator did not provide an override.
func (h *Handler) CreateJob(c *gin.Context) {
	var job models.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		badRequest(c, "invalid job payload")
		return
	}
	if job.CustomerID == "" || job.ServiceDate == "" {
		badRequest(c, "customer_id and service_date are required")
		return
	}
	job.ID = ""

	h.fillTravelEstimate(c, &job)

	if err := h.store.SaveJob(c.Request.Context(), &job); err != nil {
		h.logger.Error("failed saving job", zap.Error(err))
		internalError(c, "failed to save job")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "jobs",
		Action:  models.AuditCreate,
		Target:  models.AuditTarget{Type: "job", ID: job.ID},
		Summary: fmt.Sprintf("Added job on %s", job.ServiceDate),
		After:   job,
	})

	c.JSON(http.StatusCreated, job)
}

// UpdateJob replaces an existing work order.
func (h *Handler) UpdateJob(c *gin.Context) {
	id := c.Param("id")
	before, err := h.store.GetJob(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading job", zap.Error(err))
		internalError(c, "failed to load job")
		return
	}
	if before == nil {
		notFound(c, "job not found")
		return
	}

	var job models.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		badRequest(c, "invalid job payload")
		return
	}
	job.ID = id
	job.CreatedAt = before.CreatedAt

	if job.TravelMinutesOverride == nil && job.TravelMinutesCalculated == 0 {
		job.TravelMinutesCalculated = before.TravelMinutesCalculated
	}

	if err := h.store.SaveJob(c.Request.Context(), &job); err != nil {
		h.logger.Error("failed saving job", zap.Error(err))
		internalError(c, "failed to save job")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "jobs",
		Action:  models.AuditUpdate,
		Target:  models.AuditTarget{Type: "job", ID: id},
		Summary: fmt.Sprintf("Updated job on %s", job.ServiceDate),
		Before:  *before,
		After:   job,
	})

	c.JSON(http.StatusOK, job)
}

// DeleteJob soft-deletes a work order.
func (h *Handler) DeleteJob(c *gin.Context) {
	id := c.Param("id")
	before, err := h.store.GetJob(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading job", zap.Error(err))
		internalError(c, "failed to load job")
		return
	}
	if before == nil {
		notFound(c, "job not found")
		return
	}

	if err := h.store.DeleteJob(c.Request.Context(), id); err != nil {
		h.logger.Error("failed deleting job", zap.Error(err))
		internalError(c, "failed to delete job")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "jobs",
		Action:  models.AuditDelete,
		Target:  models.AuditTarget{Type: "job", ID: id},
		Summary: fmt.Sprintf("Deleted job on %s", before.ServiceDate),
		Before:  *before,
	})

	c.Status(http.StatusNoContent)
}

// fillTravelEstimate asks the routing API for a depot-to-customer travel
// time when no override or prior estimate exists. Estimation failures are
// logged and ignored; the job still saves.
func (h *Handler) fillTravelEstimate(c *gin.Context, job *models.Job) {
	if h.routes == nil || job.TravelMinutesOverride != nil || job.TravelMinutesCalculated != 0 {
		return
	}

	customer, err := h.store.GetCustomer(c.Request.Context(), job.CustomerID)
	if err != nil || customer == nil || customer.Location == nil || customer.Location.IsZero() {
		return
	}

	minutes, err := h.routes.EstimateTravelMinutes(c.Request.Context(), h.depot, *customer.Location)
	if err != nil {
		h.logger.Warn("travel estimation failed",
			zap.String("customer_id", job.CustomerID),
			zap.Error(err))
		return
	}
	job.TravelMinutesCalculated = minutes
}
