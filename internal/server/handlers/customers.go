package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linsamsir/pro-erp/internal/domain/models"
	"github.com/linsamsir/pro-erp/internal/service/audit"
)

// ListCustomers returns the active customer roster.
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.store.ListCustomers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing customers", zap.Error(err))
		internalError(c, "failed to load customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer returns one customer by id.
func (h *Handler) GetCustomer(c *gin.Context) {
	customer, err := h.store.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed loading customer", zap.Error(err))
		internalError(c, "failed to load customer")
		return
	}
	if customer == nil {
		notFound(c, "customer not found")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// CreateCustomer stores a new customer.
func (h *Handler) CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		badRequest(c, "invalid customer payload")
		return
	}
	if customer.Name == "" {
		badRequest(c, "customer name is required")
		return
	}
	customer.ID = ""

	if err := h.store.SaveCustomer(c.Request.Context(), &customer); err != nil {
		h.logger.Error("failed saving customer", zap.Error(err))
		internalError(c, "failed to save customer")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "customers",
		Action:  models.AuditCreate,
		Target:  models.AuditTarget{Type: "customer", ID: customer.ID, Name: customer.Name},
		Summary: fmt.Sprintf("Added customer %s", customer.Name),
		After:   customer,
	})

	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer replaces an existing customer.
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id := c.Param("id")
	before, err := h.store.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading customer", zap.Error(err))
		internalError(c, "failed to load customer")
		return
	}
	if before == nil {
		notFound(c, "customer not found")
		return
	}

	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		badRequest(c, "invalid customer payload")
		return
	}
	customer.ID = id
	customer.CreatedAt = before.CreatedAt

	if err := h.store.SaveCustomer(c.Request.Context(), &customer); err != nil {
		h.logger.Error("failed saving customer", zap.Error(err))
		internalError(c, "failed to save customer")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "customers",
		Action:  models.AuditUpdate,
		Target:  models.AuditTarget{Type: "customer", ID: id, Name: customer.Name},
		Summary: fmt.Sprintf("Updated customer %s", customer.Name),
		Before:  *before,
		After:   customer,
	})

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft-deletes a customer.
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	before, err := h.store.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading customer", zap.Error(err))
		internalError(c, "failed to load customer")
		return
	}
	if before == nil {
		notFound(c, "customer not found")
		return
	}

	if err := h.store.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.logger.Error("failed deleting customer", zap.Error(err))
		internalError(c, "failed to delete customer")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "customers",
		Action:  models.AuditDelete,
		Target:  models.AuditTarget{Type: "customer", ID: id, Name: before.Name},
		Summary: fmt.Sprintf("Deleted customer %s", before.Name),
		Before:  *before,
	})

	c.Status(http.StatusNoContent)
}
