package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linsamsir/pro-erp/internal/domain/models"
	"github.com/linsamsir/pro-erp/internal/service/audit"
)

// ListExpenses returns all active expenses.
func (h *Handler) ListExpenses(c *gin.Context) {
	expenses, err := h.store.ListExpenses(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing expenses", zap.Error(err))
		internalError(c, "failed to load expenses")
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// CreateExpense stores a new expense entry.
func (h *Handler) CreateExpense(c *gin.Context) {
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		badRequest(c, "invalid expense payload")
		return
	}
	if expense.Date == "" {
		badRequest(c, "date is required")
		return
	}
	expense.ID = ""

	if err := h.store.SaveExpense(c.Request.Context(), &expense); err != nil {
		h.logger.Error("failed saving expense", zap.Error(err))
		internalError(c, "failed to save expense")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "expenses",
		Action:  models.AuditCreate,
		Target:  models.AuditTarget{Type: "expense", ID: expense.ID, Name: string(expense.Category.Canonical())},
		Summary: fmt.Sprintf("Added %s expense of %.2f on %s", expense.Category.Canonical(), expense.Amount, expense.Date),
		After:   expense,
	})

	c.JSON(http.StatusCreated, expense)
}

// UpdateExpense replaces an existing expense entry.
func (h *Handler) UpdateExpense(c *gin.Context) {
	id := c.Param("id")
	before, err := h.store.GetExpense(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading expense", zap.Error(err))
		internalError(c, "failed to load expense")
		return
	}
	if before == nil {
		notFound(c, "expense not found")
		return
	}

	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		badRequest(c, "invalid expense payload")
		return
	}
	expense.ID = id
	expense.CreatedAt = before.CreatedAt

	if err := h.store.SaveExpense(c.Request.Context(), &expense); err != nil {
		h.logger.Error("failed saving expense", zap.Error(err))
		internalError(c, "failed to save expense")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "expenses",
		Action:  models.AuditUpdate,
		Target:  models.AuditTarget{Type: "expense", ID: id, Name: string(expense.Category.Canonical())},
		Summary: fmt.Sprintf("Updated expense on %s", expense.Date),
		Before:  *before,
		After:   expense,
	})

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense soft-deletes an expense entry.
func (h *Handler) DeleteExpense(c *gin.Context) {
	id := c.Param("id")
	before, err := h.store.GetExpense(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading expense", zap.Error(err))
		internalError(c, "failed to load expense")
		return
	}
	if before == nil {
		notFound(c, "expense not found")
		return
	}

	if err := h.store.DeleteExpense(c.Request.Context(), id); err != nil {
		h.logger.Error("failed deleting expense", zap.Error(err))
		internalError(c, "failed to delete expense")
		return
	}

	h.recorder.Record(c.Request.Context(), actorFrom(c), audit.Entry{
		Module:  "expenses",
		Action:  models.AuditDelete,
		Target:  models.AuditTarget{Type: "expense", ID: id, Name: string(before.Category.Canonical())},
		Summary: fmt.Sprintf("Deleted expense of %.2f on %s", before.Amount, before.Date),
		Before:  *before,
	})

	c.Status(http.StatusNoContent)
}
