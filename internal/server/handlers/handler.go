// Package handlers adapts the repository, cost engine and audit recorder
// to the HTTP surface the operator UI consumes.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linsamsir/pro-erp/internal/domain/models"
	"github.com/linsamsir/pro-erp/internal/service/audit"
	"github.com/linsamsir/pro-erp/internal/service/reporting"
	"github.com/linsamsir/pro-erp/pkg/clients/routing"
)

// Store is the persistence surface the handlers mutate and read.
type Store interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	SaveCustomer(ctx context.Context, customer *models.Customer) error
	DeleteCustomer(ctx context.Context, id string) error

	ListJobs(ctx context.Context) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	SaveJob(ctx context.Context, job *models.Job) error
	DeleteJob(ctx context.Context, id string) error

	ListExpenses(ctx context.Context) ([]models.Expense, error)
	GetExpense(ctx context.Context, id string) (*models.Expense, error)
	SaveExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id string) error

	ListAssets(ctx context.Context) ([]models.Asset, error)
	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	SaveAsset(ctx context.Context, asset *models.Asset) error
	DeleteAsset(ctx context.Context, id string) error

	ListStockLogs(ctx context.Context) ([]models.StockLog, error)
	GetStockLog(ctx context.Context, id string) (*models.StockLog, error)
	SaveStockLog(ctx context.Context, log *models.StockLog) error
	DeleteStockLog(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (*models.Settings, error)
	SaveSettings(ctx context.Context, settings *models.Settings) error

	ListAuditEntries(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// Handler carries the shared dependencies of every endpoint.
type Handler struct {
	store    Store
	reports  *reporting.Service
	recorder *audit.Recorder
	routes   routing.Client // nil when travel estimation is not configured
	depot    models.GeoPoint
	logger   *zap.Logger
}

// New constructs the HTTP handler adapter.
func New(store Store, reports *reporting.Service, recorder *audit.Recorder, routes routing.Client, depot models.GeoPoint, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:    store,
		reports:  reports,
		recorder: recorder,
		routes:   routes,
		depot:    depot,
		logger:   logger,
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

func internalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
