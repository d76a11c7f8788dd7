package mongodb

import (
	"context"

	"github.com/linsamsir/pro-erp/internal/domain/models"
)

// ListCustomers returns all non-deleted customers.
func (r *Repository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.listInto(ctx, customersCollection, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCustomer returns one customer, or nil when absent/deleted.
func (r *Repository) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	found, err := r.findByID(ctx, customersCollection, id, &customer)
	if err != nil || !found {
		return nil, err
	}
	return &customer, nil
}

// SaveCustomer inserts or replaces a customer.
func (r *Repository) SaveCustomer(ctx context.Context, customer *models.Customer) error {
	now := r.now().UTC()
	if customer.ID == "" {
		customer.ID = newID()
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now
	return r.upsertByID(ctx, customersCollection, customer.ID, customer)
}

// DeleteCustomer soft-deletes a customer.
func (r *Repository) DeleteCustomer(ctx context.Context, id string) error {
	return r.softDelete(ctx, customersCollection, id)
}

// ListJobs returns all non-deleted jobs, normalized.
func (r *Repository) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := r.listInto(ctx, jobsCollection, &jobs); err != nil {
		return nil, err
	}
	for i := range jobs {
		jobs[i].Normalize()
	}
	return jobs, nil
}

// GetJob returns one job, normalized, or nil when absent/deleted.
func (r *Repository) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	found, err := r.findByID(ctx, jobsCollection, id, &job)
	if err != nil || !found {
		return nil, err
	}
	job.Normalize()
	return &job, nil
}

// SaveJob inserts or replaces a job. The record is normalized before it is
// written so every stored document carries the canonical shape alongside
// any legacy fields it arrived with.
func (r *Repository) SaveJob(ctx context.Context, job *models.Job) error {
	job.Normalize()
	now := r.now().UTC()
	if job.ID == "" {
		job.ID = newID()
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	return r.upsertByID(ctx, jobsCollection, job.ID, job)
}

// DeleteJob soft-deletes a job.
func (r *Repository) DeleteJob(ctx context.Context, id string) error {
	return r.softDelete(ctx, jobsCollection, id)
}

// ListExpenses returns all non-deleted expenses.
func (r *Repository) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.listInto(ctx, expensesCollection, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// GetExpense returns one expense, or nil when absent/deleted.
func (r *Repository) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	var expense models.Expense
	found, err := r.findByID(ctx, expensesCollection, id, &expense)
	if err != nil || !found {
		return nil, err
	}
	return &expense, nil
}

// SaveExpense inserts or replaces an expense.
func (r *Repository) SaveExpense(ctx context.Context, expense *models.Expense) error {
	now := r.now().UTC()
	if expense.ID == "" {
		expense.ID = newID()
		expense.CreatedAt = now
	}
	expense.UpdatedAt = now
	return r.upsertByID(ctx, expensesCollection, expense.ID, expense)
}

// DeleteExpense soft-deletes an expense.
func (r *Repository) DeleteExpense(ctx context.Context, id string) error {
	return r.softDelete(ctx, expensesCollection, id)
}

// ListAssets returns all non-deleted assets.
func (r *Repository) ListAssets(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	if err := r.listInto(ctx, assetsCollection, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// GetAsset returns one asset, or nil when absent/deleted.
func (r *Repository) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	found, err := r.findByID(ctx, assetsCollection, id, &asset)
	if err != nil || !found {
		return nil, err
	}
	return &asset, nil
}

// SaveAsset inserts or replaces an asset.
func (r *Repository) SaveAsset(ctx context.Context, asset *models.Asset) error {
	now := r.now().UTC()
	if asset.ID == "" {
		asset.ID = newID()
		asset.CreatedAt = now
	}
	if asset.Status == "" {
		asset.Status = models.AssetActive
	}
	asset.UpdatedAt = now
	return r.upsertByID(ctx, assetsCollection, asset.ID, asset)
}

// DeleteAsset soft-deletes an asset.
func (r *Repository) DeleteAsset(ctx context.Context, id string) error {
	return r.softDelete(ctx, assetsCollection, id)
}

// ListStockLogs returns all non-deleted stock logs.
func (r *Repository) ListStockLogs(ctx context.Context) ([]models.StockLog, error) {
	var logs []models.StockLog
	if err := r.listInto(ctx, stockLogsCollection, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// GetStockLog returns one stock log, or nil when absent/deleted.
func (r *Repository) GetStockLog(ctx context.Context, id string) (*models.StockLog, error) {
	var log models.StockLog
	found, err := r.findByID(ctx, stockLogsCollection, id, &log)
	if err != nil || !found {
		return nil, err
	}
	return &log, nil
}

// SaveStockLog inserts or replaces a stock log.
func (r *Repository) SaveStockLog(ctx context.Context, log *models.StockLog) error {
	now := r.now().UTC()
	if log.ID == "" {
		log.ID = newID()
		log.CreatedAt = now
	}
	log.UpdatedAt = now
	return r.upsertByID(ctx, stockLogsCollection, log.ID, log)
}

// DeleteStockLog soft-deletes a stock log.
func (r *Repository) DeleteStockLog(ctx context.Context, id string) error {
	return r.softDelete(ctx, stockLogsCollection, id)
}

// GetSettings returns the settings singleton, or nil when none is stored.
func (r *Repository) GetSettings(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	found, err := r.findByID(ctx, settingsCollection, settingsDocumentID, &settings)
	if err != nil || !found {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings replaces the settings singleton.
func (r *Repository) SaveSettings(ctx context.Context, settings *models.Settings) error {
	settings.ID = settingsDocumentID
	settings.UpdatedAt = r.now().UTC()
	return r.upsertByID(ctx, settingsCollection, settings.ID, settings)
}
