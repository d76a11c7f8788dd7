package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/linsamsir/pro-erp/internal/domain/models"
	"github.com/linsamsir/pro-erp/internal/service/audit"
	"github.com/linsamsir/pro-erp/internal/service/costing"
	"github.com/linsamsir/pro-erp/internal/service/reporting"
)

// fakeStore is an in-memory Store and audit.Store.
type fakeStore struct {
	mu        sync.Mutex
	seq       int
	customers map[string]models.Customer
	jobs      map[string]models.Job
	expenses  map[string]models.Expense
	assets    map[string]models.Asset
	stockLogs map[string]models.StockLog
	settings  *models.Settings
	auditLog  []models.AuditEntry
	snapshots []models.MonthlyReport
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: map[string]models.Customer{},
		jobs:      map[string]models.Job{},
		expenses:  map[string]models.Expense{},
		assets:    map[string]models.Asset{},
		stockLogs: map[string]models.StockLog{},
	}
}

func (s *fakeStore) nextID() string {
	s.seq++
	return fmt.Sprintf("id-%d", s.seq)
}

func (s *fakeStore) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Customer
	for _, customer := range s.customers {
		if customer.DeletedAt == nil {
			out = append(out, customer)
		}
	}
	return out, nil
}

func (s *fakeStore) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.customers[id]
	if !ok || customer.DeletedAt != nil {
		return nil, nil
	}
	return &customer, nil
}

func (s *fakeStore) SaveCustomer(ctx context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if customer.ID == "" {
		customer.ID = s.nextID()
	}
	s.customers[customer.ID] = *customer
	return nil
}

func (s *fakeStore) DeleteCustomer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.customers[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	now := time.Now()
	customer.DeletedAt = &now
	s.customers[id] = customer
	return nil
}

func (s *fakeStore) ListJobs(ctx context.Context) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Job
	for _, job := range s.jobs {
		if job.DeletedAt == nil {
			out = append(out, job)
		}
	}
	return out, nil
}

func (s *fakeStore) GetJob(ctx context.Context, id string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok || job.DeletedAt != nil {
		return nil, nil
	}
	return &job, nil
}

func (s *fakeStore) SaveJob(ctx context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.Normalize()
	if job.ID == "" {
		job.ID = s.nextID()
	}
	s.jobs[job.ID] = *job
	return nil
}

func (s *fakeStore) DeleteJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	now := time.Now()
	job.DeletedAt = &now
	s.jobs[id] = job
	return nil
}

func (s *fakeStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Expense
	for _, expense := range s.expenses {
		if expense.DeletedAt == nil {
			out = append(out, expense)
		}
	}
	return out, nil
}

func (s *fakeStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expense, ok := s.expenses[id]
	if !ok || expense.DeletedAt != nil {
		return nil, nil
	}
	return &expense, nil
}

func (s *fakeStore) SaveExpense(ctx context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if expense.ID == "" {
		expense.ID = s.nextID()
	}
	s.expenses[expense.ID] = *expense
	return nil
}

func (s *fakeStore) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expense, ok := s.expenses[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	now := time.Now()
	expense.DeletedAt = &now
	s.expenses[id] = expense
	return nil
}

func (s *fakeStore) ListAssets(ctx context.Context) ([]models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Asset
	for _, asset := range s.assets {
		if asset.DeletedAt == nil {
			out = append(out, asset)
		}
	}
	return out, nil
}

func (s *fakeStore) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[id]
	if !ok || asset.DeletedAt != nil {
		return nil, nil
	}
	return &asset, nil
}

func (s *fakeStore) SaveAsset(ctx context.Context, asset *models.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if asset.ID == "" {
		asset.ID = s.nextID()
	}
	s.assets[asset.ID] = *asset
	return nil
}

func (s *fakeStore) DeleteAsset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	now := time.Now()
	asset.DeletedAt = &now
	s.assets[id] = asset
	return nil
}

func (s *fakeStore) ListStockLogs(ctx context.Context) ([]models.StockLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.StockLog
	for _, log := range s.stockLogs {
		if log.DeletedAt == nil {
			out = append(out, log)
		}
	}
	return out, nil
}

func (s *fakeStore) GetStockLog(ctx context.Context, id string) (*models.StockLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log, ok := s.stockLogs[id]
	if !ok || log.DeletedAt != nil {
		return nil, nil
	}
	return &log, nil
}

func (s *fakeStore) SaveStockLog(ctx context.Context, log *models.StockLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if log.ID == "" {
		log.ID = s.nextID()
	}
	s.stockLogs[log.ID] = *log
	return nil
}

func (s *fakeStore) DeleteStockLog(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log, ok := s.stockLogs[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	now := time.Now()
	log.DeletedAt = &now
	s.stockLogs[id] = log
	return nil
}

func (s *fakeStore) GetSettings(ctx context.Context) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, nil
}

func (s *fakeStore) SaveSettings(ctx context.Context, settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}

func (s *fakeStore) SaveMonthlyReport(ctx context.Context, report models.MonthlyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, report)
	return nil
}

func (s *fakeStore) AppendAuditEntry(ctx context.Context, entry models.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditLog = append(s.auditLog, entry)
	return nil
}

func (s *fakeStore) EvictOldestAuditEntries(ctx context.Context, cap int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.auditLog) > cap {
		s.auditLog = s.auditLog[len(s.auditLog)-cap:]
	}
	return nil
}

func (s *fakeStore) ListAuditEntries(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.AuditEntry
	for i := len(s.auditLog) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.auditLog[i])
	}
	return out, nil
}

func (s *fakeStore) auditLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.auditLog)
}

func newTestRouter(store *fakeStore) *gin.Engine {
	defaults := reporting.Defaults{
		UnitCosts:           costing.Defaults{CitricAcid: 60, Chemical: 100},
		TrafficFallbackRate: 5,
	}
	reports := reporting.NewService(store, store, nil, defaults, nil)
	recorder := audit.NewRecorder(store, 2000, nil)
	handler := New(store, reports, recorder, nil, models.GeoPoint{}, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ActorMiddleware())
	write := RequireWriter()

	r.POST("/api/jobs", write, handler.CreateJob)
	r.PUT("/api/jobs/:id", write, handler.UpdateJob)
	r.DELETE("/api/jobs/:id", write, handler.DeleteJob)
	r.GET("/api/jobs", handler.ListJobs)
	r.GET("/api/jobs/:id/analysis", handler.JobAnalysis)
	r.POST("/api/expenses", write, handler.CreateExpense)
	r.GET("/api/reports/monthly", handler.MonthlyReport)
	r.GET("/api/audit", handler.ListAudit)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	return recorder
}

var bossHeaders = map[string]string{
	"X-Actor-Id":   "u1",
	"X-Actor-Name": "Boss",
	"X-Actor-Role": "admin",
}

func TestCreateJob_RecordsAudit(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	resp := doJSON(t, r, http.MethodPost, "/api/jobs", map[string]any{
		"customer_id":  "c1",
		"service_date": "2024-03-12",
		"status":       "COMPLETED",
		"totalPaid":    3000,
	}, bossHeaders)

	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
	if store.auditLen() != 1 {
		t.Fatalf("audit entries = %d, want 1", store.auditLen())
	}
	entry := store.auditLog[0]
	if entry.Action != models.AuditCreate || entry.Module != "jobs" {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.Actor.Name != "Boss" {
		t.Fatalf("actor = %+v", entry.Actor)
	}

	// legacy totalPaid normalized into the structured block on save
	var created models.Job
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Financial == nil || created.Financial.TotalAmount != 3000 {
		t.Fatalf("financial = %+v", created.Financial)
	}
}

func TestMutations_OneAuditEntryEach(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	create := doJSON(t, r, http.MethodPost, "/api/jobs", map[string]any{
		"customer_id": "c1", "service_date": "2024-03-12",
	}, bossHeaders)
	var job models.Job
	if err := json.Unmarshal(create.Body.Bytes(), &job); err != nil {
		t.Fatalf("decode: %v", err)
	}

	doJSON(t, r, http.MethodPut, "/api/jobs/"+job.ID, map[string]any{
		"customer_id": "c1", "service_date": "2024-03-13",
	}, bossHeaders)
	doJSON(t, r, http.MethodDelete, "/api/jobs/"+job.ID, nil, bossHeaders)
	doJSON(t, r, http.MethodPost, "/api/expenses", map[string]any{
		"date": "2024-03-13", "amount": 100.0, "category": "fuel",
	}, bossHeaders)

	if store.auditLen() != 4 {
		t.Fatalf("audit entries = %d, want 4", store.auditLen())
	}
	if store.auditLog[1].Before == nil || store.auditLog[1].After == nil {
		t.Fatal("update entry missing before/after diff")
	}
	if store.auditLog[2].Before == nil {
		t.Fatal("delete entry missing before snapshot")
	}
}

func TestViewerRoleCannotWrite(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	resp := doJSON(t, r, http.MethodPost, "/api/jobs", map[string]any{
		"customer_id": "c1", "service_date": "2024-03-12",
	}, map[string]string{"X-Actor-Role": RoleViewer})

	if resp.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.Code)
	}
	if store.auditLen() != 0 {
		t.Fatalf("audit entries = %d, want 0", store.auditLen())
	}
}

func TestMissingActorAttributedToSystem(t *testing.T) {
	store := newFakeStore()
	r := newTestRouter(store)

	resp := doJSON(t, r, http.MethodPost, "/api/expenses", map[string]any{
		"date": "2024-03-13", "amount": 100.0, "category": "fuel",
	}, nil)

	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
	if store.auditLog[0].Actor != models.SystemActor {
		t.Fatalf("actor = %+v, want system", store.auditLog[0].Actor)
	}
}

func TestMonthlyReportEndpoint(t *testing.T) {
	store := newFakeStore()
	store.settings = &models.Settings{BossSalary: 40000, PartnerSalary: 30000, InsuranceCost: 2000}
	r := newTestRouter(store)

	doJSON(t, r, http.MethodPost, "/api/jobs", map[string]any{
		"customer_id": "c1", "service_date": "2024-03-12", "status": "COMPLETED",
		"work_duration_hours": 2.0, "travel_minutes_calculated": 30.0,
		"financial":   map[string]any{"total_amount": 3000.0},
		"consumables": map[string]any{"citric_acid": 1.0},
	}, bossHeaders)
	doJSON(t, r, http.MethodPost, "/api/expenses", map[string]any{
		"date": "2024-03-02", "amount": 200.0, "category": "fuel",
	}, bossHeaders)
	doJSON(t, r, http.MethodPost, "/api/expenses", map[string]any{
		"date": "2024-03-20", "amount": 30000.0, "category": "other", "cashflow_only": true,
	}, bossHeaders)

	resp := doJSON(t, r, http.MethodGet, "/api/reports/monthly?year=2024&month=3", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}

	var report models.MonthlyReport
	if err := json.Unmarshal(resp.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Month != "2024-03" || report.Revenue != 3000 {
		t.Fatalf("report = %+v", report)
	}
	// fuel counted, cashflow-only draw excluded
	if report.Costs.Overhead != 200 {
		t.Fatalf("overhead = %v, want 200", report.Costs.Overhead)
	}
	if report.Costs.Labor != 72000 {
		t.Fatalf("labor = %v, want 72000", report.Costs.Labor)
	}
}

func TestJobAnalysisEndpoint(t *testing.T) {
	store := newFakeStore()
	store.settings = &models.Settings{BossSalary: 72000}
	r := newTestRouter(store)

	create := doJSON(t, r, http.MethodPost, "/api/jobs", map[string]any{
		"customer_id": "c1", "service_date": "2024-03-12", "status": "COMPLETED",
		"work_duration_hours": 2.0, "travel_minutes_calculated": 30.0,
		"financial": map[string]any{"total_amount": 3000.0},
	}, bossHeaders)
	var job models.Job
	if err := json.Unmarshal(create.Body.Bytes(), &job); err != nil {
		t.Fatalf("decode: %v", err)
	}

	resp := doJSON(t, r, http.MethodGet, "/api/jobs/"+job.ID+"/analysis?year=2024&month=3", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}

	var result models.JobAnalysis
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode analysis: %v", err)
	}
	// only job in period: 72000 over its own 2 hours
	if result.HourlyLaborRate != 36000 {
		t.Fatalf("hourly rate = %v, want 36000", result.HourlyLaborRate)
	}
	if result.Period != "2024-03" {
		t.Fatalf("period = %q", result.Period)
	}

	missing := doJSON(t, r, http.MethodGet, "/api/jobs/nope/analysis?year=2024&month=3", nil, nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", missing.Code)
	}
}
