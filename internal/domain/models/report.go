package models

import "time"

// CostBreakdown is the per-job allocated cost split.
type CostBreakdown struct {
	Labor        float64 `bson:"labor" json:"labor"`
	Consumables  float64 `bson:"consumables" json:"consumables"`
	Depreciation float64 `bson:"depreciation" json:"depreciation"`
	Traffic      float64 `bson:"traffic" json:"traffic"`
	Total        float64 `bson:"total" json:"total"`
}

// JobAnalysis is the profitability view of a single job for a period.
// The rates are echoed back so callers can verify that every job in a
// period was priced with the same period-level rates.
type JobAnalysis struct {
	JobID                string        `json:"job_id"`
	Period               string        `json:"period"` // "YYYY-MM"
	Revenue              float64       `json:"revenue"`
	Breakdown            CostBreakdown `json:"breakdown"`
	RealGrossMargin      float64       `json:"real_gross_margin"`
	HourlyLaborRate      float64       `json:"hourly_labor_rate"`
	PerMinuteTrafficRate float64       `json:"per_minute_traffic_rate"`
}

// ReportCosts is the month-level cost split of a MonthlyReport.
type ReportCosts struct {
	Labor             float64 `bson:"labor" json:"labor"`
	ConsumablesActual float64 `bson:"consumables_actual" json:"consumables_actual"`
	Depreciation      float64 `bson:"depreciation" json:"depreciation"`
	Overhead          float64 `bson:"overhead" json:"overhead"`
	Total             float64 `bson:"total" json:"total"`
}

// MonthlyReport is the month-level P&L summary.
type MonthlyReport struct {
	Month       string      `bson:"month" json:"month"` // "YYYY-MM"
	Revenue     float64     `bson:"revenue" json:"revenue"`
	Costs       ReportCosts `bson:"costs" json:"costs"`
	NetProfit   float64     `bson:"net_profit" json:"net_profit"`
	JobCount    int         `bson:"job_count" json:"job_count"`
	GeneratedAt time.Time   `bson:"generated_at" json:"generated_at"`
}
