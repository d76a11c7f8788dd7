// Package analysis produces the per-job profitability breakdown.
package analysis

import (
	"github.com/linsamsir/pro-erp/internal/domain/models"
	"github.com/linsamsir/pro-erp/internal/service/allocation"
	"github.com/linsamsir/pro-erp/internal/service/costing"
)

// PeriodInputs carries the period-level figures a job analysis allocates
// from. The caller derives these once per period (see reporting and the
// report handlers) and applies them to every job in that period, so all
// jobs see identical rates.
type PeriodInputs struct {
	Labor                models.LaborConfig
	UnitCosts            costing.UnitCosts
	MonthlyDepreciation  float64
	TrafficRate          float64 // currency per travel-minute
	TotalPeriodWorkHours float64
}

// AnalyzeJob computes the full cost breakdown and real margin for one job.
// Pure calculation: the job is not mutated and nothing is persisted.
// Revenue and consumable quantities read through the normalized accessors,
// which keep the legacy flat-field fallback working for old records.
func AnalyzeJob(job models.Job, in PeriodInputs) models.JobAnalysis {
	hourlyLaborRate := allocation.HourlyRate(in.Labor.TotalFixedLaborCost, in.TotalPeriodWorkHours)
	hourlyDepreciationRate := allocation.HourlyRate(in.MonthlyDepreciation, in.TotalPeriodWorkHours)

	labor := hourlyLaborRate * job.WorkDurationHours
	depreciation := hourlyDepreciationRate * job.WorkDurationHours
	traffic := in.TrafficRate * job.TravelMinutesCalculated
	consumables := job.CitricUnits()*in.UnitCosts.CitricAcid + job.ChemicalUnits()*in.UnitCosts.Chemical

	breakdown := models.CostBreakdown{
		Labor:        labor,
		Consumables:  consumables,
		Depreciation: depreciation,
		Traffic:      traffic,
		Total:        labor + consumables + depreciation + traffic,
	}

	revenue := job.Revenue()
	return models.JobAnalysis{
		JobID:                job.ID,
		Revenue:              revenue,
		Breakdown:            breakdown,
		RealGrossMargin:      revenue - breakdown.Total,
		HourlyLaborRate:      hourlyLaborRate,
		PerMinuteTrafficRate: in.TrafficRate,
	}
}
