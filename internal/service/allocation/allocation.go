// Package allocation converts fixed period costs into per-job shares.
// Two allocation bases exist: work-hours (labor, depreciation) and
// travel-minutes (fuel/traffic). Rates are derived once per period and
// reused across every job in that period; recomputing them per job would
// let the rate drift as jobs are processed.
package allocation

import (
	"fmt"
	"strings"
	"time"

	"github.com/linsamsir/pro-erp/internal/domain/models"
)

// PeriodKey renders a calendar month as the "YYYY-MM" key used for prefix
// matching against stored date strings.
func PeriodKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// InPeriod reports whether an ISO date string falls in the period. This is
// a deliberate string prefix match, not date parsing: malformed dates must
// keep the exact filtering behavior the historical records were built on.
func InPeriod(date, periodKey string) bool {
	return strings.HasPrefix(date, periodKey)
}

// JobsInPeriod returns the jobs that participate in cost calculations for
// the period: COMPLETED, service-dated inside the period, not soft-deleted.
func JobsInPeriod(jobs []models.Job, periodKey string) []models.Job {
	var matched []models.Job
	for _, job := range jobs {
		if job.DeletedAt != nil || job.Status != models.JobStatusCompleted {
			continue
		}
		if !InPeriod(job.ServiceDate, periodKey) {
			continue
		}
		matched = append(matched, job)
	}
	return matched
}

// PeriodWorkHours sums work duration over the period's qualifying jobs.
func PeriodWorkHours(jobs []models.Job, periodKey string) float64 {
	var total float64
	for _, job := range JobsInPeriod(jobs, periodKey) {
		total += job.WorkDurationHours
	}
	return total
}

// PeriodTravelMinutes sums calculated travel minutes over the period's
// qualifying jobs.
func PeriodTravelMinutes(jobs []models.Job, periodKey string) float64 {
	var total float64
	for _, job := range JobsInPeriod(jobs, periodKey) {
		total += job.TravelMinutesCalculated
	}
	return total
}

// FuelTotal sums fuel-category expenses dated inside the period.
func FuelTotal(expenses []models.Expense, periodKey string) float64 {
	var total float64
	for _, expense := range expenses {
		if expense.DeletedAt != nil || expense.Category != models.ExpenseFuel {
			continue
		}
		if !InPeriod(expense.Date, periodKey) {
			continue
		}
		total += expense.Amount
	}
	return total
}

// HourlyRate converts a fixed period total into a per-work-hour rate.
// Zero hours yields a zero rate: with no work in the period there is
// nothing to allocate the cost onto.
func HourlyRate(periodTotal, totalHours float64) float64 {
	if totalHours <= 0 {
		return 0
	}
	return periodTotal / totalHours
}

// PerMinuteRate converts the period fuel total into a per-travel-minute
// rate. When no travel data exists yet the fallback rate is used instead
// of zero, so early-month job analyses are not skewed toward free travel.
func PerMinuteRate(fuelTotal, totalMinutes, fallbackRate float64) float64 {
	if totalMinutes <= 0 {
		return fallbackRate
	}
	return fuelTotal / totalMinutes
}

// TrafficRate derives the period's per-minute traffic rate from the raw
// expense and job collections.
func TrafficRate(expenses []models.Expense, jobs []models.Job, periodKey string, fallbackRate float64) float64 {
	return PerMinuteRate(FuelTotal(expenses, periodKey), PeriodTravelMinutes(jobs, periodKey), fallbackRate)
}
