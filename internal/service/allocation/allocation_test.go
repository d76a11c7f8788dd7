package allocation

import (
	"math"
	"testing"
	"time"

	"github.com/linsamsir/pro-erp/internal/domain/models"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestPeriodKey(t *testing.T) {
	if got := PeriodKey(2024, time.March); got != "2024-03" {
		t.Fatalf("PeriodKey = %q, want 2024-03", got)
	}
	if got := PeriodKey(999, time.December); got != "0999-12" {
		t.Fatalf("PeriodKey = %q, want 0999-12", got)
	}
}

func TestInPeriod_PrefixSemantics(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{"2024-03-15", true},
		{"2024-03-15T10:00:00Z", true},
		{"2024-03", true},
		{"2024-04-01", false},
		{"garbage", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := InPeriod(tc.date, "2024-03"); got != tc.want {
			t.Errorf("InPeriod(%q) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestJobsInPeriod_FiltersStatusAndDeletion(t *testing.T) {
	deleted := time.Now()
	jobs := []models.Job{
		{ID: "a", ServiceDate: "2024-03-01", Status: models.JobStatusCompleted, WorkDurationHours: 2},
		{ID: "b", ServiceDate: "2024-03-02", Status: models.JobStatusPending, WorkDurationHours: 3},
		{ID: "c", ServiceDate: "2024-03-03", Status: models.JobStatusCancelled, WorkDurationHours: 4},
		{ID: "d", ServiceDate: "2024-04-01", Status: models.JobStatusCompleted, WorkDurationHours: 5},
		{ID: "e", ServiceDate: "2024-03-04", Status: models.JobStatusCompleted, WorkDurationHours: 6, DeletedAt: &deleted},
	}

	matched := JobsInPeriod(jobs, "2024-03")
	if len(matched) != 1 || matched[0].ID != "a" {
		t.Fatalf("JobsInPeriod = %+v, want only job a", matched)
	}
	nearlyEqual(t, "hours", PeriodWorkHours(jobs, "2024-03"), 2)
}

func TestHourlyRate_ZeroHours(t *testing.T) {
	nearlyEqual(t, "rate", HourlyRate(72000, 0), 0)
	nearlyEqual(t, "rate", HourlyRate(72000, 40), 1800)
}

func TestPerMinuteRate_FallbackOnZeroMinutes(t *testing.T) {
	nearlyEqual(t, "rate", PerMinuteRate(200, 0, 5), 5)
	nearlyEqual(t, "rate", PerMinuteRate(200, 300, 5), 200.0/300)
}

func TestTrafficRate(t *testing.T) {
	jobs := []models.Job{
		{Status: models.JobStatusCompleted, ServiceDate: "2024-03-10", TravelMinutesCalculated: 100},
		{Status: models.JobStatusCompleted, ServiceDate: "2024-03-20", TravelMinutesCalculated: 200},
		{Status: models.JobStatusPending, ServiceDate: "2024-03-21", TravelMinutesCalculated: 999},
	}
	expenses := []models.Expense{
		{Category: models.ExpenseFuel, Date: "2024-03-05", Amount: 150},
		{Category: models.ExpenseFuel, Date: "2024-03-25", Amount: 50},
		{Category: models.ExpenseFuel, Date: "2024-02-25", Amount: 400},
		{Category: models.ExpenseUtilities, Date: "2024-03-25", Amount: 400},
	}

	nearlyEqual(t, "traffic rate", TrafficRate(expenses, jobs, "2024-03", 5), 200.0/300)
}

func TestTrafficRate_NoTravelDataUsesFallback(t *testing.T) {
	expenses := []models.Expense{{Category: models.ExpenseFuel, Date: "2024-03-05", Amount: 150}}
	nearlyEqual(t, "traffic rate", TrafficRate(expenses, nil, "2024-03", 5), 5)
}

// Rates derived once for a period must be identical regardless of which
// job they are later applied to; they are functions of the period only.
func TestRates_StableAcrossCalls(t *testing.T) {
	jobs := []models.Job{
		{Status: models.JobStatusCompleted, ServiceDate: "2024-03-10", WorkDurationHours: 2.5, TravelMinutesCalculated: 33},
		{Status: models.JobStatusCompleted, ServiceDate: "2024-03-12", WorkDurationHours: 4, TravelMinutesCalculated: 47},
	}
	expenses := []models.Expense{{Category: models.ExpenseFuel, Date: "2024-03-01", Amount: 173.21}}

	first := TrafficRate(expenses, jobs, "2024-03", 5)
	second := TrafficRate(expenses, jobs, "2024-03", 5)
	if first != second {
		t.Fatalf("traffic rate not bit-identical across calls: %v vs %v", first, second)
	}

	hourlyFirst := HourlyRate(72000, PeriodWorkHours(jobs, "2024-03"))
	hourlySecond := HourlyRate(72000, PeriodWorkHours(jobs, "2024-03"))
	if hourlyFirst != hourlySecond {
		t.Fatalf("hourly rate not bit-identical across calls: %v vs %v", hourlyFirst, hourlySecond)
	}
}
