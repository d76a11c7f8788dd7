package audit

import (
	"reflect"
	"testing"
	"time"

	"github.com/linsamsir/pro-erp/internal/domain/models"
)

func TestSnapshot_Primitives(t *testing.T) {
	if got := Snapshot(nil); got != nil {
		t.Fatalf("Snapshot(nil) = %v", got)
	}
	if got := Snapshot("hello"); got != "hello" {
		t.Fatalf("Snapshot(string) = %v", got)
	}
	if got := Snapshot(3.5); got != 3.5 {
		t.Fatalf("Snapshot(float) = %v", got)
	}
	if got := Snapshot(int64(7)); got != int64(7) {
		t.Fatalf("Snapshot(int) = %v", got)
	}
}

func TestSnapshot_StructBecomesMap(t *testing.T) {
	expense := models.Expense{ID: "e1", Date: "2024-03-01", Amount: 120, Category: models.ExpenseFuel}

	got, ok := Snapshot(expense).(map[string]any)
	if !ok {
		t.Fatalf("snapshot is %T, want map", Snapshot(expense))
	}
	if got["ID"] != "e1" || got["Amount"] != 120.0 {
		t.Fatalf("unexpected snapshot: %v", got)
	}
	if got["Category"] != "fuel" {
		t.Fatalf("category = %v, want fuel", got["Category"])
	}
}

func TestSnapshot_IsDetachedCopy(t *testing.T) {
	original := map[string]any{"nested": []any{1.0, 2.0}}
	snap := Snapshot(original).(map[string]any)

	original["nested"].([]any)[0] = 99.0
	if snap["nested"].([]any)[0] == 99.0 {
		t.Fatal("snapshot shares memory with original")
	}
}

func TestSnapshot_CycleThroughMap(t *testing.T) {
	m := map[string]any{}
	m["self"] = m

	snap := Snapshot(m).(map[string]any)
	if snap["self"] != circularPlaceholder {
		t.Fatalf("self = %v, want placeholder", snap["self"])
	}
}

func TestSnapshot_SharedPointerIsNotACycle(t *testing.T) {
	shared := &models.JobFinancial{TotalAmount: 100}
	pair := []*models.JobFinancial{shared, shared}

	snap := Snapshot(pair).([]any)
	first, ok := snap[0].(map[string]any)
	if !ok || first["TotalAmount"] != 100.0 {
		t.Fatalf("first = %v", snap[0])
	}
	// same pointer reached twice via siblings, not via itself
	second, ok := snap[1].(map[string]any)
	if !ok || second["TotalAmount"] != 100.0 {
		t.Fatalf("second = %v, want full copy", snap[1])
	}
}

func TestSnapshot_UnserializableKinds(t *testing.T) {
	payload := map[string]any{
		"fn": func() {},
		"ch": make(chan int),
	}
	snap := Snapshot(payload).(map[string]any)
	if snap["fn"] != unserializablePlaceholder || snap["ch"] != unserializablePlaceholder {
		t.Fatalf("unexpected snapshot: %v", snap)
	}
}

func TestSnapshot_TimeRendersAsString(t *testing.T) {
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	got := Snapshot(struct{ At time.Time }{At: stamp}).(map[string]any)
	if got["At"] != stamp.Format(time.RFC3339Nano) {
		t.Fatalf("At = %v", got["At"])
	}
}

func TestSnapshot_JobRoundTripShape(t *testing.T) {
	job := models.Job{
		ID:          "j1",
		ServiceDate: "2024-03-15",
		Status:      models.JobStatusCompleted,
		Financial:   &models.JobFinancial{TotalAmount: 3000},
		Consumables: &models.JobConsumables{CitricAcid: 1},
	}

	snap := Snapshot(job).(map[string]any)
	want := map[string]any{"TotalAmount": 3000.0}
	if !reflect.DeepEqual(snap["Financial"], want) {
		t.Fatalf("Financial = %v, want %v", snap["Financial"], want)
	}
	if snap["DeletedAt"] != nil {
		t.Fatalf("DeletedAt = %v, want nil", snap["DeletedAt"])
	}
}
