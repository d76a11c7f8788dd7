package models

import "time"

// JobStatus enumerates the lifecycle states of a work order.
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

// JobFinancial is the structured revenue block on newer records.
type JobFinancial struct {
	TotalAmount float64 `bson:"total_amount" json:"total_amount"`
}

// JobConsumables is the structured consumable-usage block on newer records.
// Quantities are fractional with 0.5 granularity (half cans are common).
type JobConsumables struct {
	CitricAcid float64 `bson:"citric_acid" json:"citric_acid"`
	Chemical   float64 `bson:"chemical" json:"chemical"`
}

// Job is a single work order. Historical documents may carry only the
// legacy flat fields (TotalPaid, CitricAcidCans, OtherChemicalCans);
// Normalize folds those into the structured blocks without dropping them,
// so old documents keep round-tripping.
type Job struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	CustomerID  string    `bson:"customer_id" json:"customer_id"`
	ServiceDate string    `bson:"service_date" json:"service_date"` // ISO date string, e.g. "2024-03-15"
	Status      JobStatus `bson:"status" json:"status"`

	WorkDurationHours float64 `bson:"work_duration_hours" json:"work_duration_hours"`

	// TravelMinutesCalculated is the value the allocation engine reads. The
	// routing client fills it; a manual override, when present, wins.
	TravelMinutesCalculated float64  `bson:"travel_minutes_calculated" json:"travel_minutes_calculated"`
	TravelMinutesOverride   *float64 `bson:"travel_minutes_override,omitempty" json:"travel_minutes_override,omitempty"`

	Financial   *JobFinancial   `bson:"financial,omitempty" json:"financial,omitempty"`
	Consumables *JobConsumables `bson:"consumables,omitempty" json:"consumables,omitempty"`

	// Legacy flat fields, kept for permanent dual-read compatibility.
	TotalPaid         float64 `bson:"totalPaid,omitempty" json:"totalPaid,omitempty"`
	CitricAcidCans    float64 `bson:"citricAcidCans,omitempty" json:"citricAcidCans,omitempty"`
	OtherChemicalCans float64 `bson:"otherChemicalCans,omitempty" json:"otherChemicalCans,omitempty"`

	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// Normalize maps a record into its canonical shape. It runs once at the
// repository boundary (after decode and before save) so the calculation
// services never need fallback reads.
func (j *Job) Normalize() {
	if j == nil {
		return
	}
	if j.Financial == nil && j.TotalPaid != 0 {
		j.Financial = &JobFinancial{TotalAmount: j.TotalPaid}
	}
	if j.Consumables == nil && (j.CitricAcidCans != 0 || j.OtherChemicalCans != 0) {
		j.Consumables = &JobConsumables{CitricAcid: j.CitricAcidCans, Chemical: j.OtherChemicalCans}
	}
	if j.TravelMinutesOverride != nil {
		j.TravelMinutesCalculated = *j.TravelMinutesOverride
	}
	if j.Status == "" {
		j.Status = JobStatusPending
	}
}

// Revenue returns the job's revenue, falling back to the legacy flat field
// when the structured block is absent.
func (j Job) Revenue() float64 {
	if j.Financial != nil {
		return j.Financial.TotalAmount
	}
	return j.TotalPaid
}

// CitricUnits returns the citric-acid consumption with legacy fallback.
func (j Job) CitricUnits() float64 {
	if j.Consumables != nil {
		return j.Consumables.CitricAcid
	}
	return j.CitricAcidCans
}

// ChemicalUnits returns the chemical consumption with legacy fallback.
func (j Job) ChemicalUnits() float64 {
	if j.Consumables != nil {
		return j.Consumables.Chemical
	}
	return j.OtherChemicalCans
}
