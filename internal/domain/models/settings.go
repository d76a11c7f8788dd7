package models

import "time"

// LaborLine is one row of the richer labor breakdown shape.
type LaborLine struct {
	Role          string  `bson:"role" json:"role"`
	MonthlySalary float64 `bson:"monthly_salary" json:"monthly_salary"`
}

// LaborConfig is the normalized labor input consumed by the cost engine.
type LaborConfig struct {
	TotalFixedLaborCost float64 `json:"total_fixed_labor_cost"`
}

// Settings is the mutable singleton holding fixed monthly labor figures.
// Two historical shapes exist side by side: the simple boss/partner/
// insurance triple and the richer LaborBreakdown list. Labor() normalizes
// either into the single figure the engine needs.
type Settings struct {
	ID string `bson:"_id,omitempty" json:"id"`

	BossSalary    float64 `bson:"boss_salary" json:"boss_salary"`
	PartnerSalary float64 `bson:"partner_salary" json:"partner_salary"`
	InsuranceCost float64 `bson:"insurance_cost" json:"insurance_cost"`

	LaborBreakdown []LaborLine `bson:"labor_breakdown,omitempty" json:"labor_breakdown,omitempty"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Labor returns the normalized fixed labor cost for a month. The richer
// breakdown wins when present; otherwise the simple triple is summed.
func (s Settings) Labor() LaborConfig {
	if len(s.LaborBreakdown) > 0 {
		total := s.InsuranceCost
		for _, line := range s.LaborBreakdown {
			total += line.MonthlySalary
		}
		return LaborConfig{TotalFixedLaborCost: total}
	}
	return LaborConfig{TotalFixedLaborCost: s.BossSalary + s.PartnerSalary + s.InsuranceCost}
}
