package models

import "time"

// ConsumableType identifies which consumable a stock purchase replenishes.
type ConsumableType string

const (
	ConsumableCitricAcid ConsumableType = "citric_acid"
	ConsumableChemical   ConsumableType = "chemical"
)

// StockLog is one inventory-purchase event: Quantity bulk units bought for
// TotalCost, each bulk unit yielding YieldPerUnit usable sub-units
// ("cans per drum"). Logs are only ever edited or deleted explicitly;
// costing pools the full history into one weighted average.
type StockLog struct {
	ID           string         `bson:"_id,omitempty" json:"id"`
	Type         ConsumableType `bson:"type" json:"type"`
	Date         string         `bson:"date" json:"date"` // ISO date string
	Quantity     float64        `bson:"quantity" json:"quantity"`
	TotalCost    float64        `bson:"total_cost" json:"total_cost"`
	YieldPerUnit float64        `bson:"yield_per_unit" json:"yield_per_unit"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}
