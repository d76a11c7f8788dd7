package models

import "time"

// AssetStatus enumerates the operational state of a durable good.
type AssetStatus string

const (
	AssetActive      AssetStatus = "active"
	AssetRetired     AssetStatus = "retired"
	AssetMaintenance AssetStatus = "maintenance"
)

// Asset is a depreciable durable good (pump, compressor, vehicle fittings).
// It contributes Cost/LifespanMonths to every month in the half-open
// interval [purchase month, purchase month + lifespan), unless retired.
type Asset struct {
	ID             string      `bson:"_id,omitempty" json:"id"`
	Name           string      `bson:"name" json:"name"`
	Cost           float64     `bson:"cost" json:"cost"`
	PurchaseDate   string      `bson:"purchase_date" json:"purchase_date"` // ISO date string
	LifespanMonths int         `bson:"lifespan_months" json:"lifespan_months"`
	Status         AssetStatus `bson:"status" json:"status"`
	Notes          string      `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}
