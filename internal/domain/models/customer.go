package models

import "time"

// GeoPoint is a WGS84 coordinate pair used for travel-time estimation.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// IsZero reports whether the point carries no usable coordinates.
func (p GeoPoint) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// Customer is one entry in the service roster.
type Customer struct {
	ID       string    `bson:"_id,omitempty" json:"id"`
	Name     string    `bson:"name" json:"name"`
	Phone    string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address  string    `bson:"address,omitempty" json:"address,omitempty"`
	Location *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
	Notes    string    `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}
