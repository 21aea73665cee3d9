package models

import "bts/src/types"

type Route struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Name        string  `json:"name,omitempty"`
	Origin      string  `json:"origin,omitempty"`
	Destination string  `json:"destination,omitempty"`
	DistanceKm  float64 `json:"distance_km"`
	PricePerKm  float64 `json:"price_per_km"`

	Stops []Stop `json:"stops,omitempty"`

	types.Timestamps
}

// Stop sequence numbers are assigned by the route owner and strictly
// increasing within a route. The engine only checks consistency at use time.
type Stop struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	RouteID  uint   `gorm:"uniqueIndex:route_seq" json:"route_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Sequence int32  `gorm:"uniqueIndex:route_seq" json:"sequence"`

	Route *Route `json:"-"`

	types.Timestamps
}
