package models

import (
	"bts/src/types"
	"time"
)

type Trip struct {
	ID            uint             `gorm:"primarykey" json:"id"`
	RouteID       uint             `json:"route_id,omitempty"`
	BusID         uint             `json:"bus_id,omitempty"`
	DepartureTime time.Time        `json:"departure_time"`
	Status        types.TripStatus `gorm:"default:'scheduled'" json:"status,omitempty"`

	Route *Route `json:"route,omitempty"`
	Bus   *Bus   `json:"bus,omitempty"`

	types.Timestamps
}
