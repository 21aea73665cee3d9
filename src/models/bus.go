package models

import "bts/src/types"

type Bus struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Plate    string `gorm:"uniqueIndex" json:"plate,omitempty"`
	Model    string `json:"model,omitempty"`
	Capacity uint   `json:"capacity"`

	Seats []BusSeat `json:"seats,omitempty"`

	types.Timestamps
}

// BusSeat is the seat universe of every trip run with this bus. Seat identity
// on a trip is the seat number, not this row's key: the same number can carry
// multiple non-overlapping occupancy records.
type BusSeat struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	BusID  uint   `gorm:"uniqueIndex:bus_seat" json:"bus_id,omitempty"`
	Number string `gorm:"uniqueIndex:bus_seat" json:"number"`

	types.Timestamps
}
