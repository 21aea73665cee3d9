package models

import "time"

// SeatHold is an ephemeral occupancy record. Expiry is lazy: expired rows stay
// in storage and are excluded by the expires_at filter in every overlap query;
// the scheduler sweep only bounds storage. Holds are hard-deleted, so no
// soft-delete timestamps here.
type SeatHold struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	AccountID    uint      `json:"account_id,omitempty"`
	TripID       uint      `gorm:"index:hold_trip_seat" json:"trip_id"`
	SeatNumber   string    `gorm:"index:hold_trip_seat" json:"seat_number"`
	FromStopID   *uint     `json:"from_stop_id,omitempty"`
	ToStopID     *uint     `json:"to_stop_id,omitempty"`
	FromSequence int32     `json:"from_sequence"`
	ToSequence   int32     `json:"to_sequence"`
	ExpiresAt    time.Time `gorm:"index" json:"expires_at"`

	Trip    *Trip    `json:"trip,omitempty"`
	Account *Account `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
}
