package models

import (
	"bts/src/types"
	"time"
)

// Ticket is the durable occupancy record. Cancellation never deletes the row;
// the status change alone makes it inactive for overlap purposes.
type Ticket struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	AccountID    uint   `json:"account_id,omitempty"`
	TripID       uint   `gorm:"index:ticket_trip_seat" json:"trip_id"`
	SeatNumber   string `gorm:"index:ticket_trip_seat" json:"seat_number"`
	FromStopID   *uint  `json:"from_stop_id,omitempty"`
	ToStopID     *uint  `json:"to_stop_id,omitempty"`
	FromSequence int32  `json:"from_sequence"`
	ToSequence   int32  `json:"to_sequence"`

	Status            types.TicketStatus      `gorm:"default:'CONFIRMED'" json:"status"`
	PassengerCategory types.PassengerCategory `gorm:"default:'ADULT'" json:"category,omitempty"`
	Price             float64                 `json:"price"`
	BaggageWeightKg   *float64                `json:"baggage_weight_kg,omitempty"`
	BaggageFee        float64                 `json:"baggage_fee,omitempty"`

	PaymentStatus    types.PaymentStatus `gorm:"default:'PENDING'" json:"payment_status"`
	PaymentMethod    string              `json:"payment_method,omitempty"`
	PaymentReference *string             `json:"payment_reference,omitempty"`
	QRCode           *string             `gorm:"uniqueIndex" json:"qr_code,omitempty"`

	CheckedIn   bool       `gorm:"default:false" json:"checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`

	Trip    *Trip    `json:"trip,omitempty"`
	Account *Account `json:"-"`

	types.Timestamps
}
