package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type TicketStatus string

const (
	TICKET_PENDING_APPROVAL TicketStatus = "PENDING_APPROVAL"
	TICKET_CONFIRMED        TicketStatus = "CONFIRMED"
	TICKET_CANCELLED        TicketStatus = "CANCELLED"
	TICKET_NO_SHOW          TicketStatus = "NO_SHOW"
)

type PaymentStatus string

const (
	PAYMENT_PENDING   PaymentStatus = "PENDING"
	PAYMENT_COMPLETED PaymentStatus = "COMPLETED"
)

type PassengerCategory string

const (
	CATEGORY_ADULT   PassengerCategory = "ADULT"
	CATEGORY_CHILD   PassengerCategory = "CHILD"
	CATEGORY_SENIOR  PassengerCategory = "SENIOR"
	CATEGORY_STUDENT PassengerCategory = "STUDENT"
)

func (c PassengerCategory) Valid() bool {
	switch c {
	case CATEGORY_ADULT, CATEGORY_CHILD, CATEGORY_SENIOR, CATEGORY_STUDENT:
		return true
	}
	return false
}

type TripStatus string

const (
	TRIP_SCHEDULED TripStatus = "scheduled"
	TRIP_DEPARTED  TripStatus = "departed"
	TRIP_COMPLETED TripStatus = "completed"
	TRIP_CANCELED  TripStatus = "canceled"
)

const (
	ROLE_PASSENGER  = "passenger"
	ROLE_DISPATCHER = "dispatcher"
	ROLE_ADMIN      = "admin"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type AvailabilityQuery struct {
	Seat       string `form:"seat" binding:"required"`
	FromStopID *uint  `form:"from_stop"`
	ToStopID   *uint  `form:"to_stop"`
}

type ReserveSeatRequestBody struct {
	TripID     uint       `json:"trip" binding:"required"`
	SeatNumber string     `json:"seat_number" binding:"required"`
	FromStopID *uint      `json:"from_stop,omitempty"`
	ToStopID   *uint      `json:"to_stop,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type UpdateHoldRequestBody struct {
	TripID     *uint      `json:"trip,omitempty"`
	SeatNumber *string    `json:"seat_number,omitempty"`
	FromStopID *uint      `json:"from_stop,omitempty"`
	ToStopID   *uint      `json:"to_stop,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type CreateTicketRequestBody struct {
	TripID            uint     `json:"trip" binding:"required"`
	SeatNumber        string   `json:"seat_number" binding:"required"`
	FromStopID        *uint    `json:"from_stop,omitempty"`
	ToStopID          *uint    `json:"to_stop,omitempty"`
	PassengerCategory string   `json:"category" binding:"required,category"`
	PaymentMethod     string   `json:"payment_method" binding:"required"`
	BaggageWeightKg   *float64 `json:"baggage_weight_kg,omitempty"`
}

type PayTicketRequestBody struct {
	PaymentReference *string `json:"payment_reference,omitempty"`
}

type PayTicketsRequestBody struct {
	TicketIDs        []uint  `json:"tickets" binding:"required,min=1"`
	PaymentReference *string `json:"payment_reference,omitempty"`
}

type CheckInRequestBody struct {
	QRCode string `json:"qr_code" binding:"required"`
}

type LoginRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type RegisterRequestBody struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}
