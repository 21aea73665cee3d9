package types

import "fmt"

// NotFoundError covers absent routes, stops, buses, trips, tickets, holds and
// accounts. Always fatal for the request.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s [%v] not found", e.Resource, e.ID)
}

// ValidationError is a caller-fixable bad input, e.g. an inverted segment.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// ConflictError means the requested seat-segment overlaps an active occupancy
// record. The caller may retry with a different seat or segment.
type ConflictError struct {
	TripID     uint
	SeatNumber string
	Reason     string
}

func (e ConflictError) Error() string {
	return e.Reason
}

// CapacityError means no seat is free anywhere in the requested segment.
type CapacityError struct {
	TripID   uint
	Occupied int64
	Capacity uint
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("trip [%d] has no seats left in the requested segment (%d/%d occupied)", e.TripID, e.Occupied, e.Capacity)
}

// PreconditionError is a business-rule violation: wrong ticket status for a
// transition, already-paid, past departure, cancel window and the like.
type PreconditionError struct {
	Op  string
	Msg string
}

func (e PreconditionError) Error() string {
	if e.Op == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}
