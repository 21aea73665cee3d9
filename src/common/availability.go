package common

import (
	"bts/src/models"
	"bts/src/types"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	occupantTicket = "ticket"
	occupantHold   = "hold"
)

// occupant is one active occupancy record on a trip+seat, regardless of kind.
// Both kinds go through the same conflict scan.
type occupant struct {
	Kind       string
	HoldID     uint
	SeatNumber string
	FromSeq    int32
	ToSeq      int32
	FromStop   *string
	ToStop     *string
	ExpiresAt  *time.Time
}

func (o occupant) segment() Segment {
	return Segment{From: o.FromSeq, To: o.ToSeq}
}

func (o occupant) reason(seatNumber string) string {
	from := "the start of the route"
	if o.FromStop != nil {
		from = *o.FromStop
	}
	to := "the end of the route"
	if o.ToStop != nil {
		to = *o.ToStop
	}
	if o.Kind == occupantHold {
		return fmt.Sprintf("seat %s is held from %s to %s until %s", seatNumber, from, to, o.ExpiresAt.Format(time.RFC3339))
	}
	return fmt.Sprintf("seat %s is already sold from %s to %s", seatNumber, from, to)
}

// saleBlockingScope filters tickets to those whose status still blocks a sale.
// Cancelled rows stay in storage for audit but are inert here.
func saleBlockingScope(tx *gorm.DB) *gorm.DB {
	return tx.
		Model(&models.Ticket{}).
		Where("tickets.status <> ?", types.TICKET_CANCELLED)
}

func ticketOccupants(tx *gorm.DB, tripID uint, seatNumber string, _ time.Time) ([]occupant, error) {
	var occupants []occupant
	err := saleBlockingScope(tx).
		Select("'ticket' AS kind, tickets.seat_number, tickets.from_sequence AS from_seq, tickets.to_sequence AS to_seq, fs.name AS from_stop, ts.name AS to_stop").
		Joins("LEFT JOIN stops fs ON fs.id = tickets.from_stop_id").
		Joins("LEFT JOIN stops ts ON ts.id = tickets.to_stop_id").
		Where("tickets.trip_id = ? AND tickets.seat_number = ?", tripID, seatNumber).
		Scan(&occupants).
		Error
	return occupants, err
}

func holdOccupants(tx *gorm.DB, tripID uint, seatNumber string, now time.Time) ([]occupant, error) {
	var occupants []occupant
	err := tx.
		Model(&models.SeatHold{}).
		Select("'hold' AS kind, seat_holds.id AS hold_id, seat_holds.seat_number, seat_holds.from_sequence AS from_seq, seat_holds.to_sequence AS to_seq, fs.name AS from_stop, ts.name AS to_stop, seat_holds.expires_at").
		Joins("LEFT JOIN stops fs ON fs.id = seat_holds.from_stop_id").
		Joins("LEFT JOIN stops ts ON ts.id = seat_holds.to_stop_id").
		Where("seat_holds.trip_id = ? AND seat_holds.seat_number = ? AND seat_holds.expires_at > ?", tripID, seatNumber, now).
		Scan(&occupants).
		Error
	return occupants, err
}

// firstConflict applies the shared overlap predicate to a set of occupants.
// The exclusion id lets a hold update skip its own row; expiry is re-checked
// here so the answer never depends on how the rows were fetched.
func firstConflict(candidate Segment, occupants []occupant, excludeHoldID uint, now time.Time) *occupant {
	for i := range occupants {
		o := occupants[i]
		if o.Kind == occupantHold {
			if excludeHoldID != 0 && o.HoldID == excludeHoldID {
				continue
			}
			if o.ExpiresAt == nil || !o.ExpiresAt.After(now) {
				continue
			}
		}
		if candidate.Overlaps(o.segment()) {
			return &o
		}
	}
	return nil
}

// checkSeat reports the first conflicting occupancy record for the candidate
// segment, tickets before holds, or nil when the seat-segment is free.
func (e *Engine) checkSeat(tx *gorm.DB, tripID uint, seatNumber string, candidate Segment, excludeHoldID uint, now time.Time) (*types.ConflictError, error) {
	for _, fetch := range []func(*gorm.DB, uint, string, time.Time) ([]occupant, error){ticketOccupants, holdOccupants} {
		occupants, err := fetch(tx, tripID, seatNumber, now)
		if err != nil {
			return nil, err
		}
		if hit := firstConflict(candidate, occupants, excludeHoldID, now); hit != nil {
			return &types.ConflictError{
				TripID:     tripID,
				SeatNumber: seatNumber,
				Reason:     hit.reason(seatNumber),
			}, nil
		}
	}
	return nil, nil
}

// IsSeatAvailable answers the diagnostic availability question for a candidate
// seat-segment. The reason string comes from the same predicate as the
// boolean, so the two can never disagree.
func (e *Engine) IsSeatAvailable(tripID uint, seatNumber string, fromStopID, toStopID *uint) (bool, string, error) {
	available := false
	reason := ""
	err := e.db.Transaction(func(tx *gorm.DB) error {
		trip, err := getTrip(tx, tripID)
		if err != nil {
			return err
		}
		if err := seatOnBus(tx, trip.BusID, seatNumber); err != nil {
			return err
		}
		candidate, err := resolveSegment(tx, trip.RouteID, fromStopID, toStopID)
		if err != nil {
			return err
		}
		conflict, err := e.checkSeat(tx, tripID, seatNumber, candidate, 0, time.Now())
		if err != nil {
			return err
		}
		if conflict != nil {
			reason = conflict.Reason
			return nil
		}
		available = true
		return nil
	})
	if err != nil {
		return false, "", err
	}
	return available, reason, nil
}

// SeatAvailability maps every seat of the trip's bus to whether the candidate
// segment is free on it. Two queries for the whole trip, then the same
// in-memory predicate per seat.
func (e *Engine) SeatAvailability(tripID uint, fromStopID, toStopID *uint) (map[string]bool, error) {
	seats := map[string]bool{}
	err := e.db.Transaction(func(tx *gorm.DB) error {
		trip, err := getTrip(tx, tripID)
		if err != nil {
			return err
		}
		candidate, err := resolveSegment(tx, trip.RouteID, fromStopID, toStopID)
		if err != nil {
			return err
		}
		var busSeats []models.BusSeat
		if err := tx.Where(&models.BusSeat{BusID: trip.BusID}).Find(&busSeats).Error; err != nil {
			return err
		}
		now := time.Now()
		occupantsBySeat := map[string][]occupant{}

		var tickets []occupant
		if err := saleBlockingScope(tx).
			Select("'ticket' AS kind, tickets.seat_number, tickets.from_sequence AS from_seq, tickets.to_sequence AS to_seq").
			Where("tickets.trip_id = ?", tripID).
			Scan(&tickets).
			Error; err != nil {
			return err
		}
		var holds []occupant
		if err := tx.
			Model(&models.SeatHold{}).
			Select("'hold' AS kind, seat_holds.id AS hold_id, seat_holds.seat_number, seat_holds.from_sequence AS from_seq, seat_holds.to_sequence AS to_seq, seat_holds.expires_at").
			Where("seat_holds.trip_id = ? AND seat_holds.expires_at > ?", tripID, now).
			Scan(&holds).
			Error; err != nil {
			return err
		}
		for _, o := range append(tickets, holds...) {
			occupantsBySeat[o.SeatNumber] = append(occupantsBySeat[o.SeatNumber], o)
		}
		for _, seat := range busSeats {
			seats[seat.Number] = firstConflict(candidate, occupantsBySeat[seat.Number], 0, now) == nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seats, nil
}
