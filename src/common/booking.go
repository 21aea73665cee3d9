package common

import (
	"bts/src/models"
	"bts/src/types"
	"bts/src/utils"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
)

// Past this fraction of the bus capacity, new bookings queue for dispatcher
// approval instead of auto-confirming.
const approvalThreshold = 0.95

// occupiedSeatsInSegment counts distinct seats with at least one sale-blocking
// ticket overlapping the segment. A seat blocked for any part of the requested
// span counts: it cannot be sold for the whole span.
func occupiedSeatsInSegment(tx *gorm.DB, tripID uint, seg Segment) (int64, error) {
	var count int64
	err := saleBlockingScope(tx).
		Where("tickets.trip_id = ? AND tickets.from_sequence < ? AND tickets.to_sequence > ?", tripID, seg.To, seg.From).
		Distinct("tickets.seat_number").
		Count(&count).
		Error
	return count, err
}

// admissionStatus applies the capacity gate: full segment fails outright,
// near-full (>= 95%) queues the ticket for approval.
func admissionStatus(tripID uint, occupied int64, capacity uint) (types.TicketStatus, error) {
	if capacity == 0 || occupied >= int64(capacity) {
		return "", types.CapacityError{TripID: tripID, Occupied: occupied, Capacity: capacity}
	}
	if float64(occupied)/float64(capacity) >= approvalThreshold {
		return types.TICKET_PENDING_APPROVAL, nil
	}
	return types.TICKET_CONFIRMED, nil
}

func cancelGuard(t *models.Ticket, departure time.Time, now time.Time, cutoff time.Duration) error {
	switch t.Status {
	case types.TICKET_CANCELLED:
		return types.PreconditionError{Op: "cancel", Msg: "ticket is already cancelled"}
	case types.TICKET_NO_SHOW:
		return types.PreconditionError{Op: "cancel", Msg: "ticket is closed as a no-show"}
	}
	if now.After(departure) {
		return types.PreconditionError{Op: "cancel", Msg: "trip has already departed"}
	}
	if departure.Sub(now) < cutoff {
		return types.PreconditionError{Op: "cancel", Msg: "too close to departure to cancel"}
	}
	return nil
}

func payGuard(t *models.Ticket) error {
	if t.Status == types.TICKET_CANCELLED {
		return types.PreconditionError{Op: "pay", Msg: "ticket is cancelled"}
	}
	if t.PaymentStatus == types.PAYMENT_COMPLETED {
		return types.PreconditionError{Op: "pay", Msg: "ticket is already paid"}
	}
	return nil
}

func checkInGuard(t *models.Ticket, departure time.Time, now time.Time) error {
	switch t.Status {
	case types.TICKET_CANCELLED:
		return types.PreconditionError{Op: "check-in", Msg: "ticket is cancelled"}
	case types.TICKET_NO_SHOW:
		return types.PreconditionError{Op: "check-in", Msg: "ticket is closed as a no-show"}
	}
	if t.PaymentStatus != types.PAYMENT_COMPLETED {
		return types.PreconditionError{Op: "check-in", Msg: "ticket is not paid"}
	}
	if t.CheckedIn {
		return types.PreconditionError{Op: "check-in", Msg: "ticket is already checked in"}
	}
	if now.After(departure) {
		return types.PreconditionError{Op: "check-in", Msg: "trip has already departed"}
	}
	return nil
}

type CreateTicketParams struct {
	AccountID       uint
	TripID          uint
	SeatNumber      string
	FromStopID      *uint
	ToStopID        *uint
	Category        types.PassengerCategory
	PaymentMethod   string
	BaggageWeightKg *float64
}

// CreateTicket runs the booking state machine's entry: overlap check, segment
// capacity gate, approval throttle, fare derivation, then the insert — all
// under the trip+seat advisory lock so two requests for the same seat-segment
// serialize.
func (e *Engine) CreateTicket(p CreateTicketParams) (*models.Ticket, error) {
	if !p.Category.Valid() {
		return nil, types.ValidationError{Field: "category", Msg: "unknown passenger category"}
	}
	var ticket *models.Ticket
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := lockTripSeat(tx, p.TripID, p.SeatNumber); err != nil {
			return err
		}
		trip, err := getTrip(tx, p.TripID)
		if err != nil {
			return err
		}
		if trip.Bus == nil || trip.Route == nil {
			return types.NotFoundError{Resource: "trip", ID: p.TripID}
		}
		if err := seatOnBus(tx, trip.BusID, p.SeatNumber); err != nil {
			return err
		}
		candidate, err := resolveSegment(tx, trip.RouteID, p.FromStopID, p.ToStopID)
		if err != nil {
			return err
		}
		now := time.Now()
		conflict, err := e.checkSeat(tx, p.TripID, p.SeatNumber, candidate, 0, now)
		if err != nil {
			return err
		}
		if conflict != nil {
			return *conflict
		}
		occupied, err := occupiedSeatsInSegment(tx, p.TripID, candidate)
		if err != nil {
			return err
		}
		status, err := admissionStatus(p.TripID, occupied, trip.Bus.Capacity)
		if err != nil {
			return err
		}
		rule, err := e.GetOrCreateFareRule(tx, trip.Route)
		if err != nil {
			return err
		}
		price := CalculatePrice(trip.Route, rule, p.Category)
		var baggageFee float64
		if p.BaggageWeightKg != nil {
			baggageFee, err = e.CalculateBaggageFee(price, *p.BaggageWeightKg)
			if err != nil {
				return err
			}
		}
		t := models.Ticket{
			AccountID:         p.AccountID,
			TripID:            p.TripID,
			SeatNumber:        p.SeatNumber,
			FromStopID:        p.FromStopID,
			ToStopID:          p.ToStopID,
			FromSequence:      candidate.From,
			ToSequence:        candidate.To,
			Status:            status,
			PassengerCategory: p.Category,
			Price:             price,
			BaggageWeightKg:   p.BaggageWeightKg,
			BaggageFee:        baggageFee,
			PaymentStatus:     types.PAYMENT_PENDING,
			PaymentMethod:     p.PaymentMethod,
		}
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		ticket = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func getTicketForAccount(tx *gorm.DB, ticketID, accountID uint) (*models.Ticket, error) {
	var t models.Ticket
	if err := tx.
		Preload("Trip").
		Where(&models.Ticket{ID: ticketID, AccountID: accountID}).
		First(&t).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFoundError{Resource: "ticket", ID: ticketID}
		}
		return nil, err
	}
	return &t, nil
}

// CancelTicket is owner-only and refused past departure or inside the
// configured cutoff window. The row is kept; only the status changes.
func (e *Engine) CancelTicket(ticketID, accountID uint) (*models.Ticket, error) {
	var ticket *models.Ticket
	err := e.db.Transaction(func(tx *gorm.DB) error {
		t, err := getTicketForAccount(tx, ticketID, accountID)
		if err != nil {
			return err
		}
		if t.Trip == nil {
			return types.NotFoundError{Resource: "trip", ID: t.TripID}
		}
		if err := cancelGuard(t, t.Trip.DepartureTime, time.Now(), e.cancelCutoff()); err != nil {
			return err
		}
		t.Status = types.TICKET_CANCELLED
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// transitionPending moves a PENDING_APPROVAL ticket to the given status; any
// other starting status is a precondition error.
func (e *Engine) transitionPending(ticketID uint, to types.TicketStatus) (*models.Ticket, error) {
	var ticket *models.Ticket
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var t models.Ticket
		if err := tx.Where(&models.Ticket{ID: ticketID}).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFoundError{Resource: "ticket", ID: ticketID}
			}
			return err
		}
		if t.Status != types.TICKET_PENDING_APPROVAL {
			return types.PreconditionError{Op: "approve", Msg: "ticket is not pending approval"}
		}
		t.Status = to
		if err := tx.Save(&t).Error; err != nil {
			return err
		}
		ticket = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (e *Engine) ApproveTicket(ticketID uint) (*models.Ticket, error) {
	return e.transitionPending(ticketID, types.TICKET_CONFIRMED)
}

func (e *Engine) RejectPendingTicket(ticketID uint) (*models.Ticket, error) {
	return e.transitionPending(ticketID, types.TICKET_CANCELLED)
}

func markPaid(tx *gorm.DB, t *models.Ticket, paymentRef *string, now time.Time) error {
	t.PaymentStatus = types.PAYMENT_COMPLETED
	if paymentRef != nil {
		t.PaymentReference = paymentRef
	}
	if t.QRCode == nil {
		code := utils.TicketQRPayload(t.ID, now)
		t.QRCode = &code
	}
	return tx.Save(t).Error
}

func (e *Engine) MarkTicketPaid(ticketID, accountID uint, paymentRef *string) (*models.Ticket, error) {
	var ticket *models.Ticket
	err := e.db.Transaction(func(tx *gorm.DB) error {
		t, err := getTicketForAccount(tx, ticketID, accountID)
		if err != nil {
			return err
		}
		if err := payGuard(t); err != nil {
			return err
		}
		if err := markPaid(tx, t, paymentRef, time.Now()); err != nil {
			return err
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// MarkTicketsPaid validates every ticket before mutating any of them, so a
// batch either settles completely or not at all.
func (e *Engine) MarkTicketsPaid(ticketIDs []uint, accountID uint, paymentRef *string) ([]models.Ticket, error) {
	if len(ticketIDs) == 0 {
		return nil, types.ValidationError{Field: "tickets", Msg: "empty ticket list"}
	}
	var tickets []models.Ticket
	err := e.db.Transaction(func(tx *gorm.DB) error {
		loaded := make([]*models.Ticket, 0, len(ticketIDs))
		for _, id := range ticketIDs {
			t, err := getTicketForAccount(tx, id, accountID)
			if err != nil {
				return err
			}
			if err := payGuard(t); err != nil {
				return err
			}
			loaded = append(loaded, t)
		}
		now := time.Now()
		for _, t := range loaded {
			if err := markPaid(tx, t, paymentRef, now); err != nil {
				return err
			}
			tickets = append(tickets, *t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// CheckInTicket validates the scanned QR payload and records the boarding.
func (e *Engine) CheckInTicket(qrCode string) (*models.Ticket, error) {
	var ticket *models.Ticket
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var t models.Ticket
		if err := tx.
			Preload("Trip").
			Where("qr_code = ?", qrCode).
			First(&t).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFoundError{Resource: "ticket", ID: qrCode}
			}
			return err
		}
		if t.Trip == nil {
			return types.NotFoundError{Resource: "trip", ID: t.TripID}
		}
		now := time.Now()
		if err := checkInGuard(&t, t.Trip.DepartureTime, now); err != nil {
			return err
		}
		t.CheckedIn = true
		t.CheckedInAt = &now
		if err := tx.Save(&t).Error; err != nil {
			return err
		}
		ticket = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (e *Engine) ListTickets(accountID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := e.db.
		Where(&models.Ticket{AccountID: accountID}).
		Preload("Trip").
		Order("created_at desc").
		Find(&tickets).
		Error
	return tickets, err
}

func (e *Engine) ListPendingTickets() ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := e.db.
		Where(&models.Ticket{Status: types.TICKET_PENDING_APPROVAL}).
		Preload("Trip").
		Order("created_at asc").
		Find(&tickets).
		Error
	return tickets, err
}

// ExpireNoShows closes confirmed, never-checked-in tickets of trips that
// departed over an hour ago. Scheduled; correctness never depends on it.
func (e *Engine) ExpireNoShows() {
	cutoff := time.Now().Add(-time.Hour)
	res := e.db.
		Model(&models.Ticket{}).
		Where("status = ? AND checked_in = ?", types.TICKET_CONFIRMED, false).
		Where("trip_id IN (?)", e.db.Model(&models.Trip{}).Select("id").Where("departure_time < ?", cutoff)).
		Update("status", types.TICKET_NO_SHOW)
	if res.Error != nil {
		log.Printf("[tickets] no-show sweep error: %s\n", res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[tickets] marked %d tickets as no-show\n", res.RowsAffected)
	}
}
