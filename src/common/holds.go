package common

import (
	"bts/src/models"
	"bts/src/types"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
)

type ReserveSeatParams struct {
	AccountID  uint
	TripID     uint
	SeatNumber string
	FromStopID *uint
	ToStopID   *uint
	ExpiresAt  *time.Time
}

// ReserveSeat creates a time-limited hold on a seat-segment. Check and insert
// run under the trip+seat advisory lock in one transaction.
func (e *Engine) ReserveSeat(p ReserveSeatParams) (*models.SeatHold, error) {
	var hold *models.SeatHold
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := lockTripSeat(tx, p.TripID, p.SeatNumber); err != nil {
			return err
		}
		trip, err := getTrip(tx, p.TripID)
		if err != nil {
			return err
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
		expiresAt := now.Add(e.holdWindow())
		if p.ExpiresAt != nil {
			expiresAt = *p.ExpiresAt
		}
		h := models.SeatHold{
			AccountID:    p.AccountID,
			TripID:       p.TripID,
			SeatNumber:   p.SeatNumber,
			FromStopID:   p.FromStopID,
			ToStopID:     p.ToStopID,
			FromSequence: candidate.From,
			ToSequence:   candidate.To,
			ExpiresAt:    expiresAt,
		}
		if err := tx.Create(&h).Error; err != nil {
			return err
		}
		hold = &h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hold, nil
}

type HoldPatch struct {
	TripID     *uint
	SeatNumber *string
	FromStopID *uint
	ToStopID   *uint
	ExpiresAt  *time.Time
}

// applyHoldPatch copies the supplied fields onto the hold and reports whether
// the overlap check must run again: any identity field (trip, seat, segment)
// changed, or the expiry moved forward. An expired hold is invisible to every
// overlap query, so extending its expiry can revive it over a segment sold in
// the meantime; only shortening the expiry is always safe.
func applyHoldPatch(h *models.SeatHold, p HoldPatch) bool {
	changed := false
	if p.TripID != nil && *p.TripID != h.TripID {
		h.TripID = *p.TripID
		changed = true
	}
	if p.SeatNumber != nil && *p.SeatNumber != h.SeatNumber {
		h.SeatNumber = *p.SeatNumber
		changed = true
	}
	if p.FromStopID != nil && (h.FromStopID == nil || *p.FromStopID != *h.FromStopID) {
		h.FromStopID = p.FromStopID
		changed = true
	}
	if p.ToStopID != nil && (h.ToStopID == nil || *p.ToStopID != *h.ToStopID) {
		h.ToStopID = p.ToStopID
		changed = true
	}
	if p.ExpiresAt != nil {
		if p.ExpiresAt.After(h.ExpiresAt) {
			changed = true
		}
		h.ExpiresAt = *p.ExpiresAt
	}
	return changed
}

// UpdateHold edits a hold in place. When trip, seat or segment change, or the
// expiry moves forward, the overlap check runs again excluding the hold's own
// id; without that exclusion every update would conflict with itself.
func (e *Engine) UpdateHold(holdID uint, accountID uint, p HoldPatch) (*models.SeatHold, error) {
	var hold *models.SeatHold
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var h models.SeatHold
		if err := tx.Where(&models.SeatHold{ID: holdID, AccountID: accountID}).First(&h).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFoundError{Resource: "hold", ID: holdID}
			}
			return err
		}
		if applyHoldPatch(&h, p) {
			if err := lockTripSeat(tx, h.TripID, h.SeatNumber); err != nil {
				return err
			}
			trip, err := getTrip(tx, h.TripID)
			if err != nil {
				return err
			}
			if err := seatOnBus(tx, trip.BusID, h.SeatNumber); err != nil {
				return err
			}
			candidate, err := resolveSegment(tx, trip.RouteID, h.FromStopID, h.ToStopID)
			if err != nil {
				return err
			}
			conflict, err := e.checkSeat(tx, h.TripID, h.SeatNumber, candidate, h.ID, time.Now())
			if err != nil {
				return err
			}
			if conflict != nil {
				return *conflict
			}
			h.FromSequence = candidate.From
			h.ToSequence = candidate.To
		}
		if err := tx.Save(&h).Error; err != nil {
			return err
		}
		hold = &h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hold, nil
}

func (e *Engine) DeleteHold(holdID uint, accountID uint) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where(&models.SeatHold{ID: holdID, AccountID: accountID}).Delete(&models.SeatHold{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.NotFoundError{Resource: "hold", ID: holdID}
		}
		return nil
	})
}

func (e *Engine) ListHolds(accountID uint) ([]models.SeatHold, error) {
	var holds []models.SeatHold
	err := e.db.
		Where(&models.SeatHold{AccountID: accountID}).
		Where("expires_at > ?", time.Now()).
		Preload("Trip").
		Order("expires_at asc").
		Find(&holds).
		Error
	return holds, err
}

// ReapExpiredHolds deletes holds that expired over an hour ago. Purely
// hygiene: expired rows are already invisible to every overlap query.
func (e *Engine) ReapExpiredHolds() {
	cutoff := time.Now().Add(-time.Hour)
	res := e.db.Where("expires_at < ?", cutoff).Delete(&models.SeatHold{})
	if res.Error != nil {
		log.Printf("[holds] reaper error: %s\n", res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[holds] reaped %d expired holds\n", res.RowsAffected)
	}
}
