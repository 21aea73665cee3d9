package common

import (
	"bts/src/config"
	"bts/src/models"
	"bts/src/types"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"gorm.io/gorm"
)

// Engine is the segment reservation core. All multi-step writes run inside a
// single gorm transaction that first takes a per-(trip,seat) advisory lock, so
// the overlap check and the insert commit as one unit. Different seats and
// trips never contend.
type Engine struct {
	db       *gorm.DB
	settings config.Provider
}

func NewEngine(db *gorm.DB, settings config.Provider) *Engine {
	return &Engine{db: db, settings: settings}
}

func (e *Engine) holdWindow() time.Duration {
	minutes := e.settings.Int(config.KeyMaxSeatHoldMinutes, 10)
	return time.Duration(minutes) * time.Minute
}

func (e *Engine) cancelCutoff() time.Duration {
	minutes := e.settings.Int(config.KeyCancelBeforeMinutes, 5)
	return time.Duration(minutes) * time.Minute
}

// lockTripSeat takes a transaction-scoped postgres advisory lock keyed on the
// trip+seat pair. Row locks cannot cover this conflict because it is about the
// absence of overlapping rows, not about any particular existing row.
func lockTripSeat(tx *gorm.DB, tripID uint, seatNumber string) error {
	h := fnv.New64a()
	fmt.Fprintf(h, "trip:%d:seat:%s", tripID, seatNumber)
	return tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(h.Sum64())).Error
}

func getTrip(tx *gorm.DB, id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := tx.
		Preload("Route").
		Preload("Bus").
		Where(&models.Trip{ID: id}).
		First(&trip).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFoundError{Resource: "trip", ID: id}
		}
		return nil, err
	}
	return &trip, nil
}

func getStop(tx *gorm.DB, id uint) (*models.Stop, error) {
	var stop models.Stop
	if err := tx.Where(&models.Stop{ID: id}).First(&stop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFoundError{Resource: "stop", ID: id}
		}
		return nil, err
	}
	return &stop, nil
}

// seatOnBus checks the requested seat number against the trip bus's seat
// universe.
func seatOnBus(tx *gorm.DB, busID uint, seatNumber string) error {
	var count int64
	if err := tx.
		Model(&models.BusSeat{}).
		Where(&models.BusSeat{BusID: busID, Number: seatNumber}).
		Count(&count).
		Error; err != nil {
		return err
	}
	if count == 0 {
		return types.NotFoundError{Resource: "seat", ID: seatNumber}
	}
	return nil
}

// resolveSegment turns optional stop ids into a normalized segment over the
// route's sequence numbers. Stops must belong to the given route; missing ids
// are fatal for the request.
func resolveSegment(tx *gorm.DB, routeID uint, fromStopID, toStopID *uint) (Segment, error) {
	var fromSeq, toSeq *int32
	if fromStopID != nil {
		stop, err := getStop(tx, *fromStopID)
		if err != nil {
			return Segment{}, err
		}
		if stop.RouteID != routeID {
			return Segment{}, types.ValidationError{Field: "from_stop", Msg: "stop does not belong to the trip's route"}
		}
		fromSeq = &stop.Sequence
	}
	if toStopID != nil {
		stop, err := getStop(tx, *toStopID)
		if err != nil {
			return Segment{}, err
		}
		if stop.RouteID != routeID {
			return Segment{}, types.ValidationError{Field: "to_stop", Msg: "stop does not belong to the trip's route"}
		}
		toSeq = &stop.Sequence
	}
	return segmentFromSequences(fromSeq, toSeq)
}
