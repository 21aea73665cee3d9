package common

import (
	"bts/src/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func uintp(v uint) *uint { return &v }

func TestApplyHoldPatch(t *testing.T) {
	base := func() models.SeatHold {
		return models.SeatHold{
			ID:         1,
			TripID:     10,
			SeatNumber: "12A",
			FromStopID: uintp(3),
			ToStopID:   uintp(5),
			ExpiresAt:  time.Now().Add(10 * time.Minute),
		}
	}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		h := base()
		assert.False(t, applyHoldPatch(&h, HoldPatch{}))
		assert.Equal(t, base().SeatNumber, h.SeatNumber)
	})

	t.Run("seat change is an identity change", func(t *testing.T) {
		h := base()
		seat := "14C"
		assert.True(t, applyHoldPatch(&h, HoldPatch{SeatNumber: &seat}))
		assert.Equal(t, "14C", h.SeatNumber)
	})

	t.Run("same seat is not a change", func(t *testing.T) {
		h := base()
		seat := "12A"
		assert.False(t, applyHoldPatch(&h, HoldPatch{SeatNumber: &seat}))
	})

	t.Run("trip change is an identity change", func(t *testing.T) {
		h := base()
		trip := uint(11)
		assert.True(t, applyHoldPatch(&h, HoldPatch{TripID: &trip}))
		assert.Equal(t, uint(11), h.TripID)
	})

	t.Run("segment change is an identity change", func(t *testing.T) {
		h := base()
		assert.True(t, applyHoldPatch(&h, HoldPatch{FromStopID: uintp(4)}))
		assert.Equal(t, uint(4), *h.FromStopID)
	})

	t.Run("same segment is not a change", func(t *testing.T) {
		h := base()
		assert.False(t, applyHoldPatch(&h, HoldPatch{FromStopID: uintp(3), ToStopID: uintp(5)}))
	})

	t.Run("extending the expiry forces a re-check", func(t *testing.T) {
		h := base()
		later := time.Now().Add(20 * time.Minute)
		assert.True(t, applyHoldPatch(&h, HoldPatch{ExpiresAt: &later}))
		assert.True(t, h.ExpiresAt.Equal(later))
	})

	t.Run("shortening the expiry does not", func(t *testing.T) {
		h := base()
		sooner := time.Now().Add(time.Minute)
		assert.False(t, applyHoldPatch(&h, HoldPatch{ExpiresAt: &sooner}))
		assert.True(t, h.ExpiresAt.Equal(sooner))
	})
}

// An expired hold is invisible to overlap queries, so its segment can be sold
// out from under it. A patch that moves the expiry back into the future must
// therefore re-run the overlap check, or the revived hold and the ticket would
// both be active on the same seat-segment.
func TestExpiredHoldRevivalRechecks(t *testing.T) {
	now := time.Now()
	h := models.SeatHold{
		ID:           1,
		TripID:       10,
		SeatNumber:   "12A",
		FromSequence: 1,
		ToSequence:   3,
		ExpiresAt:    now.Add(-time.Minute),
	}

	later := now.Add(10 * time.Minute)
	assert.True(t, applyHoldPatch(&h, HoldPatch{ExpiresAt: &later}))

	soldMeanwhile := []occupant{
		{Kind: occupantTicket, SeatNumber: "12A", FromSeq: 1, ToSeq: 3},
	}
	hit := firstConflict(Segment{From: h.FromSequence, To: h.ToSequence}, soldMeanwhile, h.ID, now)
	assert.NotNil(t, hit, "the re-check must see the ticket sold while the hold was expired")
}
