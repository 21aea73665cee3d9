package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestFirstConflict(t *testing.T) {
	now := time.Now()
	future := now.Add(10 * time.Minute)
	past := now.Add(-10 * time.Minute)

	t.Run("overlapping ticket conflicts", func(t *testing.T) {
		occupants := []occupant{
			{Kind: occupantTicket, SeatNumber: "12A", FromSeq: 1, ToSeq: 3},
		}
		hit := firstConflict(Segment{From: 2, To: 4}, occupants, 0, now)
		assert.NotNil(t, hit)
	})

	t.Run("disjoint ticket does not conflict", func(t *testing.T) {
		occupants := []occupant{
			{Kind: occupantTicket, SeatNumber: "12A", FromSeq: 1, ToSeq: 3},
		}
		hit := firstConflict(Segment{From: 3, To: 4}, occupants, 0, now)
		assert.Nil(t, hit)
	})

	t.Run("active hold conflicts", func(t *testing.T) {
		occupants := []occupant{
			{Kind: occupantHold, HoldID: 7, SeatNumber: "12A", FromSeq: 1, ToSeq: 3, ExpiresAt: &future},
		}
		hit := firstConflict(Segment{From: 2, To: 4}, occupants, 0, now)
		assert.NotNil(t, hit)
	})

	t.Run("expired hold never conflicts", func(t *testing.T) {
		occupants := []occupant{
			{Kind: occupantHold, HoldID: 7, SeatNumber: "12A", FromSeq: 1, ToSeq: 3, ExpiresAt: &past},
		}
		hit := firstConflict(Segment{From: 2, To: 4}, occupants, 0, now)
		assert.Nil(t, hit)
	})

	t.Run("a hold never conflicts with itself", func(t *testing.T) {
		occupants := []occupant{
			{Kind: occupantHold, HoldID: 7, SeatNumber: "12A", FromSeq: 1, ToSeq: 3, ExpiresAt: &future},
		}
		hit := firstConflict(Segment{From: 1, To: 3}, occupants, 7, now)
		assert.Nil(t, hit)

		hit = firstConflict(Segment{From: 1, To: 3}, occupants, 8, now)
		assert.NotNil(t, hit)
	})

	t.Run("tickets are reported before later holds in the slice", func(t *testing.T) {
		occupants := []occupant{
			{Kind: occupantTicket, SeatNumber: "12A", FromSeq: 1, ToSeq: 3},
			{Kind: occupantHold, HoldID: 7, SeatNumber: "12A", FromSeq: 1, ToSeq: 3, ExpiresAt: &future},
		}
		hit := firstConflict(Segment{From: 1, To: 3}, occupants, 0, now)
		assert.NotNil(t, hit)
		assert.Equal(t, occupantTicket, hit.Kind)
	})
}

func TestOccupantReason(t *testing.T) {
	future := time.Now().Add(10 * time.Minute)

	t.Run("sold segment names both stops", func(t *testing.T) {
		o := occupant{Kind: occupantTicket, FromStop: strptr("Centro"), ToStop: strptr("Norte")}
		assert.Equal(t, "seat 12A is already sold from Centro to Norte", o.reason("12A"))
	})

	t.Run("unbounded ends fall back to route endpoints", func(t *testing.T) {
		o := occupant{Kind: occupantTicket}
		assert.Equal(t, "seat 12A is already sold from the start of the route to the end of the route", o.reason("12A"))
	})

	t.Run("held segment includes the expiry", func(t *testing.T) {
		o := occupant{Kind: occupantHold, FromStop: strptr("Centro"), ToStop: strptr("Norte"), ExpiresAt: &future}
		reason := o.reason("3B")
		assert.Contains(t, reason, "seat 3B is held from Centro to Norte until ")
		assert.Contains(t, reason, future.Format(time.RFC3339))
	})
}
