package utils

import (
	"bts/src/types"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTicketQRPayload(t *testing.T) {
	ts := time.Unix(1735689600, 0)
	assert.Equal(t, "TICKET-42-1735689600", TicketQRPayload(42, ts))
}

func TestNewPaymentReference(t *testing.T) {
	ref := NewPaymentReference()
	assert.Regexp(t, regexp.MustCompile(`^PAY-[0-9a-f-]{8}$`), ref)
	assert.NotEqual(t, ref, NewPaymentReference())
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", types.NotFoundError{Resource: "trip", ID: 1}, http.StatusNotFound},
		{"gorm record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"validation", types.ValidationError{Field: "segment", Msg: "bad"}, http.StatusBadRequest},
		{"conflict", types.ConflictError{TripID: 1, SeatNumber: "12A"}, http.StatusConflict},
		{"capacity", types.CapacityError{TripID: 1, Occupied: 20, Capacity: 20}, http.StatusConflict},
		{"precondition", types.PreconditionError{Op: "pay", Msg: "already paid"}, http.StatusPreconditionFailed},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ErrorStatus(c.err))
		})
	}
}
