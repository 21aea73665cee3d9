package common

import (
	"bts/src/models"
	"bts/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdmissionStatus(t *testing.T) {
	t.Run("plenty of room confirms immediately", func(t *testing.T) {
		status, err := admissionStatus(1, 5, 40)
		assert.Nil(t, err)
		assert.Equal(t, types.TICKET_CONFIRMED, status)
	})

	t.Run("just under the threshold still confirms", func(t *testing.T) {
		status, err := admissionStatus(1, 18, 20)
		assert.Nil(t, err)
		assert.Equal(t, types.TICKET_CONFIRMED, status)
	})

	t.Run("at the threshold queues for approval", func(t *testing.T) {
		status, err := admissionStatus(1, 19, 20)
		assert.Nil(t, err)
		assert.Equal(t, types.TICKET_PENDING_APPROVAL, status)
	})

	t.Run("full segment is a capacity error", func(t *testing.T) {
		_, err := admissionStatus(1, 20, 20)
		var cerr types.CapacityError
		assert.ErrorAs(t, err, &cerr)
		assert.Equal(t, int64(20), cerr.Occupied)
		assert.Equal(t, uint(20), cerr.Capacity)
	})

	t.Run("overbooked segment is a capacity error", func(t *testing.T) {
		_, err := admissionStatus(1, 21, 20)
		var cerr types.CapacityError
		assert.ErrorAs(t, err, &cerr)
	})

	t.Run("zero capacity is a capacity error", func(t *testing.T) {
		_, err := admissionStatus(1, 0, 0)
		var cerr types.CapacityError
		assert.ErrorAs(t, err, &cerr)
	})
}

func TestCancelGuard(t *testing.T) {
	now := time.Now()
	cutoff := 5 * time.Minute

	t.Run("allowed well before departure", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_CONFIRMED}
		err := cancelGuard(ticket, now.Add(10*time.Minute), now, cutoff)
		assert.Nil(t, err)
	})

	t.Run("refused inside the cutoff window", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_CONFIRMED}
		err := cancelGuard(ticket, now.Add(4*time.Minute), now, cutoff)
		var perr types.PreconditionError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("refused after departure", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_CONFIRMED}
		err := cancelGuard(ticket, now.Add(-time.Minute), now, cutoff)
		var perr types.PreconditionError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("refused when already cancelled", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_CANCELLED}
		err := cancelGuard(ticket, now.Add(time.Hour), now, cutoff)
		var perr types.PreconditionError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("refused for a no-show", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_NO_SHOW}
		err := cancelGuard(ticket, now.Add(time.Hour), now, cutoff)
		var perr types.PreconditionError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("pending approval can still cancel", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_PENDING_APPROVAL}
		err := cancelGuard(ticket, now.Add(time.Hour), now, cutoff)
		assert.Nil(t, err)
	})
}

func TestPayGuard(t *testing.T) {
	t.Run("unpaid confirmed ticket can pay", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_CONFIRMED, PaymentStatus: types.PAYMENT_PENDING}
		assert.Nil(t, payGuard(ticket))
	})

	t.Run("cancelled ticket cannot pay", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_CANCELLED, PaymentStatus: types.PAYMENT_PENDING}
		var perr types.PreconditionError
		assert.ErrorAs(t, payGuard(ticket), &perr)
	})

	t.Run("paying twice is refused", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_CONFIRMED, PaymentStatus: types.PAYMENT_COMPLETED}
		var perr types.PreconditionError
		assert.ErrorAs(t, payGuard(ticket), &perr)
	})
}

func TestCheckInGuard(t *testing.T) {
	now := time.Now()
	departure := now.Add(time.Hour)

	t.Run("paid confirmed ticket boards", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_CONFIRMED, PaymentStatus: types.PAYMENT_COMPLETED}
		assert.Nil(t, checkInGuard(ticket, departure, now))
	})

	t.Run("unpaid ticket cannot board", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_CONFIRMED, PaymentStatus: types.PAYMENT_PENDING}
		var perr types.PreconditionError
		assert.ErrorAs(t, checkInGuard(ticket, departure, now), &perr)
	})

	t.Run("double check-in is refused", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_CONFIRMED, PaymentStatus: types.PAYMENT_COMPLETED, CheckedIn: true}
		var perr types.PreconditionError
		assert.ErrorAs(t, checkInGuard(ticket, departure, now), &perr)
	})

	t.Run("cancelled ticket cannot board", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_CANCELLED, PaymentStatus: types.PAYMENT_COMPLETED}
		var perr types.PreconditionError
		assert.ErrorAs(t, checkInGuard(ticket, departure, now), &perr)
	})

	t.Run("boarding after departure is refused", func(t *testing.T) {
		ticket := &models.Ticket{Status: types.TICKET_CONFIRMED, PaymentStatus: types.PAYMENT_COMPLETED}
		var perr types.PreconditionError
		assert.ErrorAs(t, checkInGuard(ticket, now.Add(-time.Minute), now), &perr)
	})
}
