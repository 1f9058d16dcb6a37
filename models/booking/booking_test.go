package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlapsHalfOpen(t *testing.T) {
	stay := &Booking{CheckIn: day(2), CheckOut: day(4)}

	assert.True(t, stay.Overlaps(day(1), day(3)))
	assert.True(t, stay.Overlaps(day(1), day(5)))
	assert.True(t, stay.Overlaps(day(2), day(3)))
	assert.False(t, stay.Overlaps(day(4), day(6)), "check-in on the checkout day")
	assert.False(t, stay.Overlaps(day(1), day(2)), "checkout on the check-in day")
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusConfirmed))
	assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusCancelled))
	assert.False(t, BookingStatusCheckedIn.CanTransitionTo(BookingStatusCancelled))
	assert.False(t, BookingStatusCheckedOut.CanTransitionTo(BookingStatusConfirmed))
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.False(t, BookingStatus("archived").IsValid())
}
