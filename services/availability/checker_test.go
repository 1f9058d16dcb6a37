package availability

import (
	"context"
	"testing"

	"keyless-stay/database/testdb"
	bookingModel "keyless-stay/models/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAvailable(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	d := testdb.Date

	p := testdb.SeedProperty(t, db, "owner-1", "baan-suan")
	room := testdb.SeedRoom(t, db, p.ID, "101", 500)
	existing := testdb.SeedBooking(t, db, room, d(2025, 3, 10), d(2025, 3, 12), bookingModel.BookingStatusConfirmed)

	checker := NewChecker(db)

	cases := []struct {
		name     string
		checkIn  int
		checkOut int
		want     bool
	}{
		{"before", 8, 10, true},
		{"after", 12, 14, true},
		{"overlapping start", 9, 11, false},
		{"overlapping end", 11, 13, false},
		{"inside", 10, 11, false},
		{"enclosing", 9, 13, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := checker.IsAvailable(ctx, room.ID, d(2025, 3, tc.checkIn), d(2025, 3, tc.checkOut), "")
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}

	t.Run("excluding itself", func(t *testing.T) {
		ok, err := checker.IsAvailable(ctx, room.ID, d(2025, 3, 11), d(2025, 3, 13), existing.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestIsAvailableIgnoresClosedBookings(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	d := testdb.Date

	p := testdb.SeedProperty(t, db, "owner-1", "baan-suan")
	room := testdb.SeedRoom(t, db, p.ID, "101", 500)
	testdb.SeedBooking(t, db, room, d(2025, 4, 1), d(2025, 4, 3), bookingModel.BookingStatusCancelled)
	other := testdb.SeedRoom(t, db, p.ID, "102", 500)
	testdb.SeedBooking(t, db, other, d(2025, 4, 2), d(2025, 4, 4), bookingModel.BookingStatusCheckedOut)

	checker := NewChecker(db)

	ok, err := checker.IsAvailable(ctx, room.ID, d(2025, 4, 1), d(2025, 4, 3), "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = checker.IsAvailable(ctx, other.ID, d(2025, 4, 2), d(2025, 4, 4), "")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAvailablePendingBlocks(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	d := testdb.Date

	p := testdb.SeedProperty(t, db, "owner-1", "baan-suan")
	room := testdb.SeedRoom(t, db, p.ID, "101", 500)
	testdb.SeedBooking(t, db, room, d(2025, 5, 1), d(2025, 5, 2), bookingModel.BookingStatusPending)

	ok, err := NewChecker(db).IsAvailable(ctx, room.ID, d(2025, 5, 1), d(2025, 5, 2), "")
	require.NoError(t, err)
	assert.False(t, ok)
}
