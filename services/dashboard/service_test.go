package dashboard

import (
	"context"
	"testing"
	"time"

	"keyless-stay/database/testdb"
	bookingModel "keyless-stay/models/booking"
	roomModel "keyless-stay/models/room"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsAndTodayBookings(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	property := testdb.SeedProperty(t, db, "owner-1", "Baan Suan")
	testdb.SeedProperty(t, db, "owner-2", "Somebody Else")
	room101 := testdb.SeedRoom(t, db, property.ID, "101", 500)
	room102 := testdb.SeedRoom(t, db, property.ID, "102", 800)
	room103 := testdb.SeedRoom(t, db, property.ID, "103", 800)
	require.NoError(t, db.Model(room102).Update("status", roomModel.RoomStatusOccupied).Error)

	jan := func(day int) time.Time { return testdb.Date(2025, time.January, day) }

	arriving := testdb.SeedBooking(t, db, room103, jan(20), jan(22), bookingModel.BookingStatusConfirmed)
	walkIn := testdb.SeedBooking(t, db, room101, jan(20), jan(21), bookingModel.BookingStatusPending)
	leaving := testdb.SeedBooking(t, db, room102, jan(18), jan(20), bookingModel.BookingStatusCheckedIn)
	earlier := testdb.SeedBooking(t, db, room101, jan(5), jan(7), bookingModel.BookingStatusCheckedOut)
	testdb.SeedBooking(t, db, room102, jan(20), jan(21), bookingModel.BookingStatusCancelled)

	require.NoError(t, db.Model(arriving).Update("payment_status", bookingModel.PaymentStatusPaid).Error)
	require.NoError(t, db.Model(earlier).Update("payment_status", bookingModel.PaymentStatusPaid).Error)

	svc := NewDashboardService(db)
	svc.Now = func() time.Time { return time.Date(2025, time.January, 20, 9, 30, 0, 0, time.UTC) }

	stats, err := svc.Stats(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Properties)
	assert.Equal(t, int64(3), stats.Rooms.Total)
	assert.Equal(t, int64(1), stats.Rooms.Occupied)
	assert.Equal(t, int64(2), stats.Bookings.CheckIns)
	assert.Equal(t, int64(1), stats.Bookings.CheckOuts)
	assert.Equal(t, int64(3), stats.Bookings.Today)
	assert.True(t, stats.Revenue.Today.Equal(decimal.NewFromInt(1600)), stats.Revenue.Today.String())
	assert.True(t, stats.Revenue.Month.Equal(decimal.NewFromInt(2600)), stats.Revenue.Month.String())

	board, err := svc.TodayBookings(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, walkIn.ID, board[0].ID)
	assert.Equal(t, "101", board[0].RoomNumber)
	assert.Equal(t, arriving.ID, board[1].ID)
	assert.Equal(t, MovementCheckIn, board[1].Type)
	assert.Equal(t, leaving.ID, board[2].ID)
	assert.Equal(t, MovementCheckOut, board[2].Type)
}

func TestStatsForOwnerWithoutProperties(t *testing.T) {
	db := testdb.New(t)
	svc := NewDashboardService(db)

	stats, err := svc.Stats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, stats.Properties)
	assert.True(t, stats.Revenue.Month.IsZero())

	board, err := svc.TodayBookings(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, board)
}
