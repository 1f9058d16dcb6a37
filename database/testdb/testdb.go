// Package testdb provides an in-memory SQLite database with the full schema for tests.
package testdb

import (
	"testing"
	"time"

	"keyless-stay/database"
	bookingModel "keyless-stay/models/booking"
	propertyModel "keyless-stay/models/property"
	roomModel "keyless-stay/models/room"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// New opens a fresh in-memory database and migrates it.
// A single connection is kept so every query sees the same memory database;
// code under test must use the transaction handle inside a transaction.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := database.NewGormConfig()
	cfg.Logger = gormLogger.Default.LogMode(gormLogger.Silent)

	db, err := gorm.Open(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// SeedProperty inserts an active property owned by ownerID.
func SeedProperty(t *testing.T, db *gorm.DB, ownerID, name string) *propertyModel.Property {
	t.Helper()
	p := &propertyModel.Property{
		OwnerID:  ownerID,
		Name:     name,
		Slug:     name,
		IsActive: true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// SeedRoom inserts an available room. The property counter is not touched.
func SeedRoom(t *testing.T, db *gorm.DB, propertyID, roomNumber string, price int64) *roomModel.Room {
	t.Helper()
	r := &roomModel.Room{
		PropertyID: propertyID,
		RoomNumber: roomNumber,
		Price:      decimal.NewFromInt(price),
		Capacity:   2,
		Status:     roomModel.RoomStatusAvailable,
		IsActive:   true,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

// SeedBooking inserts a booking in the given status without running any lifecycle side effects.
func SeedBooking(t *testing.T, db *gorm.DB, room *roomModel.Room, checkIn, checkOut time.Time, status bookingModel.BookingStatus) *bookingModel.Booking {
	t.Helper()
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	b := &bookingModel.Booking{
		BookingNumber: "BK-SEED-" + room.RoomNumber + "-" + checkIn.Format("20060102"),
		PropertyID:    room.PropertyID,
		RoomID:        room.ID,
		Guest: bookingModel.GuestInfo{
			FirstName:   "Somchai",
			LastName:    "Jaidee",
			PhoneNumber: "0812345678",
			Nationality: "Thai",
		},
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        nights,
		Adults:        1,
		RoomPrice:     room.Price,
		TotalPrice:    room.Price.Mul(decimal.NewFromInt(int64(nights))),
		PaidAmount:    decimal.Zero,
		PaymentStatus: bookingModel.PaymentStatusPending,
		Status:        status,
		Source:        bookingModel.BookingSourceDirect,
		CreatedBy:     "seed",
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
