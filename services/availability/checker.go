package availability

import (
	"context"
	"fmt"
	"time"

	bookingModel "keyless-stay/models/booking"

	"gorm.io/gorm"
)

// Checker answers whether a room is free over a stay range
type Checker struct {
	DB *gorm.DB
}

// NewChecker creates a new availability checker
func NewChecker(db *gorm.DB) *Checker {
	return &Checker{DB: db}
}

// WithTx returns a copy bound to tx
func (c *Checker) WithTx(tx *gorm.DB) *Checker {
	return &Checker{DB: tx}
}

// IsAvailable scans the room's pending, confirmed and checked-in bookings and
// returns false at the first overlap. excludeBookingID skips the booking being edited.
func (c *Checker) IsAvailable(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error) {
	query := c.DB.WithContext(ctx).
		Select("id", "check_in", "check_out", "status").
		Where("room_id = ? AND status IN ?", roomID, bookingModel.BlockingStatuses())
	if excludeBookingID != "" {
		query = query.Where("id <> ?", excludeBookingID)
	}

	var bookings []bookingModel.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return false, fmt.Errorf("failed to load bookings for room %s: %w", roomID, err)
	}

	for _, b := range bookings {
		if b.Overlaps(checkIn, checkOut) {
			return false, nil
		}
	}
	return true, nil
}
