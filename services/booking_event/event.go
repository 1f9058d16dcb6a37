package booking_event

import (
	bookingModel "keyless-stay/models/booking"

	"gorm.io/gorm"
)

// RecordStatusChange appends one row to booking_status_events for the booking's current status.
// from is empty when the booking was just created.
func RecordStatusChange(tx *gorm.DB, b *bookingModel.Booking, from bookingModel.BookingStatus, note string, createdBy string) error {
	ev := bookingModel.BookingStatusEvent{
		BookingID:  b.ID,
		FromStatus: from,
		ToStatus:   b.Status,
		Note:       note,
		CreatedBy:  createdBy,
	}
	return tx.Create(&ev).Error
}

// History returns the status changes of a booking, oldest first.
func History(db *gorm.DB, bookingID string) ([]bookingModel.BookingStatusEvent, error) {
	var events []bookingModel.BookingStatusEvent
	err := db.Where("booking_id = ?", bookingID).Order("id ASC").Find(&events).Error
	return events, err
}
