package booking

import (
	"time"
)

// BookingStatusEvent records one lifecycle transition of a booking
type BookingStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID string `gorm:"type:varchar(36);not null;index" json:"booking_id"`

	FromStatus BookingStatus `gorm:"size:20" json:"from_status,omitempty"`
	ToStatus   BookingStatus `gorm:"size:20;not null" json:"to_status"`
	Note       string        `gorm:"type:text" json:"note,omitempty"`
	CreatedBy  string        `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the BookingStatusEvent model
func (BookingStatusEvent) TableName() string {
	return "booking_status_events"
}
