package access_code

import (
	"time"
)

// EventAction names what happened to a code
type EventAction string

const (
	EventCreated     EventAction = "created"
	EventUsed        EventAction = "used"
	EventRevoked     EventAction = "revoked"
	EventExpired     EventAction = "expired"
	EventRegenerated EventAction = "regenerated"
	EventRescheduled EventAction = "rescheduled"
)

// Revocation reasons written by the system
const (
	ReasonRegenerated      = "Regenerated"
	ReasonCheckedOut       = "Checked out"
	ReasonBookingCancelled = "Booking cancelled"
	ReasonExpired          = "Expired"
)

// AccessCodeEvent is the audit trail of an access code
type AccessCodeEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	AccessCodeID string `gorm:"type:varchar(36);not null;index" json:"access_code_id"`
	BookingID    string `gorm:"type:varchar(36);not null;index" json:"booking_id"`
	PropertyID   string `gorm:"type:varchar(36);not null;index" json:"property_id"`
	Code         string `gorm:"type:varchar(16);not null" json:"code"`

	Action    EventAction `gorm:"type:varchar(20);not null;index" json:"action"`
	Details   string      `gorm:"type:text" json:"details,omitempty"`
	CreatedBy string      `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (AccessCodeEvent) TableName() string {
	return "access_code_events"
}
