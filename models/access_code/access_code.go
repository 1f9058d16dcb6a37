package access_code

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessCode is a numeric entry credential for one booking.
// Expiry is derived from ValidUntil and never stored.
type AccessCode struct {
	ID         string `gorm:"type:varchar(36);primaryKey" json:"id"`
	BookingID  string `gorm:"type:varchar(36);not null;index" json:"booking_id"`
	PropertyID string `gorm:"type:varchar(36);not null;index" json:"property_id"`
	RoomID     string `gorm:"type:varchar(36);not null" json:"room_id"`

	Code       string    `gorm:"type:varchar(16);not null;index" json:"code"`
	ValidFrom  time.Time `gorm:"not null" json:"valid_from"`
	ValidUntil time.Time `gorm:"not null;index" json:"valid_until"`

	IsUsed bool       `gorm:"not null;default:false" json:"is_used"`
	UsedAt *time.Time `json:"used_at,omitempty"`

	IsRevoked     bool       `gorm:"not null;default:false;index" json:"is_revoked"`
	RevokedAt     *time.Time `json:"revoked_at,omitempty"`
	RevokedReason string     `gorm:"type:varchar(255)" json:"revoked_reason,omitempty"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *AccessCode) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// IsExpired checks if the validity window has closed at now
func (a *AccessCode) IsExpired(now time.Time) bool {
	return now.After(a.ValidUntil)
}

// DisplayStatus summarises the code for listings
func (a *AccessCode) DisplayStatus(now time.Time) CodeStatus {
	switch {
	case a.IsRevoked:
		return CodeStatusRevoked
	case a.IsUsed:
		return CodeStatusUsed
	case a.IsExpired(now):
		return CodeStatusExpired
	case now.Before(a.ValidFrom):
		return CodeStatusScheduled
	default:
		return CodeStatusActive
	}
}

type CodeStatus string

const (
	CodeStatusActive    CodeStatus = "active"
	CodeStatusScheduled CodeStatus = "scheduled"
	CodeStatusUsed      CodeStatus = "used"
	CodeStatusRevoked   CodeStatus = "revoked"
	CodeStatusExpired   CodeStatus = "expired"
)
