package property

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property is a lodging owned by one caller. Never hard-deleted.
type Property struct {
	ID           string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID      string                      `gorm:"type:varchar(255);not null;index" json:"owner_id"`
	Name         string                      `gorm:"type:varchar(255);not null" json:"name"`
	Slug         string                      `gorm:"type:varchar(255);not null;index" json:"slug"`
	Description  string                      `gorm:"type:text" json:"description,omitempty"`
	Address      string                      `gorm:"type:text" json:"address,omitempty"`
	Phone        string                      `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email        string                      `gorm:"type:varchar(255)" json:"email,omitempty"`
	Amenities    datatypes.JSONSlice[string] `json:"amenities"`
	CheckInTime  string                      `gorm:"type:varchar(5);not null;default:'14:00'" json:"check_in_time"`
	CheckOutTime string                      `gorm:"type:varchar(5);not null;default:'12:00'" json:"check_out_time"`
	TotalRooms   int                         `gorm:"not null;default:0" json:"total_rooms"`
	IsActive     bool                        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
