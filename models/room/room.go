package room

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room belongs to a property. Status is written by booking transitions
// and by the manual override, last write wins.
type Room struct {
	ID          string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID  string                      `gorm:"type:varchar(36);not null;index" json:"property_id"`
	RoomNumber  string                      `gorm:"type:varchar(50);not null" json:"room_number"`
	Name        string                      `gorm:"type:varchar(255)" json:"name,omitempty"`
	Type        string                      `gorm:"type:varchar(50)" json:"type,omitempty"`
	Floor       int                         `gorm:"default:1" json:"floor"`
	Price       decimal.Decimal             `gorm:"type:numeric(12,2);not null" json:"price"`
	Capacity    int                         `gorm:"not null;default:2" json:"capacity"`
	Amenities   datatypes.JSONSlice[string] `json:"amenities"`
	Status      RoomStatus                  `gorm:"size:20;not null;default:available" json:"status"`
	Description string                      `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool                        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// DisplayName is the name shown to guests, falling back to the room number.
func (r *Room) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.RoomNumber
}
