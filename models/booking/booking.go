package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GuestInfo is stored inline on the booking row with a guest_ prefix.
type GuestInfo struct {
	FirstName       string `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName        string `gorm:"type:varchar(255);not null" json:"last_name"`
	Email           string `gorm:"type:varchar(255)" json:"email,omitempty"`
	PhoneNumber     string `gorm:"type:varchar(20);not null" json:"phone_number"`
	IDNumber        string `gorm:"type:text" json:"id_number,omitempty"`
	Nationality     string `gorm:"type:varchar(100);default:Thai" json:"nationality"`
	SpecialRequests string `gorm:"type:text" json:"special_requests,omitempty"`
}

func (g GuestInfo) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

// Booking is a stay of one guest in one room over [CheckIn, CheckOut).
type Booking struct {
	ID            string `gorm:"type:varchar(36);primaryKey" json:"id"`
	BookingNumber string `gorm:"type:varchar(32);not null;uniqueIndex" json:"booking_number"`
	PropertyID    string `gorm:"type:varchar(36);not null;index" json:"property_id"`
	RoomID        string `gorm:"type:varchar(36);not null;index" json:"room_id"`

	Guest GuestInfo `gorm:"embedded;embeddedPrefix:guest_" json:"guest"`

	CheckIn  time.Time `gorm:"not null;index" json:"check_in"`
	CheckOut time.Time `gorm:"not null;index" json:"check_out"`
	Nights   int       `gorm:"not null" json:"nights"`
	Adults   int       `gorm:"not null;default:1" json:"adults"`
	Children int       `gorm:"not null;default:0" json:"children"`

	// RoomPrice is the nightly price captured at creation and never re-read from the room.
	RoomPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"room_price"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	PaidAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"paid_amount"`
	PaymentMethod PaymentMethod   `gorm:"size:20" json:"payment_method,omitempty"`
	PaymentStatus PaymentStatus   `gorm:"size:20;not null;default:pending" json:"payment_status"`

	Status BookingStatus `gorm:"size:20;not null;default:pending;index" json:"status"`

	// AccessCode and AccessCodeExpiry cache the most recently generated code so
	// booking reads avoid a lookup. The access_codes table is authoritative; two
	// concurrent generates can leave this pointing at either of them. A date
	// change shifts the live codes and this expiry with the stay.
	AccessCode       *string    `gorm:"type:varchar(16)" json:"access_code,omitempty"`
	AccessCodeExpiry *time.Time `json:"access_code_expiry,omitempty"`

	Notes     string        `gorm:"type:text" json:"notes,omitempty"`
	Source    BookingSource `gorm:"size:20;not null;default:direct" json:"source"`
	CreatedBy string        `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string        `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Overlaps reports whether [checkIn, checkOut) intersects this booking's stay.
// A checkout and a check-in on the same instant do not overlap.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return checkIn.Before(b.CheckOut) && checkOut.After(b.CheckIn)
}
