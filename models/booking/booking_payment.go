package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingPayment is one ledger row appended per recorded payment
type BookingPayment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID string `gorm:"type:varchar(36);not null;index" json:"booking_id"`

	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method      PaymentMethod   `gorm:"size:20" json:"method,omitempty"`
	PaidAfter   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"paid_after"`
	StatusAfter PaymentStatus   `gorm:"size:20;not null" json:"status_after"`
	CreatedBy   string          `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (BookingPayment) TableName() string {
	return "booking_payments"
}
