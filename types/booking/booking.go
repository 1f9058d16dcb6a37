package booking

import (
	"time"

	"keyless-stay/apperror"
	"keyless-stay/types"

	"github.com/shopspring/decimal"
)

type GuestInput struct {
	FirstName       string `json:"first_name" validate:"required,min=1,max=255"`
	LastName        string `json:"last_name" validate:"required,min=1,max=255"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phone_number" validate:"required,phone"`
	IDNumber        string `json:"id_number" validate:"omitempty,max=50"`
	Nationality     string `json:"nationality" validate:"omitempty,max=100"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=2000"`
}

// GuestPatch carries the guest fields a date/guest update may change.
type GuestPatch struct {
	FirstName       *string `json:"first_name" validate:"omitempty,min=1,max=255"`
	LastName        *string `json:"last_name" validate:"omitempty,min=1,max=255"`
	Email           *string `json:"email" validate:"omitempty,email"`
	PhoneNumber     *string `json:"phone_number" validate:"omitempty,phone"`
	IDNumber        *string `json:"id_number" validate:"omitempty,max=50"`
	Nationality     *string `json:"nationality" validate:"omitempty,max=100"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=2000"`
}

// BookingCreateRequest represents a guest self-booking
type BookingCreateRequest struct {
	PropertyID string     `json:"property_id" validate:"required"`
	RoomID     string     `json:"room_id" validate:"required"`
	Guest      GuestInput `json:"guest"`
	CheckIn    types.Date `json:"check_in"`
	CheckOut   types.Date `json:"check_out"`
	Adults     int        `json:"adults" validate:"omitempty,min=1,max=20"`
	Children   int        `json:"children" validate:"omitempty,min=0,max=20"`
}

// AdminBookingCreateRequest is a staff booking that is confirmed and issued a code at once
type AdminBookingCreateRequest struct {
	BookingCreateRequest
	Notes         string           `json:"notes" validate:"omitempty,max=2000"`
	Source        string           `json:"source" validate:"omitempty,oneof=direct walk-in phone other"`
	PaidAmount    *decimal.Decimal `json:"paid_amount"`
	PaymentMethod string           `json:"payment_method" validate:"omitempty,oneof=cash promptpay transfer card"`
}

type BookingUpdateRequest struct {
	CheckIn  *types.Date `json:"check_in"`
	CheckOut *types.Date `json:"check_out"`
	Guest    *GuestPatch `json:"guest"`
	Adults   *int        `json:"adults" validate:"omitempty,min=1,max=20"`
	Children *int        `json:"children" validate:"omitempty,min=0,max=20"`
	Notes    *string     `json:"notes" validate:"omitempty,max=2000"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed checked_in checked_out cancelled"`
	Notes  string `json:"notes" validate:"omitempty,max=2000"`
}

type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method" validate:"omitempty,oneof=cash promptpay transfer card"`
}

// SearchQuery is bound from the query string of the booking listing
type SearchQuery struct {
	PropertyID string `query:"propertyId"`
	RoomID     string `query:"roomId"`
	Status     string `query:"status" validate:"omitempty,oneof=pending confirmed checked_in checked_out cancelled"`
	FromDate   string `query:"fromDate"`
	ToDate     string `query:"toDate"`
	GuestName  string `query:"guestName"`
	GuestPhone string `query:"guestPhone"`
}

// StayDates validates the stay range before any lookup
func StayDates(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() {
		return apperror.Validation("check_in is required")
	}
	if checkOut.IsZero() {
		return apperror.Validation("check_out is required")
	}
	if !checkOut.After(checkIn) {
		return apperror.Validation("check_out must be after check_in")
	}
	return nil
}

func (r BookingCreateRequest) Validate() error {
	if err := types.ValidateStruct(r); err != nil {
		return err
	}
	return StayDates(r.CheckIn.Time, r.CheckOut.Time)
}

func (r AdminBookingCreateRequest) Validate() error {
	if err := types.ValidateStruct(r); err != nil {
		return err
	}
	if r.PaidAmount != nil && r.PaidAmount.IsNegative() {
		return apperror.Validation("paid_amount must not be negative")
	}
	return StayDates(r.CheckIn.Time, r.CheckOut.Time)
}

func (r BookingUpdateRequest) Validate() error {
	return types.ValidateStruct(r)
}

func (r StatusUpdateRequest) Validate() error {
	return types.ValidateStruct(r)
}

func (r PaymentRequest) Validate() error {
	if r.Amount.IsNegative() {
		return apperror.Validation("amount must not be negative")
	}
	return types.ValidateStruct(r)
}

func (q SearchQuery) Validate() error {
	if q.PropertyID == "" {
		return apperror.Validation("propertyId is required")
	}
	return types.ValidateStruct(q)
}

// PublicBookingView is what an unauthenticated lookup by booking number returns
type PublicBookingView struct {
	BookingNumber string    `json:"booking_number"`
	GuestName     string    `json:"guest_name"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Nights        int       `json:"nights"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalPrice    string    `json:"total_price"`
}
