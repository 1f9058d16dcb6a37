package booking

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

var validTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusCheckedIn, BookingStatusCancelled},
	BookingStatusCheckedIn:  {BookingStatusCheckedOut},
	BookingStatusCheckedOut: {},
	BookingStatusCancelled:  {},
}

// Helper methods for BookingStatus
func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	_, ok := validTransitions[bs]
	return ok
}

// CanTransitionTo returns true if the lifecycle allows moving from bs to next
func (bs BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[bs] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no transition leaves this status
func (bs BookingStatus) IsTerminal() bool {
	return bs == BookingStatusCheckedOut || bs == BookingStatusCancelled
}

// BlockingStatuses returns the statuses that hold a room
func BlockingStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn}
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "cash"
	PaymentMethodTransfer  PaymentMethod = "transfer"
	PaymentMethodCard      PaymentMethod = "card"
	PaymentMethodPromptPay PaymentMethod = "promptpay"
)

func (pm PaymentMethod) IsValid() bool {
	switch pm {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodCard, PaymentMethodPromptPay:
		return true
	default:
		return false
	}
}

type BookingSource string

const (
	BookingSourceDirect BookingSource = "direct"
	BookingSourceWalkIn BookingSource = "walk-in"
	BookingSourcePhone  BookingSource = "phone"
	BookingSourceOther  BookingSource = "other"
)

func (s BookingSource) IsValid() bool {
	switch s {
	case BookingSourceDirect, BookingSourceWalkIn, BookingSourcePhone, BookingSourceOther:
		return true
	default:
		return false
	}
}
