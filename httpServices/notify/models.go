package notify

import "time"

type NotifyRequest struct {
	Method        string    `json:"method"`
	GuestName     string    `json:"guest_name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	BookingNumber string    `json:"booking_number"`
	PropertyName  string    `json:"property_name"`
	RoomName      string    `json:"room_name"`
	AccessCode    string    `json:"access_code"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidUntil    time.Time `json:"valid_until"`
}

type NotifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
