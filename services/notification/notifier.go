package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"keyless-stay/logger"
)

// Method is the channel a guest is contacted through
type Method string

const (
	MethodLine  Method = "line"
	MethodSMS   Method = "sms"
	MethodEmail Method = "email"
	MethodAll   Method = "all"
)

func (m Method) IsValid() bool {
	switch m {
	case MethodLine, MethodSMS, MethodEmail, MethodAll:
		return true
	default:
		return false
	}
}

// Contact is where a guest can be reached
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Payload describes an issued access code
type Payload struct {
	BookingNumber string    `json:"booking_number"`
	PropertyName  string    `json:"property_name"`
	RoomName      string    `json:"room_name"`
	Code          string    `json:"code"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidUntil    time.Time `json:"valid_until"`
}

// Notifier delivers a message to a guest
type Notifier interface {
	Notify(ctx context.Context, contact Contact, method Method, payload Payload) error
}

// Dispatcher sends notifications in the background. Failures are logged and dropped.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewDispatcher(notifier Notifier) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		timeout:  15 * time.Second,
	}
}

// Dispatch returns immediately.
func (d *Dispatcher) Dispatch(contact Contact, method Method, payload Payload) {
	if d == nil || d.notifier == nil {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.notifier.Notify(ctx, contact, method, payload); err != nil {
			logger.Error(fmt.Sprintf("Failed to notify guest for booking %s via %s", payload.BookingNumber, method), err)
			return
		}
		logger.Info(fmt.Sprintf("Notified guest for booking %s via %s", payload.BookingNumber, method))
	}()
}

// Wait blocks until in-flight notifications finish
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}

// LogNotifier only logs. Used when no notification service is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, contact Contact, method Method, payload Payload) error {
	logger.Info(fmt.Sprintf("Access code for booking %s ready for %s (%s), valid until %s",
		payload.BookingNumber, contact.Name, method, payload.ValidUntil.Format(time.RFC3339)))
	return nil
}
