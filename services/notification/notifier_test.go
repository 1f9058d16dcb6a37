package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []Payload
	err   error
}

func (r *recordingNotifier) Notify(ctx context.Context, contact Contact, method Method, payload Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, payload)
	return r.err
}

func TestDispatcherDelivers(t *testing.T) {
	rec := &recordingNotifier{}
	d := NewDispatcher(rec)

	d.Dispatch(Contact{Name: "Somchai"}, MethodSMS, Payload{BookingNumber: "BK-20250301-AB12", Code: "123456"})
	d.Wait()

	assert.Len(t, rec.calls, 1)
	assert.Equal(t, "123456", rec.calls[0].Code)
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	rec := &recordingNotifier{err: errors.New("gateway down")}
	d := NewDispatcher(rec)

	assert.NotPanics(t, func() {
		d.Dispatch(Contact{Name: "Somchai"}, MethodLine, Payload{BookingNumber: "BK-1"})
		d.Wait()
	})
	assert.Len(t, rec.calls, 1)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Contact{}, MethodAll, Payload{})
		d.Wait()
	})
}

func TestMethodIsValid(t *testing.T) {
	assert.True(t, MethodAll.IsValid())
	assert.False(t, Method("fax").IsValid())
}
