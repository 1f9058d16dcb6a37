package booking

import (
	"regexp"
	"testing"
	"time"

	bookingModel "keyless-stay/models/booking"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateNightsRoundsUp(t *testing.T) {
	in := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, CalculateNights(in, in.AddDate(0, 0, 2)))
	assert.Equal(t, 1, CalculateNights(in, in.Add(3*time.Hour)))
	assert.Equal(t, 3, CalculateNights(in, in.Add(49*time.Hour)))
}

func TestDerivePaymentStatus(t *testing.T) {
	total := decimal.NewFromInt(1000)

	assert.Equal(t, bookingModel.PaymentStatusPending, DerivePaymentStatus(decimal.Zero, total))
	assert.Equal(t, bookingModel.PaymentStatusPartial, DerivePaymentStatus(decimal.NewFromInt(400), total))
	assert.Equal(t, bookingModel.PaymentStatusPaid, DerivePaymentStatus(decimal.NewFromInt(1000), total))
	assert.Equal(t, bookingModel.PaymentStatusPaid, DerivePaymentStatus(decimal.NewFromInt(1200), total))
}

func TestGenerateBookingNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^BK-20250310-[0-9A-Z]{4}$`)
	at := time.Date(2025, time.March, 10, 23, 0, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		number, err := GenerateBookingNumber(at)
		require.NoError(t, err)
		assert.Regexp(t, pattern, number)
	}
}
