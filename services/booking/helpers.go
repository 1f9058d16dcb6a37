package booking

import (
	"crypto/rand"
	"math"
	"math/big"
	"strings"
	"time"

	bookingModel "keyless-stay/models/booking"

	"github.com/shopspring/decimal"
)

const bookingNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CalculateNights rounds a partial day up to a full night.
func CalculateNights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// TotalPrice multiplies the nightly snapshot by the number of nights.
func TotalPrice(roomPrice decimal.Decimal, nights int) decimal.Decimal {
	return roomPrice.Mul(decimal.NewFromInt(int64(nights)))
}

// DerivePaymentStatus is paid once paid reaches total, partial while something is paid, else pending.
func DerivePaymentStatus(paid, total decimal.Decimal) bookingModel.PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return bookingModel.PaymentStatusPaid
	case paid.IsPositive():
		return bookingModel.PaymentStatusPartial
	default:
		return bookingModel.PaymentStatusPending
	}
}

// GenerateBookingNumber returns BK-YYYYMMDD-XXXX with four random base-36 characters.
func GenerateBookingNumber(at time.Time) (string, error) {
	var sb strings.Builder
	sb.WriteString("BK-")
	sb.WriteString(at.UTC().Format("20060102"))
	sb.WriteString("-")

	max := big.NewInt(int64(len(bookingNumberAlphabet)))
	for i := 0; i < 4; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(bookingNumberAlphabet[n.Int64()])
	}
	return sb.String(), nil
}
