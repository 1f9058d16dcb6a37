package access_code

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// RandomNumericCode draws a uniformly random string of length decimal digits.
func RandomNumericCode(length int) (string, error) {
	var sb strings.Builder
	sb.Grow(length)
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
