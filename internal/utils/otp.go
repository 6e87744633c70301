package utils

import (
	"crypto/rand" // secure random number generation
	"fmt"
	"math/big"
)

// NewOTP returns a one-time password of exactly `digits` decimal digits,
// drawn from crypto/rand.  Leading zeros are preserved, so a 6-digit code
// always matches /^[0-9]{6}$/.
func NewOTP(digits int) (string, error) {
	if digits < 1 {
		digits = 6
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
