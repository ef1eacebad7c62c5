package auth

import (
	"crypto/rand"
	"math/big"
	"time"
)

// OTPValidity is the window in which a one-time code is considered
// fresh. The expiry is stored with the user at signup.
const OTPValidity = 5 * time.Minute

// GenerateOTP returns a random numeric one-time code of the given
// length. The first digit is never zero, so the code always has exactly
// length digits.
func GenerateOTP(length int) string {
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	high := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)

	n, err := rand.Int(rand.Reader, new(big.Int).Sub(high, low))
	if err != nil {
		// crypto/rand only fails when the platform source is broken
		panic(err)
	}

	return new(big.Int).Add(n, low).String()
}
