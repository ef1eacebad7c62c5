// Package auth issues and verifies session tokens, hashes passwords and
// generates one-time codes.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is how long a session token is accepted after issuing.
const TokenValidity = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// Tokens issues and verifies signed session tokens. Verification is a
// pure function of the secret and has no side effects.
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) Tokens {
	return Tokens{secret: []byte(secret)}
}

// Issue returns a signed token embedding the user id and email.
func (t Tokens) Issue(userID uint64, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    time.Now().Add(TokenValidity).Unix(),
	})

	return token.SignedString(t.secret)
}

// Verify parses the token and returns the embedded user id.
func (t Tokens) Verify(tokenString string) (uint64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	// JSON numbers decode as float64
	userID, ok := claims["userId"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}

	return uint64(userID), nil
}
