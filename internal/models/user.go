package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User represents a registered account. The password is stored as a
// bcrypt hash and never serialized.
type User struct {
	Model
	Name          string          `json:"name"`
	Email         string          `json:"email" gorm:"uniqueIndex"`
	Password      string          `json:"-"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget" gorm:"type:DECIMAL(20,8)"`
	IsVerified    bool            `json:"isVerified"`

	// OTP is set at signup and cleared once the user verifies their
	// email. OTPExpiresAt is written alongside it.
	OTP          string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
}

// PublicUser is the identity shape returned by the auth endpoints.
type PublicUser struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the user's public identity.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// VerifiedUsers returns all users that have verified their email.
func VerifiedUsers(db *gorm.DB) ([]User, error) {
	var users []User
	err := db.Where(&User{IsVerified: true}).Find(&users).Error
	return users, err
}
