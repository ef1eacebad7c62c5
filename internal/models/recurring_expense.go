package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringFrequency is how often a recurring expense repeats.
type RecurringFrequency string

const (
	FrequencyDaily   RecurringFrequency = "daily"
	FrequencyWeekly  RecurringFrequency = "weekly"
	FrequencyMonthly RecurringFrequency = "monthly"
	FrequencyYearly  RecurringFrequency = "yearly"
)

// Valid reports whether the frequency is a member of the enum.
func (f RecurringFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}

	return false
}

// RecurringStatus is the lifecycle state of a recurring expense.
type RecurringStatus string

const (
	StatusActive   RecurringStatus = "active"
	StatusInactive RecurringStatus = "inactive"
)

// Valid reports whether the status is a member of the enum.
func (s RecurringStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// RecurringExpense is a user-declared obligation expected to repeat at a
// fixed frequency within an optional date window.
type RecurringExpense struct {
	Model
	Title     string             `json:"title"`
	Amount    decimal.Decimal    `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Frequency RecurringFrequency `json:"frequency"`
	StartDate time.Time          `json:"startDate"`

	// EndDate is nil for open-ended obligations.
	EndDate *time.Time      `json:"endDate"`
	Status  RecurringStatus `json:"status" gorm:"default:active"`
	UserID  uint64          `json:"userId"`
	User    User            `json:"-"`
}

// RecurringForUser returns all recurring expenses of the user ordered by
// start date descending.
func RecurringForUser(db *gorm.DB, userID uint64) ([]RecurringExpense, error) {
	var recurring []RecurringExpense
	err := db.Where(&RecurringExpense{UserID: userID}).Order("start_date DESC").Find(&recurring).Error
	return recurring, err
}

// ActiveRecurringForUser returns the user's active recurring expenses,
// newest first.
func ActiveRecurringForUser(db *gorm.DB, userID uint64) ([]RecurringExpense, error) {
	var recurring []RecurringExpense
	err := db.Where(&RecurringExpense{UserID: userID, Status: StatusActive}).Order("id DESC").Find(&recurring).Error
	return recurring, err
}

// MonthlyRecurringTotal sums the user's active monthly-frequency
// recurring expenses.
func MonthlyRecurringTotal(db *gorm.DB, userID uint64) (decimal.Decimal, error) {
	var recurring []RecurringExpense
	err := db.Where(&RecurringExpense{
		UserID:    userID,
		Frequency: FrequencyMonthly,
		Status:    StatusActive,
	}).Find(&recurring).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, r := range recurring {
		total = total.Add(r.Amount)
	}

	return total, nil
}

// OverlappingActiveRecurring returns the active recurring expenses whose
// [StartDate, EndDate] window overlaps [start, end]. A nil EndDate is
// treated as unbounded. A userID of 0 does not filter by user.
func OverlappingActiveRecurring(db *gorm.DB, userID uint64, start, end time.Time) ([]RecurringExpense, error) {
	q := db.
		Where("status = ?", StatusActive).
		Where("start_date <= ?", end).
		Where("(end_date IS NULL OR end_date >= ?)", start)

	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}

	var recurring []RecurringExpense
	err := q.Find(&recurring).Error
	return recurring, err
}
