package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a single spend event. Expenses are immutable once created
// and are never deleted.
type Expense struct {
	Model
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Category    Category        `json:"category" gorm:"default:other"`
	Description string          `json:"description,omitempty"`

	// Date is the user-supplied date string. It may be empty; filtering
	// and ordering in the history endpoint compare it lexically, which
	// works for the expected YYYY-MM-DD format.
	Date string `json:"date"`

	UserID uint64 `json:"userId"`
	User   User   `json:"-"`
}

// ExpensesForUser returns all expenses of the user, newest first.
func ExpensesForUser(db *gorm.DB, userID uint64) ([]Expense, error) {
	var expenses []Expense
	err := db.Where(&Expense{UserID: userID}).Order("created_at DESC").Find(&expenses).Error
	return expenses, err
}

// ExpensesCreatedBetween returns the expenses of the user whose creation
// timestamp falls into [start, end]. A userID of 0 does not filter by user.
func ExpensesCreatedBetween(db *gorm.DB, userID uint64, start, end time.Time) ([]Expense, error) {
	q := db.Where("created_at BETWEEN ? AND ?", start, end)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}

	var expenses []Expense
	err := q.Find(&expenses).Error
	return expenses, err
}

// TotalsByCategory sums the amounts of the expenses per category.
func TotalsByCategory(expenses []Expense) map[Category]decimal.Decimal {
	totals := make(map[Category]decimal.Decimal)
	for _, expense := range expenses {
		totals[expense.Category] = totals[expense.Category].Add(expense.Amount)
	}

	return totals
}

// SumExpenses returns the total amount of the expenses.
func SumExpenses(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}

	return total
}

// MonthToDateTotal returns the amount the user spent in the calendar
// month of now, by creation timestamp.
func MonthToDateTotal(db *gorm.DB, userID uint64, now time.Time) (decimal.Decimal, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	expenses, err := ExpensesCreatedBetween(db, userID, start, end)
	if err != nil {
		return decimal.Zero, err
	}

	return SumExpenses(expenses), nil
}
