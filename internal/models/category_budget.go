package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryBudget is the per-(user, category) spending envelope. At most
// one row exists per user and category, enforced by lookup-before-insert.
//
// Spent is a denormalized additive counter: it is incremented whenever a
// matching expense is recorded and never recomputed from the ledger.
type CategoryBudget struct {
	Model
	UserID uint64          `json:"userId"`
	User   User            `json:"-"`
	Name   Category        `json:"name"`
	Limit  decimal.Decimal `json:"limit" gorm:"column:limit_amount;type:DECIMAL(20,8)"`
	Spent  decimal.Decimal `json:"spent" gorm:"type:DECIMAL(20,8)"`
}

// CategoryBudgetsForUser returns all category budget rows of the user.
func CategoryBudgetsForUser(db *gorm.DB, userID uint64) ([]CategoryBudget, error) {
	var budgets []CategoryBudget
	err := db.Where(&CategoryBudget{UserID: userID}).Find(&budgets).Error
	return budgets, err
}

// TotalSpent sums the spent counters of the rows.
func TotalSpent(budgets []CategoryBudget) decimal.Decimal {
	total := decimal.Zero
	for _, b := range budgets {
		total = total.Add(b.Spent)
	}

	return total
}

// SetCategoryLimit creates the category budget row of the user or
// overwrites its limit. The spent counter is never touched.
func SetCategoryLimit(db *gorm.DB, userID uint64, category Category, limit decimal.Decimal) (CategoryBudget, error) {
	var budget CategoryBudget
	err := db.Where(&CategoryBudget{UserID: userID, Name: category}).First(&budget).Error
	if err != nil {
		if !errors.Is(err, ErrResourceNotFound) {
			return CategoryBudget{}, err
		}

		budget = CategoryBudget{
			UserID: userID,
			Name:   category,
			Limit:  limit,
		}
		err = db.Create(&budget).Error
		return budget, err
	}

	budget.Limit = limit
	err = db.Save(&budget).Error
	return budget, err
}

// RecordSpending adds amount to the spent counter of the user's category
// budget. If no row exists yet, one is created with the user's monthly
// budget as limit.
//
// This is a plain read-then-write sequence. Two concurrent calls for the
// same row can lose an update (last write wins).
func RecordSpending(db *gorm.DB, user User, category Category, amount decimal.Decimal) (CategoryBudget, error) {
	var budget CategoryBudget
	err := db.Where(&CategoryBudget{UserID: user.ID, Name: category}).First(&budget).Error
	if err != nil {
		if !errors.Is(err, ErrResourceNotFound) {
			return CategoryBudget{}, err
		}

		budget = CategoryBudget{
			UserID: user.ID,
			Name:   category,
			Limit:  user.MonthlyBudget,
			Spent:  amount,
		}
		err = db.Create(&budget).Error
		return budget, err
	}

	budget.Spent = budget.Spent.Add(amount)
	err = db.Save(&budget).Error
	return budget, err
}
