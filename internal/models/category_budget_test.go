package models_test

import (
	"sync"

	"github.com/budget-buddy/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestRecordSpendingCreatesRow() {
	user := suite.createTestUser(models.User{
		Name:          "Priya",
		MonthlyBudget: decimal.NewFromInt(500),
	})

	budget, err := models.RecordSpending(suite.db, user, models.CategoryFood, decimal.NewFromInt(10))
	suite.Require().NoError(err)

	suite.Assert().Equal(models.CategoryFood, budget.Name)
	suite.Assert().True(budget.Spent.Equal(decimal.NewFromInt(10)), "spent is %s", budget.Spent)

	// The lazily created row inherits the monthly budget as limit
	suite.Assert().True(budget.Limit.Equal(decimal.NewFromInt(500)), "limit is %s", budget.Limit)
}

func (suite *TestSuiteStandard) TestRecordSpendingAccumulates() {
	user := suite.createTestUser(models.User{MonthlyBudget: decimal.NewFromInt(100)})

	for _, amount := range []int64{10, 20} {
		_, err := models.RecordSpending(suite.db, user, models.CategoryFood, decimal.NewFromInt(amount))
		suite.Require().NoError(err)
	}
	_, err := models.RecordSpending(suite.db, user, models.CategoryTravel, decimal.NewFromInt(5))
	suite.Require().NoError(err)

	budgets, err := models.CategoryBudgetsForUser(suite.db, user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(budgets, 2)

	suite.Assert().True(models.TotalSpent(budgets).Equal(decimal.NewFromInt(35)))

	for _, b := range budgets {
		switch b.Name {
		case models.CategoryFood:
			suite.Assert().True(b.Spent.Equal(decimal.NewFromInt(30)), "food spent is %s", b.Spent)
		case models.CategoryTravel:
			suite.Assert().True(b.Spent.Equal(decimal.NewFromInt(5)), "travel spent is %s", b.Spent)
		}
	}
}

func (suite *TestSuiteStandard) TestSetCategoryLimitPreservesSpent() {
	user := suite.createTestUser(models.User{MonthlyBudget: decimal.NewFromInt(100)})

	_, err := models.RecordSpending(suite.db, user, models.CategoryBills, decimal.NewFromInt(42))
	suite.Require().NoError(err)

	budget, err := models.SetCategoryLimit(suite.db, user.ID, models.CategoryBills, decimal.NewFromInt(250))
	suite.Require().NoError(err)

	suite.Assert().True(budget.Limit.Equal(decimal.NewFromInt(250)), "limit is %s", budget.Limit)
	suite.Assert().True(budget.Spent.Equal(decimal.NewFromInt(42)), "spent is %s", budget.Spent)

	// Still only one row for the (user, category) pair
	budgets, err := models.CategoryBudgetsForUser(suite.db, user.ID)
	suite.Require().NoError(err)
	suite.Assert().Len(budgets, 1)
}

func (suite *TestSuiteStandard) TestSetCategoryLimitCreatesRow() {
	user := suite.createTestUser(models.User{})

	budget, err := models.SetCategoryLimit(suite.db, user.ID, models.CategoryShopping, decimal.NewFromInt(75))
	suite.Require().NoError(err)

	suite.Assert().True(budget.Spent.IsZero())
	suite.Assert().True(budget.Limit.Equal(decimal.NewFromInt(75)))
}

// TestRecordSpendingConcurrent documents that the spent counter is a plain
// read-then-write sequence. Two concurrent calls can lose an update, so the
// final value is one of the three possible interleavings.
func (suite *TestSuiteStandard) TestRecordSpendingConcurrent() {
	user := suite.createTestUser(models.User{})

	// Create the row up front so the goroutines race on the update path,
	// not on row creation.
	_, err := models.RecordSpending(suite.db, user, models.CategoryFood, decimal.NewFromInt(100))
	suite.Require().NoError(err)

	var wg sync.WaitGroup
	for _, amount := range []int64{10, 20} {
		wg.Add(1)
		go func(amount int64) {
			defer wg.Done()
			_, _ = models.RecordSpending(suite.db, user, models.CategoryFood, decimal.NewFromInt(amount))
		}(amount)
	}
	wg.Wait()

	budgets, err := models.CategoryBudgetsForUser(suite.db, user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(budgets, 1)

	spent := budgets[0].Spent
	suite.Assert().True(
		spent.Equal(decimal.NewFromInt(110)) || spent.Equal(decimal.NewFromInt(120)) || spent.Equal(decimal.NewFromInt(130)),
		"spent is %s", spent,
	)
}

func (suite *TestSuiteStandard) TestRecordSpendingClosedDB() {
	user := suite.createTestUser(models.User{})
	suite.CloseDB()

	_, err := models.RecordSpending(suite.db, user, models.CategoryFood, decimal.NewFromInt(1))
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
