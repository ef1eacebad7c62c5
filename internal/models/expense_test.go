package models_test

import (
	"time"

	"github.com/budget-buddy/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestExpensesForUserOrder() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})

	first := suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromInt(1)})
	second := suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromInt(2)})
	suite.createTestExpense(models.Expense{UserID: other.ID, Amount: decimal.NewFromInt(3)})

	expenses, err := models.ExpensesForUser(suite.db, user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(expenses, 2)

	// Newest first
	suite.Assert().False(expenses[0].CreatedAt.Before(expenses[1].CreatedAt))
	suite.Assert().ElementsMatch([]uint64{first.ID, second.ID}, []uint64{expenses[0].ID, expenses[1].ID})
}

func (suite *TestSuiteStandard) TestTotalsByCategory() {
	totals := models.TotalsByCategory([]models.Expense{
		{Category: models.CategoryFood, Amount: decimal.NewFromInt(10)},
		{Category: models.CategoryFood, Amount: decimal.NewFromInt(20)},
		{Category: models.CategoryTravel, Amount: decimal.NewFromInt(5)},
	})

	suite.Assert().True(totals[models.CategoryFood].Equal(decimal.NewFromInt(30)))
	suite.Assert().True(totals[models.CategoryTravel].Equal(decimal.NewFromInt(5)))
}

func (suite *TestSuiteStandard) TestMonthToDateTotal() {
	user := suite.createTestUser(models.User{})

	suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromInt(12)})
	suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromInt(8)})

	total, err := models.MonthToDateTotal(suite.db, user.ID, time.Now())
	suite.Require().NoError(err)
	suite.Assert().True(total.Equal(decimal.NewFromInt(20)), "total is %s", total)
}

func (suite *TestSuiteStandard) TestExpensesCreatedBetweenAllUsers() {
	userA := suite.createTestUser(models.User{})
	userB := suite.createTestUser(models.User{})

	suite.createTestExpense(models.Expense{UserID: userA.ID, Amount: decimal.NewFromInt(1)})
	suite.createTestExpense(models.Expense{UserID: userB.ID, Amount: decimal.NewFromInt(2)})

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)

	// A user id of 0 does not filter
	expenses, err := models.ExpensesCreatedBetween(suite.db, 0, start, end)
	suite.Require().NoError(err)
	suite.Assert().Len(expenses, 2)

	expenses, err = models.ExpensesCreatedBetween(suite.db, userA.ID, start, end)
	suite.Require().NoError(err)
	suite.Assert().Len(expenses, 1)

	expenses, err = models.ExpensesCreatedBetween(suite.db, userA.ID, end, end.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Assert().Empty(expenses)
}

func (suite *TestSuiteStandard) TestExpenseDefaultCategory() {
	user := suite.createTestUser(models.User{})
	expense := suite.createTestExpense(models.Expense{UserID: user.ID, Amount: decimal.NewFromInt(1)})

	var reloaded models.Expense
	suite.Require().NoError(suite.db.First(&reloaded, expense.ID).Error)
	suite.Assert().Equal(models.CategoryOther, reloaded.Category)
}
