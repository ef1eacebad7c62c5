package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/budget-buddy/backend/internal/controllers/v1"
	"github.com/budget-buddy/backend/internal/models"
	"github.com/budget-buddy/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) addTestExpense(e v1.ExpenseCreate, expectedStatus ...int) v1.ExpenseResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusOK)
	}

	r := test.Request(suite.T(), suite.controller, http.MethodPost, "http://example.com/expense-add", e)
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus...)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

func (suite *TestSuiteStandard) TestAddExpense() {
	user := suite.createTestUser(models.User{MonthlyBudget: decimal.NewFromInt(1000)})

	response := suite.addTestExpense(v1.ExpenseCreate{
		UserID:      user.ID,
		Amount:      decimal.NewFromInt(25),
		Category:    models.CategoryFood,
		Description: "Lunch",
		Date:        "2026-08-15",
	})

	suite.Assert().NotZero(response.ID)
	suite.Assert().Equal(models.CategoryFood, response.Category)

	// The category budget is created lazily with the monthly budget as
	// limit and tracks the spending
	budgets, err := models.CategoryBudgetsForUser(suite.db, user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(budgets, 1)
	suite.Assert().True(budgets[0].Limit.Equal(decimal.NewFromInt(1000)))
	suite.Assert().True(budgets[0].Spent.Equal(decimal.NewFromInt(25)))

	suite.addTestExpense(v1.ExpenseCreate{
		UserID:   user.ID,
		Amount:   decimal.NewFromInt(5),
		Category: models.CategoryFood,
	})

	budgets, err = models.CategoryBudgetsForUser(suite.db, user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(budgets, 1)
	suite.Assert().True(budgets[0].Spent.Equal(decimal.NewFromInt(30)), "spent is %s", budgets[0].Spent)
}

func (suite *TestSuiteStandard) TestAddExpenseDefaultsCategory() {
	user := suite.createTestUser(models.User{})

	response := suite.addTestExpense(v1.ExpenseCreate{
		UserID: user.ID,
		Amount: decimal.NewFromInt(10),
	})

	suite.Assert().Equal(models.CategoryOther, response.Category)
}

// The add response is a flat object, not an envelope. Clients read the
// id, amount and date from the top level.
func (suite *TestSuiteStandard) TestAddExpenseResponseShape() {
	user := suite.createTestUser(models.User{})

	r := test.Request(suite.T(), suite.controller, http.MethodPost, "http://example.com/expense-add", v1.ExpenseCreate{
		UserID:      user.ID,
		Amount:      decimal.NewFromInt(12),
		Category:    models.CategoryFood,
		Description: "Lunch",
		Date:        "2026-08-15",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var body map[string]any
	test.DecodeResponse(suite.T(), &r, &body)

	for _, key := range []string{"id", "amount", "category", "description", "date"} {
		suite.Assert().Contains(body, key)
	}
	suite.Assert().NotContains(body, "expense")
	suite.Assert().NotContains(body, "message")
}

func (suite *TestSuiteStandard) TestAddExpenseValidation() {
	user := suite.createTestUser(models.User{})

	tests := []struct {
		name    string
		expense v1.ExpenseCreate
		want    string
	}{
		{"missing user", v1.ExpenseCreate{Amount: decimal.NewFromInt(1)}, "userId is required"},
		{"unknown user", v1.ExpenseCreate{UserID: user.ID + 999, Amount: decimal.NewFromInt(1)}, "user not found"},
		{"zero amount", v1.ExpenseCreate{UserID: user.ID}, "positive"},
		{"negative amount", v1.ExpenseCreate{UserID: user.ID, Amount: decimal.NewFromInt(-5)}, "positive"},
		{"bad category", v1.ExpenseCreate{UserID: user.ID, Amount: decimal.NewFromInt(1), Category: "groceries"}, "category is invalid"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.controller, http.MethodPost, "http://example.com/expense-add", tt.expense)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
			suite.Assert().Contains(r.Body.String(), tt.want)
		})
	}
}

func (suite *TestSuiteStandard) TestGetExpenses() {
	user := suite.createTestUser(models.User{MonthlyBudget: decimal.NewFromInt(1000)})

	suite.addTestExpense(v1.ExpenseCreate{UserID: user.ID, Amount: decimal.NewFromInt(10), Category: models.CategoryFood})
	suite.addTestExpense(v1.ExpenseCreate{UserID: user.ID, Amount: decimal.NewFromInt(20), Category: models.CategoryTravel})

	suite.Require().NoError(suite.db.Create(&models.RecurringExpense{
		UserID: user.ID, Title: "Rent", Amount: decimal.NewFromInt(100),
		Frequency: models.FrequencyMonthly, Status: models.StatusActive, StartDate: time.Now(),
	}).Error)

	r := test.Request(suite.T(), suite.controller, http.MethodGet, fmt.Sprintf("http://example.com/expenses?userId=%d", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var overview v1.ExpenseOverview
	test.DecodeResponse(suite.T(), &r, &overview)

	suite.Assert().True(overview.Totals["food"].Equal(decimal.NewFromInt(10)))
	suite.Assert().True(overview.Totals["travel"].Equal(decimal.NewFromInt(20)))
	suite.Assert().True(overview.Totals["totalSpentThisMonth"].Equal(decimal.NewFromInt(30)))
	suite.Assert().True(overview.Totals["recurringMonthly"].Equal(decimal.NewFromInt(100)))

	// 1000 - 30 - 100
	suite.Assert().True(overview.Totals["budgetRemaining"].Equal(decimal.NewFromInt(870)), "remaining is %s", overview.Totals["budgetRemaining"])

	suite.Assert().Len(overview.RecentExpenses, 2)
	suite.Assert().Len(overview.RecurringExpenses, 1)
}

func (suite *TestSuiteStandard) TestGetExpensesValidation() {
	r := test.Request(suite.T(), suite.controller, http.MethodGet, "http://example.com/expenses", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), suite.controller, http.MethodGet, "http://example.com/expenses?userId=999", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Contains(r.Body.String(), "user not found")
}

func (suite *TestSuiteStandard) TestExpenseHistory() {
	user := suite.createTestUser(models.User{})

	suite.addTestExpense(v1.ExpenseCreate{UserID: user.ID, Amount: decimal.NewFromInt(4), Category: models.CategoryFood, Description: "Morning coffee", Date: "2026-08-01"})
	suite.addTestExpense(v1.ExpenseCreate{UserID: user.ID, Amount: decimal.NewFromInt(30), Category: models.CategoryFood, Description: "Dinner", Date: "2026-08-10"})
	suite.addTestExpense(v1.ExpenseCreate{UserID: user.ID, Amount: decimal.NewFromInt(50), Category: models.CategoryTravel, Description: "Train ticket", Date: "2026-08-20"})

	var history v1.ExpenseHistoryResponse

	// All expenses, newest date first
	r := test.Request(suite.T(), suite.controller, http.MethodGet, fmt.Sprintf("http://example.com/expenses_history?userId=%d", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &history)
	suite.Require().Len(history.Expenses, 3)
	suite.Assert().Equal("2026-08-20", history.Expenses[0].Date)

	// Category filter
	r = test.Request(suite.T(), suite.controller, http.MethodGet, fmt.Sprintf("http://example.com/expenses_history?userId=%d&category=food", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &history)
	suite.Assert().Len(history.Expenses, 2)

	// Inclusive date range
	r = test.Request(suite.T(), suite.controller, http.MethodGet, fmt.Sprintf("http://example.com/expenses_history?userId=%d&startDate=2026-08-10&endDate=2026-08-20", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &history)
	suite.Assert().Len(history.Expenses, 2)

	// Description search is a case-insensitive glob
	r = test.Request(suite.T(), suite.controller, http.MethodGet, fmt.Sprintf("http://example.com/expenses_history?userId=%d&search=COFFEE", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &history)
	suite.Require().Len(history.Expenses, 1)
	suite.Assert().Equal("Morning coffee", history.Expenses[0].Description)

	// Explicit wildcards work too
	r = test.Request(suite.T(), suite.controller, http.MethodGet, fmt.Sprintf("http://example.com/expenses_history?userId=%d&search=*ticket", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &history)
	suite.Assert().Len(history.Expenses, 1)

	// Invalid category
	r = test.Request(suite.T(), suite.controller, http.MethodGet, fmt.Sprintf("http://example.com/expenses_history?userId=%d&category=groceries", user.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
