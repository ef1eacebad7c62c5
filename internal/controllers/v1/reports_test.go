package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/budget-buddy/backend/internal/controllers/v1"
	"github.com/budget-buddy/backend/internal/models"
	"github.com/budget-buddy/backend/internal/report"
	"github.com/budget-buddy/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestGetReportsInvalidRange() {
	for _, url := range []string{
		"http://example.com/reports",
		"http://example.com/reports?startDate=2026-08-01",
		"http://example.com/reports?startDate=2026-08-01&endDate=tomorrow",
	} {
		r := test.Request(suite.T(), suite.controller, http.MethodGet, url, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		suite.Assert().Contains(r.Body.String(), "invalid date range")
	}
}

func (suite *TestSuiteStandard) TestGetReportsNoData() {
	r := test.Request(suite.T(), suite.controller, http.MethodGet, "http://example.com/reports?startDate=2026-01-01&endDate=2026-01-31", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	suite.Assert().Contains(r.Body.String(), "no report data found")
}

func (suite *TestSuiteStandard) TestGetReports() {
	user := suite.createTestUser(models.User{})

	suite.addTestExpense(v1.ExpenseCreate{UserID: user.ID, Amount: decimal.NewFromInt(10), Category: models.CategoryFood})
	suite.addTestExpense(v1.ExpenseCreate{UserID: user.ID, Amount: decimal.NewFromInt(20), Category: models.CategoryTravel})

	start := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	end := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	r := test.Request(suite.T(), suite.controller, http.MethodGet, fmt.Sprintf("http://example.com/reports?startDate=%s&endDate=%s", start, end), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var analytics report.Analytics
	test.DecodeResponse(suite.T(), &r, &analytics)

	suite.Assert().Equal(2, analytics.Insights.TotalTransactions)
	suite.Assert().True(analytics.Insights.HighestExpense.Equal(decimal.NewFromInt(20)))
	suite.Assert().Len(analytics.SpendingByCategory, 2)
}

func (suite *TestSuiteStandard) TestExportRequiresAuth() {
	r := test.Request(suite.T(), suite.controller, http.MethodGet, "http://example.com/reports/export", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	r = test.Request(suite.T(), suite.controller, http.MethodGet, "http://example.com/reports/export", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestExport() {
	user := suite.createTestUser(models.User{Name: "Priya", MonthlyBudget: decimal.NewFromInt(1000)})

	suite.addTestExpense(v1.ExpenseCreate{UserID: user.ID, Amount: decimal.NewFromInt(200), Category: models.CategoryFood, Description: "Groceries"})

	suite.Require().NoError(suite.db.Create(&models.RecurringExpense{
		UserID: user.ID, Title: "Rent", Amount: decimal.NewFromInt(800),
		Frequency: models.FrequencyMonthly, Status: models.StatusActive, StartDate: time.Now(),
	}).Error)

	token, err := suite.controller.Tokens.Issue(user.ID, user.Email)
	suite.Require().NoError(err)
	headers := map[string]string{"Authorization": "Bearer " + token}

	start := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	end := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	// Missing parameters
	r := test.Request(suite.T(), suite.controller, http.MethodGet, "http://example.com/reports/export", nil, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	// Unknown user
	r = test.Request(suite.T(), suite.controller, http.MethodGet, fmt.Sprintf("http://example.com/reports/export?userId=999&startDate=%s&endDate=%s", start, end), nil, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Contains(r.Body.String(), "user not found")

	r = test.Request(suite.T(), suite.controller, http.MethodGet, fmt.Sprintf("http://example.com/reports/export?userId=%d&startDate=%s&endDate=%s", user.ID, start, end), nil, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var result report.Report
	test.DecodeResponse(suite.T(), &r, &result)

	suite.Assert().True(result.Summary.TotalExpenses.Equal(decimal.NewFromInt(200)))
	suite.Assert().True(result.Summary.Budget.Equal(decimal.NewFromInt(1000)))
	suite.Assert().True(result.Summary.Remaining.Equal(decimal.NewFromInt(800)))

	suite.Require().Len(result.Transactions, 1)
	suite.Assert().Equal("Groceries", result.Transactions[0].Description)

	// Recurring rows are always rendered under the Bills category
	suite.Require().Len(result.RecurringExpenses, 1)
	suite.Assert().Equal("Bills", result.RecurringExpenses[0].Category)
}
