package v1

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/budget-buddy/backend/internal/httputil"
	"github.com/budget-buddy/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

type ExpenseCreate struct {
	UserID      uint64          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Category    models.Category `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// ExpenseResponse is the flat shape of a freshly recorded expense.
// Clients read the id from the top level.
type ExpenseResponse struct {
	ID          uint64          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    models.Category `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// ExpenseOverview is the spending overview of a user. Totals carries the
// cumulative per-category sums plus the totalSpentThisMonth,
// recurringMonthly and budgetRemaining figures.
type ExpenseOverview struct {
	Totals            map[string]decimal.Decimal `json:"totals"`
	RecentExpenses    []models.Expense           `json:"recentExpenses"`
	RecurringExpenses []models.RecurringExpense  `json:"recurringExpenses"`
}

type ExpenseHistoryResponse struct {
	Expenses []models.Expense `json:"expenses"`
}

// AddExpense records a spend event and bumps the matching category
// budget.
//
//	@Summary		Add expense
//	@Description	Records an expense and updates the spent counter of its category budget
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	ExpenseResponse
//	@Failure		400		{object}	httpMessage
//	@Failure		500		{object}	httpMessage
//	@Param			expense	body		ExpenseCreate	true	"Expense"
//	@Router			/expense-add [post]
func (co Controller) AddExpense(c *gin.Context) {
	var data ExpenseCreate
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(http.StatusBadRequest, httpMessage{Message: err.Error()})
		return
	}

	if data.UserID == 0 {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errUserIDRequired.Error()})
		return
	}

	if !data.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errInvalidAmount.Error()})
		return
	}

	if data.Category == "" {
		data.Category = models.CategoryOther
	}
	if !data.Category.Valid() {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errInvalidCategory.Error()})
		return
	}

	user, ok := co.fetchUser(c, data.UserID)
	if !ok {
		return
	}

	expense := models.Expense{
		Amount:      data.Amount,
		Category:    data.Category,
		Description: data.Description,
		Date:        data.Date,
		UserID:      user.ID,
	}
	if err := co.DB.Create(&expense).Error; err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	if _, err := models.RecordSpending(co.DB, user, expense.Category, expense.Amount); err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{
		ID:          expense.ID,
		Amount:      expense.Amount,
		Category:    expense.Category,
		Description: expense.Description,
		Date:        expense.Date,
	})
}

// GetExpenses returns the spending overview of a user.
//
//	@Summary		Spending overview
//	@Description	Returns totals, recent expenses and active recurring expenses of a user
//	@Tags			Expenses
//	@Produce		json
//	@Success		200		{object}	ExpenseOverview
//	@Failure		400		{object}	httpMessage
//	@Failure		500		{object}	httpMessage
//	@Param			userId	query		string	true	"ID of the user"
//	@Router			/expenses [get]
func (co Controller) GetExpenses(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Query("userId"), 10, 64)
	if userID == 0 {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errUserIDRequired.Error()})
		return
	}

	user, ok := co.fetchUser(c, userID)
	if !ok {
		return
	}

	expenses, err := models.ExpensesForUser(co.DB, user.ID)
	if err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	monthTotal, err := models.MonthToDateTotal(co.DB, user.ID, time.Now())
	if err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	recurringMonthly, err := models.MonthlyRecurringTotal(co.DB, user.ID)
	if err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	recurring, err := models.ActiveRecurringForUser(co.DB, user.ID)
	if err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	totals := make(map[string]decimal.Decimal)
	for category, amount := range models.TotalsByCategory(expenses) {
		totals[string(category)] = amount
	}
	totals["totalSpentThisMonth"] = monthTotal
	totals["recurringMonthly"] = recurringMonthly
	totals["budgetRemaining"] = user.MonthlyBudget.Sub(monthTotal).Sub(recurringMonthly)

	c.JSON(http.StatusOK, ExpenseOverview{
		Totals:            totals,
		RecentExpenses:    expenses,
		RecurringExpenses: recurring,
	})
}

// GetExpenseHistory returns the filtered expense history of a user.
//
//	@Summary		Expense history
//	@Description	Returns the expenses of a user, filtered by category, date range and a description search pattern
//	@Tags			Expenses
//	@Produce		json
//	@Success		200			{object}	ExpenseHistoryResponse
//	@Failure		400			{object}	httpMessage
//	@Failure		500			{object}	httpMessage
//	@Param			userId		query		string	true	"ID of the user"
//	@Param			category	query		string	false	"Filter by category"
//	@Param			startDate	query		string	false	"Inclusive lower bound on the expense date (YYYY-MM-DD)"
//	@Param			endDate		query		string	false	"Inclusive upper bound on the expense date (YYYY-MM-DD)"
//	@Param			search		query		string	false	"Glob pattern matched against the description"
//	@Router			/expenses_history [get]
func (co Controller) GetExpenseHistory(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Query("userId"), 10, 64)
	if userID == 0 {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errUserIDRequired.Error()})
		return
	}

	query := co.DB.Where("user_id = ?", userID)

	if category := c.Query("category"); category != "" {
		if !models.Category(category).Valid() {
			c.JSON(http.StatusBadRequest, httpMessage{Message: errInvalidCategory.Error()})
			return
		}
		query = query.Where("category = ?", category)
	}

	// The date column holds the user-supplied YYYY-MM-DD string, so the
	// bounds compare lexically.
	if startDate := c.Query("startDate"); startDate != "" {
		query = query.Where("date >= ?", startDate)
	}
	if endDate := c.Query("endDate"); endDate != "" {
		query = query.Where("date <= ?", endDate)
	}

	var expenses []models.Expense
	if err := query.Order("date DESC").Find(&expenses).Error; err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	if search := c.Query("search"); search != "" {
		pattern := strings.ToLower(search)
		if !strings.Contains(pattern, "*") {
			pattern = "*" + pattern + "*"
		}

		matched := make([]models.Expense, 0, len(expenses))
		for _, expense := range expenses {
			if glob.Glob(pattern, strings.ToLower(expense.Description)) {
				matched = append(matched, expense)
			}
		}
		expenses = matched
	}

	c.JSON(http.StatusOK, ExpenseHistoryResponse{Expenses: expenses})
}
