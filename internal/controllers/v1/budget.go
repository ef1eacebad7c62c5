package v1

import (
	"net/http"

	"github.com/budget-buddy/backend/internal/httputil"
	"github.com/budget-buddy/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetAction selects whether a budget command reads or writes the
// overall budget.
type BudgetAction string

const (
	BudgetActionGet  BudgetAction = "GET"
	BudgetActionPost BudgetAction = "POST"
)

type BudgetCommand struct {
	Action BudgetAction    `json:"action"`
	UserID uint64          `json:"userId"`
	Amount decimal.Decimal `json:"amount"`
}

type OverallBudget struct {
	Amount          decimal.Decimal `json:"amount"`
	TotalSpending   decimal.Decimal `json:"totalSpending"`
	RemainingBudget decimal.Decimal `json:"remainingBudget"`
}

type BudgetOverviewResponse struct {
	Message       string                  `json:"message"`
	OverallBudget OverallBudget           `json:"overallBudget"`
	Categories    []models.CategoryBudget `json:"categories"`
}

type BudgetAmount struct {
	Amount decimal.Decimal `json:"amount"`
}

type BudgetUpdateResponse struct {
	Message           string            `json:"message"`
	OverallBudget     BudgetAmount      `json:"overallBudget"`
	CategoriesCreated []models.Category `json:"categoriesCreated"`
}

type CategoryLimitRequest struct {
	UserID uint64          `json:"userId"`
	Name   models.Category `json:"name"`
	Limit  decimal.Decimal `json:"limit"`
}

type CategoryLimitResponse struct {
	Message  string                `json:"message"`
	Category models.CategoryBudget `json:"category"`
}

// BudgetUpdate reads or writes the overall monthly budget of a user,
// selected by the action field.
//
//	@Summary		Read or set the monthly budget
//	@Description	Returns the budget overview (action GET) or sets the monthly budget and backfills missing category rows (action POST)
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	BudgetOverviewResponse
//	@Failure		400		{object}	httpMessage
//	@Failure		500		{object}	httpMessage
//	@Param			command	body		BudgetCommand	true	"Command"
//	@Router			/budget/update [post]
func (co Controller) BudgetUpdate(c *gin.Context) {
	var cmd BudgetCommand
	if err := httputil.BindData(c, &cmd); err != nil {
		c.JSON(http.StatusBadRequest, httpMessage{Message: err.Error()})
		return
	}

	if cmd.UserID == 0 {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errUserIDRequired.Error()})
		return
	}

	switch cmd.Action {
	case BudgetActionGet:
		co.getBudget(c, cmd)
	case BudgetActionPost:
		co.setBudget(c, cmd)
	default:
		c.JSON(http.StatusBadRequest, httpMessage{Message: errInvalidAction.Error()})
	}
}

func (co Controller) getBudget(c *gin.Context, cmd BudgetCommand) {
	user, ok := co.fetchUser(c, cmd.UserID)
	if !ok {
		return
	}

	budgets, err := models.CategoryBudgetsForUser(co.DB, user.ID)
	if err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	totalSpending := models.TotalSpent(budgets)

	c.JSON(http.StatusOK, BudgetOverviewResponse{
		Message: "Budget fetched successfully",
		OverallBudget: OverallBudget{
			Amount:          user.MonthlyBudget,
			TotalSpending:   totalSpending,
			RemainingBudget: user.MonthlyBudget.Sub(totalSpending),
		},
		Categories: budgets,
	})
}

func (co Controller) setBudget(c *gin.Context, cmd BudgetCommand) {
	user, ok := co.fetchUser(c, cmd.UserID)
	if !ok {
		return
	}

	user.MonthlyBudget = cmd.Amount
	if err := co.DB.Save(&user).Error; err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	budgets, err := models.CategoryBudgetsForUser(co.DB, user.ID)
	if err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	existing := make(map[models.Category]bool, len(budgets))
	for _, b := range budgets {
		existing[b.Name] = true
	}

	// Existing rows keep their limits, only the gaps are filled.
	created := make([]models.Category, 0)
	for _, category := range models.Categories() {
		if existing[category] {
			continue
		}

		budget := models.CategoryBudget{
			UserID: user.ID,
			Name:   category,
			Limit:  cmd.Amount,
		}
		if err := co.DB.Create(&budget).Error; err != nil {
			c.JSON(status(err), httpMessage{Message: err.Error()})
			return
		}
		created = append(created, category)
	}

	c.JSON(http.StatusOK, BudgetUpdateResponse{
		Message:           "Budget updated successfully",
		OverallBudget:     BudgetAmount{Amount: user.MonthlyBudget},
		CategoriesCreated: created,
	})
}

// SetCategoryLimit creates or overwrites the limit of one category
// budget.
//
//	@Summary		Set a category limit
//	@Description	Creates the category budget row or overwrites its limit, leaving the spent counter untouched
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	CategoryLimitResponse
//	@Failure		400		{object}	httpMessage
//	@Failure		500		{object}	httpMessage
//	@Param			limit	body		CategoryLimitRequest	true	"Category limit"
//	@Router			/budget/category [post]
func (co Controller) SetCategoryLimit(c *gin.Context) {
	var data CategoryLimitRequest
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(http.StatusBadRequest, httpMessage{Message: err.Error()})
		return
	}

	if data.UserID == 0 {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errUserIDRequired.Error()})
		return
	}

	if !data.Name.Valid() {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errInvalidCategory.Error()})
		return
	}

	user, ok := co.fetchUser(c, data.UserID)
	if !ok {
		return
	}

	budget, err := models.SetCategoryLimit(co.DB, user.ID, data.Name, data.Limit)
	if err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryLimitResponse{
		Message:  "Category budget saved",
		Category: budget,
	})
}
