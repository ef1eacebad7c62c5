package v1

import (
	"net/http"
	"time"

	"github.com/budget-buddy/backend/internal/httputil"
	"github.com/budget-buddy/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RecurringAction selects the operation a recurring expense command
// performs.
type RecurringAction string

const (
	RecurringActionAdd    RecurringAction = "add"
	RecurringActionUpdate RecurringAction = "update"
	RecurringActionDelete RecurringAction = "delete"
	RecurringActionList   RecurringAction = "list"
)

// RecurringCommand is the tagged command body of the recurring expense
// endpoint. The optional fields are pointers so that a partial update
// only touches what the client actually sent.
type RecurringCommand struct {
	Action    RecurringAction            `json:"action"`
	UserID    uint64                     `json:"userId"`
	ID        uint64                     `json:"id"`
	Title     *string                    `json:"title"`
	Amount    *decimal.Decimal           `json:"amount"`
	Frequency *models.RecurringFrequency `json:"frequency"`
	StartDate *string                    `json:"startDate"`
	EndDate   *string                    `json:"endDate"`
	Status    *models.RecurringStatus    `json:"status"`
}

// The endpoint answers every action with a message and, where the
// action produces one, the affected row or list under the data key.
type RecurringItemResponse struct {
	Message string                  `json:"message"`
	Data    models.RecurringExpense `json:"data"`
}

type RecurringListResponse struct {
	Message string                    `json:"message"`
	Data    []models.RecurringExpense `json:"data"`
}

// RecurringExpenses dispatches a recurring expense command to the
// handler its action selects.
//
//	@Summary		Manage recurring expenses
//	@Description	Adds, updates, deletes or lists the recurring expenses of a user, selected by the action field
//	@Tags			RecurringExpenses
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	RecurringItemResponse
//	@Failure		400		{object}	httpMessage
//	@Failure		404		{object}	httpMessage
//	@Failure		500		{object}	httpMessage
//	@Param			command	body		RecurringCommand	true	"Command"
//	@Router			/recurring_expense [post]
func (co Controller) RecurringExpenses(c *gin.Context) {
	var cmd RecurringCommand
	if err := httputil.BindData(c, &cmd); err != nil {
		c.JSON(http.StatusBadRequest, httpMessage{Message: err.Error()})
		return
	}

	if cmd.Action == "" || cmd.UserID == 0 {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errActionRequired.Error()})
		return
	}

	switch cmd.Action {
	case RecurringActionAdd:
		co.addRecurring(c, cmd)
	case RecurringActionUpdate:
		co.updateRecurring(c, cmd)
	case RecurringActionDelete:
		co.deleteRecurring(c, cmd)
	case RecurringActionList:
		co.listRecurring(c, cmd)
	default:
		c.JSON(http.StatusBadRequest, httpMessage{Message: errInvalidAction.Error()})
	}
}

func (co Controller) addRecurring(c *gin.Context, cmd RecurringCommand) {
	if cmd.Title == nil || *cmd.Title == "" || cmd.Amount == nil || cmd.Frequency == nil {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errFieldsRequired.Error()})
		return
	}

	if !cmd.Frequency.Valid() {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errInvalidFrequency.Error()})
		return
	}

	recurringStatus := models.StatusActive
	if cmd.Status != nil {
		if !cmd.Status.Valid() {
			c.JSON(http.StatusBadRequest, httpMessage{Message: errInvalidStatus.Error()})
			return
		}
		recurringStatus = *cmd.Status
	}

	startDate := time.Now()
	if cmd.StartDate != nil {
		parsed, err := parseDate(*cmd.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpMessage{Message: err.Error()})
			return
		}
		startDate = parsed
	}

	var endDate *time.Time
	if cmd.EndDate != nil {
		parsed, err := parseDate(*cmd.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpMessage{Message: err.Error()})
			return
		}
		endDate = &parsed
	}

	recurring := models.RecurringExpense{
		Title:     *cmd.Title,
		Amount:    *cmd.Amount,
		Frequency: *cmd.Frequency,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    recurringStatus,
		UserID:    cmd.UserID,
	}
	if err := co.DB.Create(&recurring).Error; err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, RecurringItemResponse{
		Message: "Recurring expense added",
		Data:    recurring,
	})
}

func (co Controller) updateRecurring(c *gin.Context, cmd RecurringCommand) {
	if cmd.ID == 0 {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errIDRequired.Error()})
		return
	}

	updates := make(map[string]any)
	if cmd.Title != nil {
		updates["title"] = *cmd.Title
	}
	if cmd.Amount != nil {
		updates["amount"] = *cmd.Amount
	}
	if cmd.Frequency != nil {
		if !cmd.Frequency.Valid() {
			c.JSON(http.StatusBadRequest, httpMessage{Message: errInvalidFrequency.Error()})
			return
		}
		updates["frequency"] = *cmd.Frequency
	}
	if cmd.Status != nil {
		if !cmd.Status.Valid() {
			c.JSON(http.StatusBadRequest, httpMessage{Message: errInvalidStatus.Error()})
			return
		}
		updates["status"] = *cmd.Status
	}
	if cmd.StartDate != nil {
		parsed, err := parseDate(*cmd.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpMessage{Message: err.Error()})
			return
		}
		updates["start_date"] = parsed
	}
	if cmd.EndDate != nil {
		// An empty string reverts the expense to open-ended. A JSON
		// null decodes to a nil pointer and reads as absent.
		if *cmd.EndDate == "" {
			updates["end_date"] = nil
		} else {
			parsed, err := parseDate(*cmd.EndDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, httpMessage{Message: err.Error()})
				return
			}
			updates["end_date"] = parsed
		}
	}

	// The predicate includes the user id, so a row owned by someone
	// else updates zero rows and still reads as success.
	if len(updates) > 0 {
		err := co.DB.Model(&models.RecurringExpense{}).
			Where("id = ? AND user_id = ?", cmd.ID, cmd.UserID).
			Updates(updates).Error
		if err != nil {
			c.JSON(status(err), httpMessage{Message: err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, httpMessage{Message: "Recurring expense updated"})
}

func (co Controller) deleteRecurring(c *gin.Context, cmd RecurringCommand) {
	if cmd.ID == 0 {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errIDRequired.Error()})
		return
	}

	var recurring models.RecurringExpense
	err := co.DB.Where("id = ? AND user_id = ?", cmd.ID, cmd.UserID).First(&recurring).Error
	if err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	if err := co.DB.Delete(&recurring).Error; err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, httpMessage{Message: "Recurring expense deleted"})
}

func (co Controller) listRecurring(c *gin.Context, cmd RecurringCommand) {
	recurring, err := models.RecurringForUser(co.DB, cmd.UserID)
	if err != nil {
		c.JSON(status(err), httpMessage{Message: err.Error()})
		return
	}

	message := "Recurring expenses fetched"
	if len(recurring) == 0 {
		message = "No recurring expenses found"
		recurring = []models.RecurringExpense{}
	}

	c.JSON(http.StatusOK, RecurringListResponse{
		Message: message,
		Data:    recurring,
	})
}

// parseDate parses a YYYY-MM-DD date string.
func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, errInvalidDate
	}

	return parsed, nil
}
