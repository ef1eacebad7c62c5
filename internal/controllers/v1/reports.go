package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/budget-buddy/backend/internal/models"
	"github.com/budget-buddy/backend/internal/report"
	"github.com/gin-gonic/gin"
)

// GetReports returns the spending analytics over a date range. The
// analytics cover all users.
//
//	@Summary		Spending analytics
//	@Description	Returns spending by category, the daily trend and aggregate insights over a date range
//	@Tags			Reports
//	@Produce		json
//	@Success		200			{object}	report.Analytics
//	@Failure		400			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			startDate	query		string	true	"Start of the range (YYYY-MM-DD)"
//	@Param			endDate		query		string	true	"End of the range (YYYY-MM-DD)"
//	@Router			/reports [get]
func (co Controller) GetReports(c *gin.Context) {
	start, err := parseDate(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errInvalidDateRange.Error()})
		return
	}

	end, err := parseDate(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errInvalidDateRange.Error()})
		return
	}

	analytics, err := report.BuildAnalytics(co.DB, start, end)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// ExportReport returns the full report of a user over a date range.
//
//	@Summary		Export report
//	@Description	Returns the summary, category breakdown, transactions and recurring expenses of a user over a date range
//	@Tags			Reports
//	@Produce		json
//	@Security		Bearer
//	@Success		200			{object}	report.Report
//	@Failure		400			{object}	httpError
//	@Failure		401			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			userId		query		string	true	"ID of the user"
//	@Param			startDate	query		string	true	"Start of the range (YYYY-MM-DD)"
//	@Param			endDate		query		string	true	"End of the range (YYYY-MM-DD)"
//	@Router			/reports/export [get]
func (co Controller) ExportReport(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Query("userId"), 10, 64)
	if userID == 0 || c.Query("startDate") == "" || c.Query("endDate") == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errExportParamsUnset.Error()})
		return
	}

	start, err := parseDate(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errInvalidDateRange.Error()})
		return
	}

	end, err := parseDate(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errInvalidDateRange.Error()})
		return
	}
	// Include the full end day
	end = end.Add(24*time.Hour - time.Nanosecond)

	var user models.User
	if err := co.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			c.JSON(http.StatusBadRequest, httpError{Error: errUserNotFound.Error()})
			return
		}

		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	recurring, err := models.RecurringForUser(co.DB, user.ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	result, err := report.Build(co.DB, user, start, end, recurring)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
