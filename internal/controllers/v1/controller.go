// Package v1 contains the HTTP handlers of the API.
package v1

import (
	"errors"
	"net/http"

	"github.com/budget-buddy/backend/internal/auth"
	"github.com/budget-buddy/backend/internal/events"
	"github.com/budget-buddy/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controller holds the collaborators the handlers work with. It is
// constructed once at startup and passed to the router.
type Controller struct {
	DB     *gorm.DB
	Bus    *events.Bus
	Tokens auth.Tokens
}

func NewController(db *gorm.DB, bus *events.Bus, tokens auth.Tokens) Controller {
	return Controller{
		DB:     db,
		Bus:    bus,
		Tokens: tokens,
	}
}

// fetchUser loads a user by id and responds with 400 when no such user
// exists. The boolean reports whether the caller may proceed.
func (co Controller) fetchUser(c *gin.Context, id uint64) (models.User, bool) {
	var user models.User
	err := co.DB.First(&user, id).Error
	if err == nil {
		return user, true
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		c.JSON(http.StatusBadRequest, httpMessage{Message: errUserNotFound.Error()})
	} else {
		c.JSON(status(err), httpMessage{Message: err.Error()})
	}

	return models.User{}, false
}
