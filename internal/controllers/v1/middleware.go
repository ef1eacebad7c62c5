package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireAuth verifies the Bearer token and stores the authenticated
// user id in the request context.
func (co Controller) RequireAuth(c *gin.Context) {
	token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !found || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: errNoToken.Error()})
		return
	}

	userID, err := co.Tokens.Verify(token)
	if err != nil {
		c.AbortWithStatusJSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Set("userID", userID)
	c.Next()
}
