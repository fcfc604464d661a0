package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate answers 204 when the auth middleware in front of it let the
// request through.
func (a *API) Validate(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
