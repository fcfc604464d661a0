package api

import (
	"errors"
	"net/http"

	"microblog/api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) UserPosts(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	user, err := a.Users.FindByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrIdentityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	page, err := a.Feed.ByAuthor(user, pageParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user posts", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, page)
}
