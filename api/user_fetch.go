package api

import (
	"errors"
	"net/http"

	"microblog/api/model"
	"microblog/api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) UserFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	caller := c.MustGet("user").(*model.User)

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

	followers, following, err := a.Follows.Counts(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count follows", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	isFollowing, err := a.Follows.IsFollowing(caller, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check follow state", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"avatar":      service.Avatar(user.Email, 128),
		"followers":   followers,
		"following":   following,
		"isFollowing": isFollowing,
	})
}
