package api

import (
	"errors"
	"net/http"

	"microblog/api/model"
	"microblog/api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Self-follow is legal as far as the graph is concerned; this is where the
// policy against it lives.
func (a *API) UserFollow(c *gin.Context) {
	a.changeFollow(c, true)
}

func (a *API) UserUnfollow(c *gin.Context) {
	a.changeFollow(c, false)
}

func (a *API) changeFollow(c *gin.Context, follow bool) {
	requestID := c.MustGet("requestID").(string)
	caller := c.MustGet("user").(*model.User)

	target, err := a.Users.FindByUsername(c.Param("username"))
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

	if target.ID == caller.ID {
		msg := "You cannot follow yourself"
		if !follow {
			msg = "You cannot unfollow yourself"
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     msg,
			"requestID": requestID,
		})
		return
	}

	if follow {
		err = a.Follows.Follow(caller, target)
	} else {
		err = a.Follows.Unfollow(caller, target)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to change follow state", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":  target.Username,
		"following": follow,
	})
}
