package api

import (
	"errors"
	"net/http"

	"microblog/api/model"
	"microblog/api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type postBody struct {
	Body string `json:"body"`
}

func (a *API) PostCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	var data postBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	post, err := a.Posts.Create(user, data.Body)
	if err != nil {
		if errors.Is(err, service.ErrInvalidBody) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create post", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"post": post,
	})
}
