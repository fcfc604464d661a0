package api

import (
	"net/http"
	"strconv"

	"microblog/api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// pageParam reads ?page= with the same forgiveness as the feed itself:
// anything unparseable is page 1, out-of-range values are left for the
// feed to answer with an empty page.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}

	return page
}

func (a *API) FeedFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	page, err := a.Feed.ForUser(user, pageParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to build feed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, page)
}

func (a *API) Explore(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	page, err := a.Feed.Explore(pageParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to build explore page", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, page)
}
