package api

import (
	"errors"
	"net/http"
	"time"

	"microblog/api/service"
	"microblog/api/validators"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type resetRequestBody struct {
	Email string `json:"email"`
}

type resetBody struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// PasswordResetRequest answers 200 whether or not the email is registered,
// so addresses can't be probed. The mail itself is fire-and-forget: a
// delivery failure never fails this request.
func (a *API) PasswordResetRequest(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resetRequestBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	user, err := a.Users.FindByEmail(data.Email)
	if err != nil {
		if !errors.Is(err, service.ErrIdentityNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	} else {
		ttl := time.Duration(viper.GetInt("app.reset_token_ttl")) * time.Second

		token, err := a.Signer.IssueResetToken(user.ID, ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to issue reset token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		a.Mailer.SendPasswordReset(user, token)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Check your email for instructions on resetting your password",
	})
}

// PasswordReset exchanges a valid reset token for a new password. Forged,
// expired and malformed tokens all get the same answer, as does a token
// whose account has since been deleted.
func (a *API) PasswordReset(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resetBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	userID, ok := a.Signer.VerifyResetToken(data.Token)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid or expired reset token",
			"requestID": requestID,
		})
		return
	}

	user, err := a.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrIdentityNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid or expired reset token",
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

	if err := a.Users.SetPassword(user, data.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to set password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Your password has been reset",
	})
}
