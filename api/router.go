// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"microblog/api/db"
	"microblog/api/middleware"
	"microblog/api/security"
	"microblog/api/service"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB      *gorm.DB
	Router  *gin.Engine
	Hasher  *security.PasswordHasher
	Signer  *security.TokenSigner
	Users   *service.Users
	Follows *service.Follows
	Posts   *service.Posts
	Feed    *service.Feed
	Mailer  *service.Mailer
}

func NewRouter() (*API, error) {
	a := &API{}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = database

	makeLogger()

	a.Hasher = security.NewPasswordHasher()
	a.Signer = security.NewTokenSigner([]byte(viper.GetString("jwt.secret")))
	a.Users = service.NewUsers(database, a.Hasher)
	a.Follows = service.NewFollows(database)
	a.Posts = service.NewPosts(database)
	a.Feed = service.NewFeed(database, viper.GetInt("app.posts_per_page"))
	a.Mailer = service.NewMailer()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetUint("userID"); v != 0 {
					fields = append(fields, zap.Uint("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	auth := middleware.NewAuthMiddleware(a.Users)
	limited := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 2,
		Burst:             5,
	})

	main := router.Group("/api", middleware.BodySizeLimiter(1<<20))
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates the auth cookie
		main.HEAD("/validate", auth, a.Validate)
	}

	users := main.Group("/users")
	{
		// POST /api/users 		-> Registers a new account
		users.POST("", limited, a.UserRegister)

		// POST /api/users/login 	-> Logs in and sets the auth cookie
		users.POST("/login", limited, a.UserLogin)

		// POST /api/users/logout 	-> Clears the auth cookie
		users.POST("/logout", a.UserLogout)

		// PUT /api/users		-> Updates the caller's profile
		users.PUT("", auth, a.UserUpdate)

		// GET /api/users/:username	-> Returns a profile with follow counts
		users.GET("/:username", auth, a.UserFetch)

		// GET /api/users/:username/posts -> Returns a page of a user's posts
		users.GET("/:username/posts", auth, a.UserPosts)

		// POST /api/users/:username/follow -> Follows a user
		users.POST("/:username/follow", auth, a.UserFollow)

		// DELETE /api/users/:username/follow -> Unfollows a user
		users.DELETE("/:username/follow", auth, a.UserUnfollow)
	}

	posts := main.Group("/posts")
	{
		// POST /api/posts		-> Publishes a new post
		posts.POST("", auth, a.PostCreate)
	}

	// GET /api/feed		-> The caller's timeline: own posts + followed users
	main.GET("/feed", auth, a.FeedFetch)

	// GET /api/explore		-> Every post on the site, newest first
	main.GET("/explore", auth, cacheFor(30), a.Explore)

	password := main.Group("/password", limited)
	{
		// POST /api/password/reset-request -> Emails a reset token
		password.POST("/reset-request", a.PasswordResetRequest)

		// POST /api/password/reset	-> Sets a new password given a valid token
		password.POST("/reset", a.PasswordReset)
	}

	a.Mailer.StartWorkerPool()

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
