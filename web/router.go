package web

import (
	"fmt"
	"log"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/pebblenet/pebble/db"
	"github.com/pebblenet/pebble/util"
	"golang.org/x/time/rate"
)

// Router starts the HTTP API server.
func Router(conf *util.AppConfig) error {
	log.Printf("Starting API server on %s:%d", conf.Conf.Host, conf.Conf.HttpPort)
	api := NewAPI(conf, db.GetDB())
	g := api.Engine()
	return g.Run(fmt.Sprintf(":%d", conf.Conf.HttpPort))
}

// Engine builds the router with all routes and middleware attached.
func (api *API) Engine() *gin.Engine {
	g := gin.Default()
	g.Use(gzip.Gzip(gzip.DefaultCompression))

	// Global rate limiter: 10 requests per second per IP, burst of 20
	globalLimiter := NewRateLimiter(rate.Limit(10), 20)
	g.Use(RateLimitMiddleware(globalLimiter))

	// Max 1MB request body size
	g.Use(MaxBytesMiddleware(1 * 1024 * 1024))

	auth := api.requireAuth()

	// Accounts
	g.POST("/users/register", api.HandleRegister)
	g.POST("/users/login", api.HandleLogin)
	g.DELETE("/users/me", auth, api.HandleDeleteAccount)
	g.POST("/users/:id/follow", auth, api.HandleFollow)
	g.POST("/users/:id/unfollow", auth, api.HandleUnfollow)
	g.GET("/users/:id/followers", auth, api.HandleFollowers)
	g.GET("/users/:id/following", auth, api.HandleFollowing)

	// Posts and likes; reads are public
	g.GET("/posts", api.HandleListPosts)
	g.POST("/posts", auth, api.HandleCreatePost)
	g.GET("/posts/:id", api.HandleGetPost)
	g.PUT("/posts/:id", auth, api.HandleUpdatePost)
	g.DELETE("/posts/:id", auth, api.HandleDeletePost)
	g.POST("/posts/:id/like", auth, api.HandleLikePost)
	g.POST("/posts/:id/unlike", auth, api.HandleUnlikePost)

	// Comments; reads are public
	g.GET("/comments", api.HandleListComments)
	g.POST("/comments", auth, api.HandleCreateComment)
	g.GET("/comments/:id", api.HandleGetComment)
	g.PUT("/comments/:id", auth, api.HandleUpdateComment)
	g.DELETE("/comments/:id", auth, api.HandleDeleteComment)
	g.GET("/comments/post/:post_id/list", api.HandleListCommentsByPost)

	// Notifications, scoped to the caller
	g.GET("/notifications", auth, api.HandleListNotifications)
	g.POST("/notifications/:id/read", auth, api.HandleMarkNotificationRead)

	// Direct messages, scoped to sender and recipient
	g.GET("/messages", auth, api.HandleListMessages)
	g.POST("/messages", auth, api.HandleSendMessage)
	g.GET("/messages/:id", auth, api.HandleGetMessage)

	// RSS Feed of public posts
	g.GET("/feed", func(c *gin.Context) {
		c.Header("Content-Type", "application/xml; charset=utf-8")

		username := c.Query("username")
		rss, err := api.GetRSS(username)
		if err != nil {
			c.Render(404, render.String{Format: ""})
		} else {
			c.Render(200, render.String{Format: rss})
		}
	})

	return g
}
