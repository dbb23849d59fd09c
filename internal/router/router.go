// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mateen/socialnet/internal/handler"
	"github.com/mateen/socialnet/internal/middleware"
)

// Handlers groups every handler the API mounts, so registration takes
// one argument instead of six.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Friends  *handler.FriendHandler
	Rooms    *handler.RoomHandler
	Stories  *handler.StoryHandler
	Messages *handler.MessageHandler
}

// Register mounts every route on the provided Echo instance. Routes
// live under /api/v1; register and login are public (behind the rate
// limiter), everything else requires a valid access token.
func Register(e *echo.Echo, h Handlers, jwtSecret string, resolver middleware.PrincipalResolver, limiter echo.MiddlewareFunc) {
	// Health check for load balancers and monitoring; no auth.
	e.GET("/health", handler.Health)

	api := e.Group("/api/v1")

	api.POST("/register", h.Auth.Register, limiter)
	api.POST("/login", h.Auth.Login, limiter)

	auth := api.Group("", middleware.JWTAuth(jwtSecret, resolver))

	auth.GET("/users", h.Users.List)
	auth.GET("/users/:id", h.Users.Get)
	auth.POST("/users/change-password", h.Users.ChangePassword)

	auth.GET("/friends", h.Friends.List)
	auth.GET("/friends/requests", h.Friends.Requests)
	auth.POST("/friends/:id", h.Friends.Add)
	auth.PUT("/friends/:id", h.Friends.Accept)
	auth.DELETE("/friends/:id", h.Friends.Remove)

	auth.GET("/rooms", h.Rooms.List)
	auth.POST("/rooms", h.Rooms.Create)
	auth.GET("/rooms/:id", h.Rooms.Get)
	auth.PUT("/rooms/:id", h.Rooms.Update)
	auth.DELETE("/rooms/:id", h.Rooms.Delete)
	auth.GET("/rooms/:id/members", h.Rooms.GetMembers)
	auth.POST("/rooms/:id/members", h.Rooms.AddMember)
	auth.DELETE("/rooms/:id/members", h.Rooms.RemoveMember)

	auth.GET("/stories", h.Stories.Feed)
	auth.GET("/stories/self", h.Stories.Self)
	auth.POST("/stories", h.Stories.Create)
	auth.PUT("/stories/:id", h.Stories.Update)
	auth.DELETE("/stories/:id", h.Stories.Remove)

	auth.GET("/messages/:roomId", h.Messages.List)
	auth.POST("/messages/:roomId", h.Messages.Create)
}
