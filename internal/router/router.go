package router // registers the API's HTTP routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Ricaps/tennis-club-reservations-management/internal/handler"
	"github.com/Ricaps/tennis-club-reservations-management/internal/middleware"
	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth         *handler.AuthHandler
	Surfaces     *handler.SurfaceHandler
	Courts       *handler.CourtHandler
	Users        *handler.UserHandler
	Reservations *handler.ReservationHandler
}

// Register wires all routes onto the Echo instance.  Unauthenticated
// surface is the health check, register and login; everything else
// requires a valid access token, and the management endpoints
// additionally require the ADMIN role.
//
// The cache middleware is applied only to the surface and court read
// routes, whose responses do not depend on the requesting user.
func Register(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	// Every route below carries a Bearer token.
	v1 := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	v1.GET("/me", h.Auth.Me)

	admin := middleware.RequireRole(model.RoleAdmin)

	surface := v1.Group("/surface")
	surface.GET("", h.Surfaces.List, cache)
	surface.GET("/:uid", h.Surfaces.Get, cache)
	surface.POST("", h.Surfaces.Create, admin)
	surface.PUT("/:uid", h.Surfaces.Update, admin)
	surface.DELETE("/:uid", h.Surfaces.Delete, admin)

	court := v1.Group("/court")
	court.GET("", h.Courts.List, cache)
	court.GET("/:uid", h.Courts.Get, cache)
	court.POST("", h.Courts.Create, admin)
	court.PUT("/:uid", h.Courts.Update, admin)
	court.DELETE("/:uid", h.Courts.Delete, admin)

	user := v1.Group("/user", admin)
	user.GET("", h.Users.List)
	user.GET("/:uid", h.Users.Get)
	user.POST("", h.Users.Create)
	user.PUT("/:uid", h.Users.Update)
	user.DELETE("/:uid", h.Users.Delete)

	res := v1.Group("/reservation")
	res.POST("", h.Reservations.Create)
	res.GET("", h.Reservations.List)
	res.GET("/court/:courtUid", h.Reservations.ListByCourt)
	res.GET("/user/:phoneNumber", h.Reservations.ListByPhoneNumber)
	res.GET("/:uid", h.Reservations.Get)
	res.PUT("/:uid", h.Reservations.Update)
	res.DELETE("/:uid", h.Reservations.Delete)
}
