package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"                                  // Echo web framework
	"github.com/prometheus/client_golang/prometheus/promhttp"      // Prometheus metrics endpoint

	"github.com/iliyamo/restaurant-reservation/internal/handler"    // handlers implementing the endpoints
	"github.com/iliyamo/restaurant-reservation/internal/middleware" // JWT authorization gate
)

// RegisterRoutes wires every route of the API onto the provided Echo
// instance. The layout mirrors the external interface:
//
//	/healthz, /metrics, /images/*          – operational + static, no auth
//	/api/users/register, /api/users/login  – credential service, no auth
//	/api/restaurants, .../search           – catalog reader, no auth
//	/api/users/profile*, change-password   – identity-scoped, bearer
//	/api/reservations*                     – reservation store, bearer
//
// Every bearer route passes the JWT gate, which binds the caller
// identity into the context before the handler runs.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, r *handler.RestaurantHandler, rv *handler.ReservationHandler, jwtSecret string, imagesDir string, cacheMW echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Restaurant photos referenced by the catalog are served straight
	// from disk under a fixed prefix.
	e.Static("/images", imagesDir)

	auth := middleware.JWTAuth(jwtSecret)

	users := e.Group("/api/users")
	users.POST("/register", a.Register)
	users.POST("/login", a.Login)
	users.GET("/restaurants/search", r.Search) // public, despite the prefix
	users.GET("/profile/:userId", a.GetProfile, auth)
	users.PUT("/profile", a.UpdateProfile, auth)
	users.PUT("/change-password", a.ChangePassword, auth)

	if cacheMW != nil {
		e.GET("/api/restaurants", r.List, cacheMW)
	} else {
		e.GET("/api/restaurants", r.List)
	}

	res := e.Group("/api/reservations", auth)
	res.POST("", rv.Create)
	res.GET("/user/:userId", rv.List)
	res.PUT("/:id", rv.Update)
	res.DELETE("/:id", rv.Delete)
}
