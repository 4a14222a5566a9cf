// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking/internal/handler"
	"github.com/iliyamo/movie-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes. Unauthenticated
// operations live under /v1/auth; /v1/me and /v1/auth/logout sit
// behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout by refresh token needs no JWT; logout-everywhere does and
	// is registered below.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/auth/logout-all", a.Logout)
}

// RegisterCatalog registers the movie catalog and showtime endpoints.
// Reads are public and sit behind the optional response cache; writes
// require a valid JWT. cacheMW may be nil.
func RegisterCatalog(e *echo.Echo, m *handler.MovieHandler, s *handler.ShowtimeHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	pub := e.Group("/v1")
	if cacheMW != nil {
		pub.Use(cacheMW)
	}
	pub.GET("/movies", m.List)
	pub.GET("/movies/:id", m.Get)
	pub.GET("/movies/:id/showtimes", s.ListByMovie)
	pub.GET("/showtimes", s.List)
	pub.GET("/showtimes/:id", s.Get)
	pub.GET("/showtimes/:id/seats", s.SeatMap)

	priv := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	priv.POST("/movies", m.Create)
	priv.PUT("/movies/:id", m.Update)
	priv.DELETE("/movies/:id", m.Delete)
	priv.POST("/showtimes", s.Create)
	priv.DELETE("/showtimes/:id", s.Delete)
}

// RegisterBooking registers the booking endpoints. Every route
// requires a valid JWT; the acting user comes from the token. The
// booking routes are deliberately kept away from the response cache
// so seat state is always read fresh.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	g.POST("/bookings", b.Create)
	g.GET("/bookings/totals", b.Totals)
	g.GET("/bookings/:id", b.Get)
	g.DELETE("/bookings/:id", b.Delete)
	g.GET("/my-bookings", b.List)
}
