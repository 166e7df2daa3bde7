package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/airline-ticket-booking/internal/config"
	"github.com/iliyamo/airline-ticket-booking/internal/handler"
	"github.com/iliyamo/airline-ticket-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check used by
// load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterFlights registers the public flight browsing endpoints.  Both
// reads are wrapped in the Redis response cache; availability counts served
// from the cache may lag by the configured TTL.  A nil redis client
// disables caching without disabling the routes.
func RegisterFlights(e *echo.Echo, f *handler.FlightHandler, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/v1/flights", f.ListFlights, cache)
	e.GET("/v1/flights/:id", f.GetFlight, cache)
}

// RegisterOrders registers the authenticated order endpoints under /v1.
// Every route requires a valid Bearer token; the token-bucket rate limiter
// protects order creation from request floods.  A nil redis client
// disables rate limiting without disabling the routes.
func RegisterOrders(e *echo.Echo, o *handler.OrderHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group("/v1/orders")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	g.POST("", o.CreateOrder)
	g.GET("", o.ListOrders)
	g.GET("/:id", o.GetOrder)
}
