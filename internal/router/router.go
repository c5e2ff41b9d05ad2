package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/gabrielAlencar33564/weather/internal/config"
	"github.com/gabrielAlencar33564/weather/internal/handler"
	"github.com/gabrielAlencar33564/weather/internal/middleware"
)

// Handlers groups everything RegisterRoutes wires up.  Dependencies are
// passed in explicitly; there is no registry or reflection involved.
type Handlers struct {
	Auth    *handler.AuthHandler
	Users   *handler.UserHandler
	Weather *handler.WeatherHandler
	Pokemon *handler.PokemonHandler
}

// RegisterRoutes mounts the whole HTTP surface on the provided Echo
// instance.  The admin-only and owner-or-admin guards are composed per
// route from the two independent policy middlewares.
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	jwtAuth := middleware.JWTAuth(cfg.JWTSecret)

	// Credential endpoints are rate limited; everything else is not.
	e.POST("/v1/auth/login", h.Auth.Login, limiter)
	e.POST("/v1/users", h.Users.Create, limiter)

	// Ingest is public so external workers can post readings directly;
	// the broker consumer uses the repository instead of this route.
	e.POST("/v1/weather", h.Weather.Ingest)

	// Explore proxy: public, cached.
	e.GET("/v1/explore/pokemons", h.Pokemon.List, cache)
	e.GET("/v1/explore/pokemons/:id", h.Pokemon.Get, cache)

	// Protected routes require a valid access token.
	auth := e.Group("/v1", jwtAuth)
	auth.GET("/auth/me", h.Auth.Me)

	auth.GET("/users", h.Users.List, middleware.RequireAdmin())
	auth.GET("/users/:id", h.Users.Get, middleware.RequireOwner("id"))
	auth.PATCH("/users/:id", h.Users.Update, middleware.RequireOwner("id"))
	auth.DELETE("/users/:id", h.Users.Delete, middleware.RequireOwner("id"))

	auth.GET("/weather", h.Weather.List, cache)
	auth.GET("/weather/insights", h.Weather.Insights)
	auth.GET("/weather/export.xlsx", h.Weather.ExportXLSX)
	auth.GET("/weather/export.csv", h.Weather.ExportCSV)
}
