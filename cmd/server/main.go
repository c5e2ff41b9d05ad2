package main // Entry point for the dashboard API server

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/gabrielAlencar33564/weather/internal/config"
	"github.com/gabrielAlencar33564/weather/internal/database"
	"github.com/gabrielAlencar33564/weather/internal/handler"
	"github.com/gabrielAlencar33564/weather/internal/insight"
	"github.com/gabrielAlencar33564/weather/internal/pokeapi"
	"github.com/gabrielAlencar33564/weather/internal/queue"
	"github.com/gabrielAlencar33564/weather/internal/repository"
	"github.com/gabrielAlencar33564/weather/internal/router"
)

func main() {
	_ = godotenv.Load() // best effort; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	users := repository.NewUserRepo(db)
	readings := repository.NewWeatherRepo(db)

	// Seed the bootstrap administrator exactly once per boot.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := users.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPass, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatalf("ensure admin: %v", err)
	}
	cancel()

	analyzer := insight.NewAnalyzer(insight.NewGeminiClient(cfg.GeminiAPIKey))

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	h := router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, users),
		Users:   handler.NewUserHandler(cfg, users),
		Weather: handler.NewWeatherHandler(readings, analyzer),
		Pokemon: handler.NewPokemonHandler(pokeapi.NewClient(cfg.PokeAPIBaseURL)),
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, cfg, h, rdb)

	// Drain collector readings from the broker in the background.
	go queue.StartReadingConsumer(cfg.RabbitURL, cfg.QueueName, readings)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
