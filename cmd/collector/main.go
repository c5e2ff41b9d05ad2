package main // Entry point for the weather collector

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/gabrielAlencar33564/weather/internal/collector"
	"github.com/gabrielAlencar33564/weather/internal/config"
	"github.com/gabrielAlencar33564/weather/internal/queue"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadCollector()

	pub, err := queue.NewPublisher(cfg.RabbitURL, cfg.QueueName)
	if err != nil {
		log.Fatalf("collector: %v", err)
	}
	defer pub.Close()

	job := collector.NewJob(cfg, collector.NewOpenMeteoClient(cfg.APIBaseURL), pub)

	log.Printf("collector started for %s (lat=%s lon=%s), schedule %q",
		cfg.CityName, cfg.CityLat, cfg.CityLon, cfg.CronSpec)

	// Collect once immediately, then on the configured schedule.
	job.Run()

	c := cron.New()
	if _, err := c.AddJob(cfg.CronSpec, job); err != nil {
		log.Fatalf("collector: invalid schedule %q: %v", cfg.CronSpec, err)
	}
	c.Run()
}
