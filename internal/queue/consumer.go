package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/gabrielAlencar33564/weather/internal/repository"
)

// StartReadingConsumer connects to RabbitMQ, declares the durable
// reading queue and stores every event through the weather repository.
// It runs a reconnect loop with capped backoff and never returns under
// normal operation; malformed messages are rejected without requeue so
// a poison message cannot wedge the pipeline, while storage failures
// requeue for a later attempt.
func StartReadingConsumer(url, queueName string, readings *repository.WeatherRepo) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("reading-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, queueName, readings); err != nil {
			log.Printf("reading-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, queueName string, readings *repository.WeatherRepo) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("reading-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	log.Printf("reading-consumer: listening on queue %s", queueName)

	for d := range msgs {
		var ev ReadingEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			log.Printf("reading-consumer: invalid JSON: %v", err)
			_ = d.Nack(false, false) // poison message, drop
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		stored, err := readings.Insert(ctx, ev.Reading())
		cancel()
		if err != nil {
			log.Printf("reading-consumer: store failed: %v", err)
			_ = d.Nack(false, true) // transient, requeue
			time.Sleep(2 * time.Second)
			continue
		}

		log.Printf("reading-consumer: stored %s | %.1f°C", stored.City, stored.Temperature)
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}
