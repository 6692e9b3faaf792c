package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmtran91/flybooking/config"
	"github.com/dmtran91/flybooking/internal/email"
	"github.com/dmtran91/flybooking/internal/kafka"
	"github.com/dmtran91/flybooking/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker consumes booking notifications and delivers customer emails
// through the external email service. Delivery is at-least-once: a booking
// cancelled twice notifies twice.
func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	emailSender := email.NewSender(cfg.EmailAPI.BaseURL)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	log.Printf("notification worker consuming %s", cfg.Kafka.NotificationsTopic)
	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("WARNING: decode event: %v", err)
			return nil
		}

		b, err := bookingRepo.GetByOrderCode(ctx, event.OrderCode)
		if err != nil {
			log.Printf("WARNING: load booking %s for %s email: %v", event.OrderCode, event.Type, err)
			return nil
		}
		if err := emailSender.Send(ctx, event.Type, b); err != nil {
			log.Printf("WARNING: send %s email for booking %s: %v", event.Type, event.OrderCode, err)
		}
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("consumer error: %v", err)
	}
}
