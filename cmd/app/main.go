package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmtran91/flybooking/config"
	"github.com/dmtran91/flybooking/internal/aiclient"
	"github.com/dmtran91/flybooking/internal/bootstrap"
	"github.com/dmtran91/flybooking/internal/cache"
	"github.com/dmtran91/flybooking/internal/flightapi"
	"github.com/dmtran91/flybooking/internal/kafka"
	"github.com/dmtran91/flybooking/internal/repository"
	"github.com/dmtran91/flybooking/internal/service/booking"
	"github.com/dmtran91/flybooking/internal/service/fees"
	"github.com/dmtran91/flybooking/internal/service/flights"
	"github.com/dmtran91/flybooking/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

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

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Booking.SearchCacheTTLSeconds)*time.Second,
		time.Duration(cfg.Booking.FeesCacheTTLSeconds)*time.Second,
	)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	feeRepo := repository.NewFeeRepository(pool)

	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	userService := users.NewUserService(userRepo, cfg.Auth.JWTSecret, tokenTTL)
	feeService := fees.NewFeeService(feeRepo, redisCache)
	flightService := flights.NewFlightService(
		flightapi.NewClient(cfg.FlightAPI.BaseURL, cfg.FlightAPI.APIKey),
		redisCache,
	)
	bookingService := booking.NewBookingService(
		bookingRepo,
		userService,
		feeService,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	svc := bootstrap.Services{
		Flights:  flightService,
		Bookings: bookingService,
		Users:    userService,
		Fees:     feeService,
	}
	if cfg.AIAPI.BaseURL != "" {
		svc.Assistant = aiclient.NewClient(cfg.AIAPI.BaseURL, cfg.AIAPI.APIKey)
	}

	if err := bootstrap.Run(ctx, cfg, svc); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
