package bootstrap

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dmtran91/flybooking/api"
	"github.com/dmtran91/flybooking/config"
	"github.com/dmtran91/flybooking/internal/aiclient"
	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/dmtran91/flybooking/internal/service/booking"
	"github.com/dmtran91/flybooking/internal/service/fees"
	"github.com/dmtran91/flybooking/internal/service/flights"
	"github.com/dmtran91/flybooking/internal/service/users"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services carries everything the HTTP layer depends on.
type Services struct {
	Flights   flights.FlightUseCase
	Bookings  booking.BookingUseCase
	Users     users.UserUseCase
	Fees      fees.FeeUseCase
	Assistant *aiclient.Client
}

// Run starts the HTTP server and blocks until the context is cancelled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	server := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, svc),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTP.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// NewRouter wires all route groups. Checkout stays open to anonymous clients;
// the session, when present, binds the booking to the account.
func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	secret := cfg.Auth.JWTSecret
	v1 := router.Group("/api/v1")

	api.NewFlightHandler(svc.Flights).Register(v1.Group("/flights"))

	bookings := v1.Group("/bookings", api.OptionalAuth(secret))
	myBookings := v1.Group("/my/bookings", api.AuthRequired(secret, ""))
	api.NewBookingHandler(svc.Bookings).Register(bookings, myBookings)

	usersGroup := v1.Group("/users")
	me := v1.Group("/users", api.AuthRequired(secret, ""))
	api.NewUserHandler(svc.Users).Register(usersGroup, me)

	admin := v1.Group("/admin", api.AuthRequired(secret, domain.RoleAdmin))
	api.NewAdminHandler(svc.Bookings, svc.Fees, svc.Users).Register(admin)

	if svc.Assistant != nil {
		api.NewAssistantHandler(svc.Assistant).Register(v1.Group("/assistant"))
	}

	return router
}
