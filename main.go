package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "eliteroadways/internal/config"
	router "eliteroadways/internal/http"
	"eliteroadways/internal/http/handlers"
	"eliteroadways/internal/http/middleware"
	"eliteroadways/internal/notify"
	"eliteroadways/internal/payment"
	"eliteroadways/internal/repositories"
	"eliteroadways/internal/reservation"
	"eliteroadways/internal/services"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	if err := repositories.EnsureSchema(db); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	middleware.SetJWTSecret([]byte(env.JWTSecret))

	busRepo := repositories.BusRepository{DB: db}
	bookingRepo := repositories.BookingRepository{DB: db}
	userRepo := repositories.UserRepository{DB: db}

	mailer := notify.NewMailer(env.SMTPHost, env.SMTPPort, env.SMTPUser, env.SMTPPass, env.SMTPFrom)
	engine := reservation.NewEngine(bookingRepo, mailer)

	// Seed the ownership table with every persisted bus and its committed
	// bookings before accepting requests.
	buses, err := busRepo.List()
	if err != nil {
		log.Fatalf("failed to load buses: %v", err)
	}
	for _, bus := range buses {
		bookings, err := bookingRepo.ListByBus(bus.ID)
		if err != nil {
			log.Fatalf("failed to load bookings for bus %d: %v", bus.ID, err)
		}
		engine.Register(bus, bookings)
	}
	log.Printf("reservation engine seeded with %d buses", len(buses))

	gateway := payment.NewGateway(
		env.EsewaSecretKey,
		env.EsewaProductCode,
		env.EsewaFormURL,
		env.PaymentSuccessURL,
		env.PaymentFailureURL,
	)

	r := router.NewRouter(handlers.Deps{
		Engine:      engine,
		Gateway:     gateway,
		BusRepo:     busRepo,
		BookingRepo: bookingRepo,
		UserRepo:    userRepo,
		Tickets:     services.TicketService{BookingRepo: bookingRepo, BusRepo: busRepo},
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server running at http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}
