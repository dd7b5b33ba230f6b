package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	h "eliteroadways/internal/http/handlers"
	"eliteroadways/internal/http/middleware"
)

func NewRouter(deps h.Deps) *gin.Engine {
	h.Configure(deps)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		bus := api.Group("/bus")
		bus.POST("/addbus", middleware.RequireAuth(), middleware.RequireAdmin(), h.AddBus)
		bus.GET("/getbus", h.GetBuses)
		bus.GET("/getbus/:busId", middleware.OptionalAuth(), h.GetBusByID)
		bus.GET("/search", h.SearchBuses)
		bus.POST("/bookseat", middleware.RequireAuth(), h.BookSeat)
		bus.POST("/cancelbooking", middleware.RequireAuth(), h.CancelBooking)

		bookings := api.Group("/bookings")
		bookings.GET("/:id/e-ticket", middleware.RequireAuth(), h.GetBookingETicket)

		payments := api.Group("/payments")
		payments.POST("/initiate", middleware.RequireAuth(), h.InitiatePayment)
		payments.GET("/success", h.PaymentSuccess)
		payments.GET("/failure", h.PaymentFailure)
	}

	return r
}
