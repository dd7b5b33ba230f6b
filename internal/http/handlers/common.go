package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eliteroadways/internal/http/middleware"
	"eliteroadways/internal/payment"
	"eliteroadways/internal/repositories"
	"eliteroadways/internal/reservation"
	"eliteroadways/internal/services"
)

// Deps are the shared collaborators the handlers dispatch to. Configured
// once at startup.
type Deps struct {
	Engine      *reservation.Engine
	Gateway     *payment.Gateway
	BusRepo     repositories.BusRepository
	BookingRepo repositories.BookingRepository
	UserRepo    repositories.UserRepository
	Tickets     services.TicketService
}

var deps Deps

// Configure installs the handler dependencies.
func Configure(d Deps) {
	deps = d
}

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
