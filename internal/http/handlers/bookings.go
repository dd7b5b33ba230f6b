package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"eliteroadways/internal/domain"
	"eliteroadways/internal/http/middleware"
	"eliteroadways/internal/utils"
)

type bookSeatRequest struct {
	BusID          int64    `json:"busId" binding:"required,gt=0"`
	Seats          []string `json:"seats" binding:"required,min=1"`
	PickupLocation string   `json:"pickupLocation" binding:"required"`
	ContactNumber  string   `json:"contactNumber" binding:"required"`
}

// POST /api/bus/bookseat
func BookSeat(c *gin.Context) {
	var req bookSeatRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	requester := middleware.GetRequester(c)
	booking, err := deps.Engine.Reserve(
		c.Request.Context(),
		req.BusID,
		req.Seats,
		requester,
		req.ContactNumber,
		req.PickupLocation,
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "booking", "reserve",
		"bus_id="+strconv.FormatInt(req.BusID, 10)+" seats="+strings.Join(booking.Seats, ","))
	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": booking})
}

type cancelBookingRequest struct {
	BusID int64  `json:"busId" binding:"required,gt=0"`
	Seat  string `json:"seat" binding:"required"`
}

// POST /api/bus/cancelbooking
func CancelBooking(c *gin.Context) {
	var req cancelBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	requester := middleware.GetRequester(c)
	if err := deps.Engine.Cancel(c.Request.Context(), req.BusID, req.Seat, requester); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "booking", "cancel",
		"bus_id="+strconv.FormatInt(req.BusID, 10)+" seat="+req.Seat)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/bookings/:id/e-ticket
func GetBookingETicket(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "bookingId", Msg: "invalid id"})
		return
	}

	booking, err := deps.BookingRepo.GetByID(bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	requester := middleware.GetRequester(c)
	if booking.UserID != requester.UserID && !requester.IsAdmin() {
		RespondDomainError(c, domain.NotAuthorizedError{Msg: "booking belongs to another user"})
		return
	}

	tickets := deps.Tickets
	tickets.RequestID = middleware.GetRequestID(c)
	pdf, filename, err := tickets.GenerateETicket(bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
