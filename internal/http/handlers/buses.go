package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"eliteroadways/internal/domain"
	"eliteroadways/internal/http/middleware"
	"eliteroadways/internal/utils"
)

type addBusRequest struct {
	BusNumber     string `json:"busNumber" binding:"required"`
	Origin        string `json:"origin" binding:"required"`
	Destination   string `json:"destination" binding:"required"`
	DepartureTime string `json:"departureTime" binding:"required"`
	FarePerSeat   int64  `json:"farePerSeat" binding:"required,gt=0"`
	Driver        string `json:"driver"`
	DriverContact string `json:"driverContact"`
	LayoutRows    int    `json:"layoutRows"`
	LayoutCols    int    `json:"layoutCols"`
}

// POST /api/bus/addbus (administrator only)
func AddBus(c *gin.Context) {
	var req addBusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "departureTime", Msg: "must be RFC3339", Err: err})
		return
	}

	layout := domain.DefaultLayout
	if req.LayoutRows > 0 && req.LayoutCols > 0 {
		if req.LayoutCols > 26 {
			RespondDomainError(c, domain.ValidationError{Field: "layoutCols", Msg: "at most 26 columns"})
			return
		}
		layout = domain.SeatLayout{Rows: req.LayoutRows, Cols: req.LayoutCols}
	}

	bus := domain.Bus{
		Number:        utils.NormalizeSpace(req.BusNumber),
		Origin:        utils.NormalizeSpace(req.Origin),
		Destination:   utils.NormalizeSpace(req.Destination),
		DepartureTime: departure,
		FarePerSeat:   req.FarePerSeat,
		Driver:        utils.NormalizeSpace(req.Driver),
		DriverContact: utils.NormalizeSpace(req.DriverContact),
		Layout:        layout,
	}

	id, err := deps.BusRepo.Create(bus)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	bus.ID = id
	deps.Engine.Register(bus, nil)

	utils.LogEvent(middleware.GetRequestID(c), "bus", "add", "bus_id="+strconv.FormatInt(id, 10))
	c.JSON(http.StatusCreated, gin.H{"success": true, "bus": bus})
}

// GET /api/bus/getbus
func GetBuses(c *gin.Context) {
	buses, err := deps.BusRepo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]gin.H, 0, len(buses))
	for _, bus := range buses {
		entry := gin.H{"bus": bus, "totalSeats": bus.Layout.TotalSeats()}
		if booked, err := deps.Engine.BookedSeats(bus.ID); err == nil {
			entry["bookedSeats"] = booked
			entry["availableSeats"] = bus.Layout.TotalSeats() - len(booked)
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"buses": out})
}

// GET /api/bus/getbus/:busId
//
// Seat availability comes from the engine's committed snapshot; it is
// display-only and re-validated at booking time. Booking contact details
// are included only for administrators.
func GetBusByID(c *gin.Context) {
	busID, err := strconv.ParseInt(c.Param("busId"), 10, 64)
	if err != nil || busID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "busId", Msg: "invalid id"})
		return
	}

	bus, err := deps.Engine.Bus(busID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	booked, err := deps.Engine.BookedSeats(busID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	resp := gin.H{
		"bus":            bus,
		"seats":          bus.Layout.SeatIDs(),
		"bookedSeats":    booked,
		"availableSeats": bus.Layout.TotalSeats() - len(booked),
	}

	admin := middleware.GetRequester(c).IsAdmin()

	// ?seat=5A or ?seat=5A,5B resolves per-seat status; administrators
	// also see the holding booking's contact details.
	if raw := c.Query("seat"); raw != "" {
		status := make([]gin.H, 0, 4)
		for _, id := range utils.SplitSeatList(raw) {
			holder, held, err := deps.Engine.Holder(busID, id)
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			entry := gin.H{"seat": id, "booked": held}
			if held && admin {
				entry["bookingId"] = holder.ID
				entry["contactNumber"] = holder.ContactNumber
				entry["pickupLocation"] = holder.PickupLocation
			}
			status = append(status, entry)
		}
		resp["seatStatus"] = status
	}

	if admin {
		ledger, err := deps.Engine.Ledger(busID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		resp["bookings"] = ledger
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/bus/search?from=&to=
func SearchBuses(c *gin.Context) {
	from := utils.NormalizeSpace(c.Query("from"))
	to := utils.NormalizeSpace(c.Query("to"))
	if from == "" && to == "" {
		RespondDomainError(c, domain.ValidationError{Field: "from/to", Msg: "at least one of from or to is required"})
		return
	}

	buses, err := deps.BusRepo.Search(from, to)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buses": buses})
}
