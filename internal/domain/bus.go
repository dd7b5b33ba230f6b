package domain

import "time"

// Bus carries the static attributes of a scheduled coach. Seat occupancy is
// owned by the reservation engine, not by this struct; handlers read
// committed snapshots from there.
type Bus struct {
	ID            int64      `json:"id"`
	Number        string     `json:"busNumber"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureTime time.Time  `json:"departureTime"`
	FarePerSeat   int64      `json:"farePerSeat"`
	Driver        string     `json:"driver"`
	DriverContact string     `json:"driverContact"`
	Layout        SeatLayout `json:"layout"`
}

// Route renders "Origin - Destination" for tickets and emails.
func (b Bus) Route() string {
	return b.Origin + " - " + b.Destination
}

// Booking is one committed reservation. A multi-seat request produces a
// single Booking referenced by every seat it covers.
type Booking struct {
	ID             int64     `json:"id"`
	BusID          int64     `json:"busId"`
	UserID         int64     `json:"userId"`
	Seats          []string  `json:"seats"`
	ContactNumber  string    `json:"contactNumber"`
	PickupLocation string    `json:"pickupLocation"`
	Fare           int64     `json:"fare"`
	CreatedAt      time.Time `json:"createdAt"`
}

// User is the minimal account record the booking flow needs.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
