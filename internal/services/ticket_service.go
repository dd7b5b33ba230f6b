package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"eliteroadways/internal/domain"
	"eliteroadways/internal/repositories"
	"eliteroadways/internal/utils"
)

// TicketService renders the e-ticket PDF for a committed booking.
type TicketService struct {
	BookingRepo repositories.BookingRepository
	BusRepo     repositories.BusRepository
	RequestID   string
}

// GenerateETicket returns the PDF bytes and a download filename. The caller
// is responsible for checking the requester may see this booking.
func (s TicketService) GenerateETicket(bookingID int64) ([]byte, string, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, "", err
	}
	bus, err := s.BusRepo.GetByID(booking.BusID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "ticket", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(booking, bus)
}

func buildETicketPDF(b domain.Booking, bus domain.Bus) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ELITE ROADWAYS E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Code   : #%d", b.ID),
		fmt.Sprintf("Bus Number     : %s", safe(bus.Number, "-")),
		fmt.Sprintf("Route          : %s", bus.Route()),
		fmt.Sprintf("Departure      : %s", bus.DepartureTime.Format("2 Jan 2006 15:04")),
		fmt.Sprintf("Seat(s)        : %s", safe(strings.Join(b.Seats, ", "), "-")),
		fmt.Sprintf("Pickup Point   : %s", safe(b.PickupLocation, "-")),
		fmt.Sprintf("Contact        : %s", safe(b.ContactNumber, "-")),
		fmt.Sprintf("Driver         : %s (%s)", safe(bus.Driver, "-"), safe(bus.DriverContact, "-")),
		fmt.Sprintf("Fare           : %s", utils.FormatNPR(b.Fare)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: please present this e-ticket when boarding. Seats are held under the booking contact above.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "render e-ticket", Err: err}
	}
	filename := fmt.Sprintf("eticket-%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
