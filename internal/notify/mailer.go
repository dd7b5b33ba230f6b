// Package notify sends best-effort booking confirmation email. Delivery
// failure never affects a committed booking; callers log and move on.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"eliteroadways/internal/utils"
)

type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password, from: from}
}

// SendBookingConfirmation emails the booking details to the user. Returns
// an error on delivery failure so the caller can log it.
func (m *Mailer) SendBookingConfirmation(userEmail, busNumber string, seats []string, route string, departure time.Time, fare int64) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat("Elite Roadways", m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(userEmail); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Booking Confirmation - Elite Roadways")
	msg.SetBodyString(mail.TypeTextHTML, confirmationBody(busNumber, seats, route, departure, fare))

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	utils.LogEvent("", "notify", "booking_confirmation", "sent to "+userEmail)
	return nil
}

func confirmationBody(busNumber string, seats []string, route string, departure time.Time, fare int64) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2 style="color: #2563eb;">Booking Confirmation</h2>
          <p>Dear Valued Customer,</p>
          <p>Your booking has been confirmed with <strong>Elite Roadways</strong>. Here are your booking details:</p>
          <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p><strong>Bus Number:</strong> %s</p>
            <p><strong>Seat Number:</strong> %s</p>
            <p><strong>Route:</strong> %s</p>
            <p><strong>Departure Time:</strong> %s</p>
            <p><strong>Fare:</strong> %s</p>
          </div>
          <p>Thank you for choosing Elite Roadways. We wish you a pleasant journey!</p>
          <p style="margin-top: 30px; color: #6b7280; font-size: 14px;">
            This is an automated email. Please do not reply to this message.
          </p>
        </div>`,
		busNumber,
		strings.Join(seats, ", "),
		route,
		departure.Format("2 Jan 2006 15:04"),
		utils.FormatNPR(fare),
	)
}
