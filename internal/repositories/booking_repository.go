package repositories

import (
	"database/sql"
	"errors"
	"sort"

	intconfig "eliteroadways/internal/config"
	"eliteroadways/internal/domain"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// CreateBooking inserts the booking row and one seat row per reserved seat
// in a single transaction, then fills in the generated id.
func (r BookingRepository) CreateBooking(b *domain.Booking) error {
	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO bookings (bus_id, user_id, contact_number, pickup_location, fare, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.BusID, b.UserID, b.ContactNumber, b.PickupLocation, b.Fare, b.CreatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for _, seat := range b.Seats {
		if _, err := tx.Exec(`
			INSERT INTO booking_seats (booking_id, bus_id, seat_code)
			VALUES (?, ?, ?)`,
			id, b.BusID, seat,
		); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	b.ID = id
	return nil
}

// DeleteBookingSeat removes one seat from a booking; when it was the last
// seat the booking row goes with it. Both happen in one transaction.
func (r BookingRepository) DeleteBookingSeat(bookingID int64, seatID string) error {
	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM booking_seats WHERE booking_id = ? AND seat_code = ?`, bookingID, seatID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	var remaining int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM booking_seats WHERE booking_id = ?`, bookingID).Scan(&remaining); err != nil {
		return err
	}
	if remaining == 0 {
		if _, err := tx.Exec(`DELETE FROM bookings WHERE id = ?`, bookingID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListByBus loads every committed booking on a bus with its seats, used to
// seed the reservation engine at startup.
func (r BookingRepository) ListByBus(busID int64) ([]domain.Booking, error) {
	rows, err := r.db().Query(`
		SELECT b.id, b.bus_id, b.user_id, b.contact_number, b.pickup_location, b.fare, b.created_at, s.seat_code
		FROM bookings b
		JOIN booking_seats s ON s.booking_id = b.id
		WHERE b.bus_id = ?
		ORDER BY b.id`,
		busID,
	)
	if err != nil {
		return nil, domain.UnavailableError{Msg: "list bookings", Err: err}
	}
	defer rows.Close()

	byID := map[int64]*domain.Booking{}
	order := []int64{}
	for rows.Next() {
		var b domain.Booking
		var seat string
		if err := rows.Scan(&b.ID, &b.BusID, &b.UserID, &b.ContactNumber, &b.PickupLocation, &b.Fare, &b.CreatedAt, &seat); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		existing, ok := byID[b.ID]
		if !ok {
			byID[b.ID] = &b
			existing = &b
			order = append(order, b.ID)
		}
		existing.Seats = append(existing.Seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.UnavailableError{Msg: "scan bookings", Err: err}
	}

	out := make([]domain.Booking, 0, len(order))
	for _, id := range order {
		b := byID[id]
		sort.Strings(b.Seats)
		out = append(out, *b)
	}
	return out, nil
}

func (r BookingRepository) GetByID(id int64) (domain.Booking, error) {
	if id <= 0 {
		return domain.Booking{}, domain.ValidationError{Field: "bookingId", Msg: "invalid id"}
	}
	var b domain.Booking
	err := r.db().QueryRow(`
		SELECT id, bus_id, user_id, contact_number, pickup_location, fare, created_at
		FROM bookings WHERE id = ? LIMIT 1`, id).
		Scan(&b.ID, &b.BusID, &b.UserID, &b.ContactNumber, &b.PickupLocation, &b.Fare, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if err != nil {
		return domain.Booking{}, domain.UnavailableError{Msg: "query booking", Err: err}
	}

	rows, err := r.db().Query(`SELECT seat_code FROM booking_seats WHERE booking_id = ? ORDER BY seat_code`, id)
	if err != nil {
		return domain.Booking{}, domain.UnavailableError{Msg: "query booking seats", Err: err}
	}
	defer rows.Close()
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return domain.Booking{}, domain.InternalError{Err: err}
		}
		b.Seats = append(b.Seats, seat)
	}
	if err := rows.Err(); err != nil {
		return domain.Booking{}, domain.UnavailableError{Msg: "scan booking seats", Err: err}
	}
	return b, nil
}
