package repositories

import (
	"database/sql"
	"errors"

	intconfig "eliteroadways/internal/config"
	"eliteroadways/internal/domain"
)

type BusRepository struct {
	DB *sql.DB
}

func (r BusRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const busColumns = `id, bus_number, origin, destination, departure_time, fare_per_seat, driver, driver_contact, layout_rows, layout_cols`

func scanBus(row interface{ Scan(...any) error }) (domain.Bus, error) {
	var b domain.Bus
	err := row.Scan(
		&b.ID,
		&b.Number,
		&b.Origin,
		&b.Destination,
		&b.DepartureTime,
		&b.FarePerSeat,
		&b.Driver,
		&b.DriverContact,
		&b.Layout.Rows,
		&b.Layout.Cols,
	)
	return b, err
}

func (r BusRepository) Create(b domain.Bus) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO buses (bus_number, origin, destination, departure_time, fare_per_seat, driver, driver_contact, layout_rows, layout_cols)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Number, b.Origin, b.Destination, b.DepartureTime, b.FarePerSeat,
		b.Driver, b.DriverContact, b.Layout.Rows, b.Layout.Cols,
	)
	if err != nil {
		return 0, domain.UnavailableError{Msg: "insert bus", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (r BusRepository) GetByID(id int64) (domain.Bus, error) {
	if id <= 0 {
		return domain.Bus{}, domain.ValidationError{Field: "busId", Msg: "invalid id"}
	}
	b, err := scanBus(r.db().QueryRow(`SELECT `+busColumns+` FROM buses WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Bus{}, domain.NotFoundError{Resource: "bus", Err: err}
	}
	if err != nil {
		return domain.Bus{}, domain.UnavailableError{Msg: "query bus", Err: err}
	}
	return b, nil
}

func (r BusRepository) List() ([]domain.Bus, error) {
	rows, err := r.db().Query(`SELECT ` + busColumns + ` FROM buses ORDER BY departure_time, id`)
	if err != nil {
		return nil, domain.UnavailableError{Msg: "list buses", Err: err}
	}
	defer rows.Close()
	return collectBuses(rows)
}

// Search filters by origin and destination; either may be empty.
func (r BusRepository) Search(from, to string) ([]domain.Bus, error) {
	rows, err := r.db().Query(`
		SELECT `+busColumns+`
		FROM buses
		WHERE (? = '' OR LOWER(origin) = LOWER(?))
		  AND (? = '' OR LOWER(destination) = LOWER(?))
		ORDER BY departure_time, id`,
		from, from, to, to,
	)
	if err != nil {
		return nil, domain.UnavailableError{Msg: "search buses", Err: err}
	}
	defer rows.Close()
	return collectBuses(rows)
}

func collectBuses(rows *sql.Rows) ([]domain.Bus, error) {
	out := []domain.Bus{}
	for rows.Next() {
		b, err := scanBus(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.UnavailableError{Msg: "scan buses", Err: err}
	}
	return out, nil
}
