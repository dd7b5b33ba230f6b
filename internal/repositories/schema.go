package repositories

import "database/sql"

// EnsureSchema creates the tables the booking core needs when they do not
// exist yet. Safe to call on every startup.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT NOT NULL AUTO_INCREMENT,
			name VARCHAR(191) NOT NULL,
			email VARCHAR(191) NOT NULL,
			password_hash VARCHAR(191) NOT NULL,
			role VARCHAR(32) NOT NULL DEFAULT 'user',
			PRIMARY KEY (id),
			UNIQUE KEY uq_users_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS buses (
			id BIGINT NOT NULL AUTO_INCREMENT,
			bus_number VARCHAR(64) NOT NULL,
			origin VARCHAR(191) NOT NULL,
			destination VARCHAR(191) NOT NULL,
			departure_time DATETIME NOT NULL,
			fare_per_seat BIGINT NOT NULL,
			driver VARCHAR(191) NOT NULL DEFAULT '',
			driver_contact VARCHAR(64) NOT NULL DEFAULT '',
			layout_rows INT NOT NULL DEFAULT 10,
			layout_cols INT NOT NULL DEFAULT 4,
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT NOT NULL AUTO_INCREMENT,
			bus_id BIGINT NOT NULL,
			user_id BIGINT NOT NULL,
			contact_number VARCHAR(64) NOT NULL,
			pickup_location VARCHAR(191) NOT NULL,
			fare BIGINT NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (id),
			KEY idx_bookings_bus (bus_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS booking_seats (
			id BIGINT NOT NULL AUTO_INCREMENT,
			booking_id BIGINT NOT NULL,
			bus_id BIGINT NOT NULL,
			seat_code VARCHAR(8) NOT NULL,
			PRIMARY KEY (id),
			UNIQUE KEY uq_bus_seat (bus_id, seat_code),
			KEY idx_seats_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
