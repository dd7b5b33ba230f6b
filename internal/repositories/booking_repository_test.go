package repositories

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"eliteroadways/internal/domain"
)

func TestCreateBookingInsertsSeatsTransactionally(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(1), int64(7), "9841000000", "Kalanki", int64(1000), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO booking_seats").
		WithArgs(int64(42), int64(1), "1A").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO booking_seats").
		WithArgs(int64(42), int64(1), "1B").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	repo := BookingRepository{DB: db}
	b := domain.Booking{
		BusID:          1,
		UserID:         7,
		Seats:          []string{"1A", "1B"},
		ContactNumber:  "9841000000",
		PickupLocation: "Kalanki",
		Fare:           1000,
		CreatedAt:      time.Now(),
	}
	if err := repo.CreateBooking(&b); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.ID != 42 {
		t.Fatalf("expected id 42, got %d", b.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRollsBackOnSeatInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO booking_seats").
		WillReturnError(errors.New("duplicate entry"))
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	b := domain.Booking{BusID: 1, UserID: 7, Seats: []string{"1A"}, CreatedAt: time.Now()}
	if err := repo.CreateBooking(&b); err == nil {
		t.Fatal("expected error")
	}
	if b.ID != 0 {
		t.Fatalf("failed insert must not assign an id, got %d", b.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteBookingSeatRemovesEmptyBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM booking_seats").
		WithArgs(int64(42), "3B").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM booking_seats").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM bookings").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := BookingRepository{DB: db}
	if err := repo.DeleteBookingSeat(42, "3B"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteBookingSeatKeepsBookingWithRemainingSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM booking_seats").
		WithArgs(int64(42), "1A").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM booking_seats").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	repo := BookingRepository{DB: db}
	if err := repo.DeleteBookingSeat(42, "1A"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteBookingSeatMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM booking_seats").
		WithArgs(int64(42), "9D").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	if err := repo.DeleteBookingSeat(42, "9D"); err == nil {
		t.Fatal("expected error for missing seat row")
	}
}

func TestListByBusGroupsSeatsPerBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "bus_id", "user_id", "contact_number", "pickup_location", "fare", "created_at", "seat_code"}).
		AddRow(1, 5, 7, "9841", "Kalanki", 1000, now, "1B").
		AddRow(1, 5, 7, "9841", "Kalanki", 1000, now, "1A").
		AddRow(2, 5, 9, "9842", "Thamel", 500, now, "4C")
	mock.ExpectQuery("SELECT b.id, b.bus_id").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	repo := BookingRepository{DB: db}
	got, err := repo.ListByBus(5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0].Seats, []string{"1A", "1B"}) {
		t.Fatalf("seats not grouped/sorted: %v", got[0].Seats)
	}
	if got[1].UserID != 9 || !reflect.DeepEqual(got[1].Seats, []string{"4C"}) {
		t.Fatalf("unexpected second booking: %+v", got[1])
	}
}
