package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"eliteroadways/internal/domain"
)

func busRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	dep := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "bus_number", "origin", "destination", "departure_time",
		"fare_per_seat", "driver", "driver_contact", "layout_rows", "layout_cols",
	}).AddRow(1, "BA 2 KHA 9133", "Kathmandu", "Pokhara", dep, 500, "Ram", "9800000000", 10, 4)
}

func TestBusGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(busRows(t))

	repo := BusRepository{DB: db}
	bus, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if bus.Number != "BA 2 KHA 9133" || bus.FarePerSeat != 500 {
		t.Fatalf("unexpected bus %+v", bus)
	}
	if bus.Layout.Rows != 10 || bus.Layout.Cols != 4 {
		t.Fatalf("unexpected layout %+v", bus.Layout)
	}
}

func TestBusGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := BusRepository{DB: db}
	if _, err := repo.GetByID(99); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBusCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO buses").
		WillReturnResult(sqlmock.NewResult(3, 1))

	repo := BusRepository{DB: db}
	id, err := repo.Create(domain.Bus{
		Number:      "NA 5 PA 7777",
		Origin:      "Kathmandu",
		Destination: "Chitwan",
		FarePerSeat: 800,
		Layout:      domain.DefaultLayout,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != 3 {
		t.Fatalf("expected id 3, got %d", id)
	}
}

func TestBusSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM buses").
		WithArgs("Kathmandu", "Kathmandu", "Pokhara", "Pokhara").
		WillReturnRows(busRows(t))

	repo := BusRepository{DB: db}
	got, err := repo.Search("Kathmandu", "Pokhara")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 1 || got[0].Destination != "Pokhara" {
		t.Fatalf("unexpected result %+v", got)
	}
}
