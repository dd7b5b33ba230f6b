package domain

import "testing"

func TestFare(t *testing.T) {
	got, err := Fare(3, 500)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 1500 {
		t.Fatalf("expected 1500, got %d", got)
	}
}

func TestFareRejectsZeroSeats(t *testing.T) {
	if _, err := Fare(0, 500); err == nil {
		t.Fatal("expected error for zero seat count")
	} else if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFareRejectsNegativePerSeat(t *testing.T) {
	if _, err := Fare(2, -1); err == nil {
		t.Fatal("expected error for negative per-seat fare")
	}
}

func TestChargesDefaultZero(t *testing.T) {
	var c Charges
	if c.Total(1500) != 1500 {
		t.Fatalf("expected zero charges to be additive identity, got %d", c.Total(1500))
	}
	c = Charges{Tax: 10, Service: 5, Delivery: 2}
	if c.Total(1500) != 1517 {
		t.Fatalf("expected 1517, got %d", c.Total(1500))
	}
}
