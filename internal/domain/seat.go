package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Seat is a decoded seat identifier: row number plus column letter,
// e.g. "3B" is row 3, column B.
type Seat struct {
	Row int
	Col rune
}

// SeatLayout describes a bus's fixed seat grid. Rows are numbered from 1,
// columns are lettered from 'A'.
type SeatLayout struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// DefaultLayout matches the standard 40-seat coach (10 rows of A-D).
var DefaultLayout = SeatLayout{Rows: 10, Cols: 4}

// ParseSeatID decodes a seat identifier like "3B". Input is trimmed and
// case-insensitive on the column letter.
func ParseSeatID(id string) (Seat, error) {
	s := strings.ToUpper(strings.TrimSpace(id))
	if len(s) < 2 {
		return Seat{}, ValidationError{Field: "seat", Msg: fmt.Sprintf("malformed seat id %q", id)}
	}
	col := rune(s[len(s)-1])
	if col < 'A' || col > 'Z' {
		return Seat{}, ValidationError{Field: "seat", Msg: fmt.Sprintf("malformed seat id %q", id)}
	}
	row, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || row < 1 {
		return Seat{}, ValidationError{Field: "seat", Msg: fmt.Sprintf("malformed seat id %q", id)}
	}
	return Seat{Row: row, Col: col}, nil
}

// FormatSeatID encodes a Seat back to its canonical identifier.
func FormatSeatID(s Seat) string {
	return strconv.Itoa(s.Row) + string(s.Col)
}

// ID is the canonical identifier for this seat.
func (s Seat) ID() string { return FormatSeatID(s) }

// Contains reports whether the seat falls inside the layout grid.
func (l SeatLayout) Contains(s Seat) bool {
	if s.Row < 1 || s.Row > l.Rows {
		return false
	}
	return s.Col >= 'A' && s.Col < rune('A'+l.Cols)
}

// Valid reports whether id parses and falls inside the layout grid.
func (l SeatLayout) Valid(id string) bool {
	s, err := ParseSeatID(id)
	if err != nil {
		return false
	}
	return l.Contains(s)
}

// TotalSeats returns the layout's seat count.
func (l SeatLayout) TotalSeats() int { return l.Rows * l.Cols }

// SeatIDs enumerates every seat id in the layout, row by row.
func (l SeatLayout) SeatIDs() []string {
	out := make([]string, 0, l.TotalSeats())
	for row := 1; row <= l.Rows; row++ {
		for c := 0; c < l.Cols; c++ {
			out = append(out, FormatSeatID(Seat{Row: row, Col: rune('A' + c)}))
		}
	}
	return out
}

// NormalizeSeatID returns the canonical form of a seat id ("3b " -> "3B")
// or an error when it does not parse.
func NormalizeSeatID(id string) (string, error) {
	s, err := ParseSeatID(id)
	if err != nil {
		return "", err
	}
	return s.ID(), nil
}
