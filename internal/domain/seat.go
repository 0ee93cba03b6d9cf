package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MaxGridSize bounds both dimensions of a room's seat grid.
const MaxGridSize = 20

// SeatID addresses a seat by its zero-based row and column in a room's grid.
type SeatID struct {
	Row int
	Col int
}

// ParseSeatID decodes the canonical "{row}-{col}" form. Signs and leading
// zeros are rejected so every seat has exactly one spelling.
func ParseSeatID(s string) (SeatID, error) {
	rowStr, colStr, ok := strings.Cut(s, "-")
	if !ok {
		return SeatID{}, fmt.Errorf("%w: %q", ErrInvalidSeatID, s)
	}

	row, err := strconv.Atoi(rowStr)
	if err != nil || row < 0 {
		return SeatID{}, fmt.Errorf("%w: %q", ErrInvalidSeatID, s)
	}

	col, err := strconv.Atoi(colStr)
	if err != nil || col < 0 {
		return SeatID{}, fmt.Errorf("%w: %q", ErrInvalidSeatID, s)
	}

	seat := SeatID{Row: row, Col: col}
	if seat.String() != s {
		return SeatID{}, fmt.Errorf("%w: %q", ErrInvalidSeatID, s)
	}

	return seat, nil
}

func (s SeatID) String() string {
	return fmt.Sprintf("%d-%d", s.Row, s.Col)
}

// Label returns the human label shown on tickets, e.g. row 0 column 0 is "A1".
// Rows past 'Z' are not defined; rooms never have more than MaxGridSize rows.
func (s SeatID) Label() string {
	return fmt.Sprintf("%c%d", rune('A'+s.Row), s.Col+1)
}

// Within reports whether the seat exists in a grid of the given dimensions.
func (s SeatID) Within(rows, cols int) bool {
	return s.Row >= 0 && s.Row < rows && s.Col >= 0 && s.Col < cols
}

// CompareSeats orders seats row-major.
func CompareSeats(a, b SeatID) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

// SortSeats sorts seats in place, row-major.
func SortSeats(seats []SeatID) {
	slices.SortFunc(seats, CompareSeats)
}

// SeatStrings returns the canonical forms of seats, preserving order.
func SeatStrings(seats []SeatID) []string {
	out := make([]string, len(seats))
	for i, s := range seats {
		out[i] = s.String()
	}
	return out
}

// SeatLabels returns the human labels of seats, preserving order.
func SeatLabels(seats []SeatID) []string {
	out := make([]string, len(seats))
	for i, s := range seats {
		out[i] = s.Label()
	}
	return out
}
