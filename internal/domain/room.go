package domain

import (
	"context"
	"time"
)

// DateLayout is the wire and key format of a showing date.
const DateLayout = "2006-01-02"

// Room is a cinema room as described by the backend. It is immutable once
// loaded and replaced wholesale on refetch.
type Room struct {
	ID          int
	Name        string
	MovieTitle  string
	MoviePoster string
	Rows        int
	Columns     int
	TotalSeats  int
	// Availability maps a date key to the number of free seats.
	Availability map[string]int
	// ReservedSeats maps a date key to the seats already booked on that date.
	ReservedSeats map[string][]SeatID
}

// ReservedOn returns a copy of the seats booked for the given date.
func (r *Room) ReservedOn(date time.Time) []SeatID {
	seats := r.ReservedSeats[DateKey(date)]
	out := make([]SeatID, len(seats))
	copy(out, seats)
	return out
}

// Contains reports whether the seat is part of the room's grid.
func (r *Room) Contains(seat SeatID) bool {
	return seat.Within(r.Rows, r.Columns)
}

// Day truncates t to its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey formats a showing date the way the backend keys its maps.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a "YYYY-MM-DD" showing date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

type RoomLoader interface {
	GetRoom(ctx context.Context, cred Credential, roomID int) (*Room, error)
}

type RoomLister interface {
	ListRooms(ctx context.Context, cred Credential) ([]Room, error)
}
