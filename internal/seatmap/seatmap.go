// Package seatmap tracks which seats of a room the current user has picked
// for a showing date, and keeps that selection disjoint from the seats that
// are already reserved.
package seatmap

import (
	"time"

	"github.com/metinatakli/cinex-web/internal/domain"
)

type SeatStatus string

const (
	StatusAvailable SeatStatus = "available"
	StatusSelected  SeatStatus = "selected"
	StatusReserved  SeatStatus = "reserved"
)

type seatSet map[domain.SeatID]struct{}

func (s seatSet) sorted() []domain.SeatID {
	out := make([]domain.SeatID, 0, len(s))
	for seat := range s {
		out = append(out, seat)
	}
	domain.SortSeats(out)
	return out
}

type Option func(*Map)

// WithMaxSelection caps the number of seats selectable at once. Zero means
// no cap.
func WithMaxSelection(n int) Option {
	return func(m *Map) {
		m.maxSelection = n
	}
}

// Map is the seat-selection state machine for one room. It does no I/O and
// is not safe for concurrent use.
type Map struct {
	room         *domain.Room
	date         time.Time
	reserved     seatSet
	selected     seatSet
	learned      map[string]seatSet
	maxSelection int
}

func New(room *domain.Room, date time.Time, opts ...Option) *Map {
	m := &Map{
		room:    room,
		learned: make(map[string]seatSet),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.SetDate(date)

	return m
}

func (m *Map) Room() *domain.Room {
	return m.room
}

func (m *Map) Date() time.Time {
	return m.date
}

// SetDate switches the active showing date. The reserved set becomes the
// room's bookings for that date plus any seats learned to be taken during
// this session, and the selection is always cleared.
func (m *Map) SetDate(date time.Time) {
	m.date = domain.Day(date)
	m.selected = make(seatSet)
	m.reserved = make(seatSet)

	for _, seat := range m.room.ReservedOn(m.date) {
		m.reserved[seat] = struct{}{}
	}

	for seat := range m.learned[domain.DateKey(m.date)] {
		m.reserved[seat] = struct{}{}
	}
}

// ToggleSeat flips the seat in or out of the selection and reports whether
// it is selected afterwards. Reserved seats are left untouched and
// ErrSeatUnavailable is returned so the caller can tell the user.
func (m *Map) ToggleSeat(seat domain.SeatID) (bool, error) {
	if !m.room.Contains(seat) {
		return false, domain.ErrSeatOutOfRange
	}

	if _, ok := m.reserved[seat]; ok {
		return false, domain.ErrSeatUnavailable
	}

	if _, ok := m.selected[seat]; ok {
		delete(m.selected, seat)
		return false, nil
	}

	if m.maxSelection > 0 && len(m.selected) >= m.maxSelection {
		return false, domain.ErrSelectionLimit
	}

	m.selected[seat] = struct{}{}

	return true, nil
}

// Selection returns the selected seats in row-major order.
func (m *Map) Selection() []domain.SeatID {
	return m.selected.sorted()
}

// Reserved returns the reserved seats of the active date in row-major order.
func (m *Map) Reserved() []domain.SeatID {
	return m.reserved.sorted()
}

func (m *Map) Status(seat domain.SeatID) SeatStatus {
	if _, ok := m.reserved[seat]; ok {
		return StatusReserved
	}
	if _, ok := m.selected[seat]; ok {
		return StatusSelected
	}
	return StatusAvailable
}

// MarkReserved records seats as booked on date. Seats outside the grid are
// ignored. When date is the active date the seats also leave the selection.
func (m *Map) MarkReserved(date time.Time, seats ...domain.SeatID) {
	key := domain.DateKey(date)
	active := key == domain.DateKey(m.date)

	learned, ok := m.learned[key]
	if !ok {
		learned = make(seatSet)
		m.learned[key] = learned
	}

	for _, seat := range seats {
		if !m.room.Contains(seat) {
			continue
		}

		learned[seat] = struct{}{}

		if active {
			m.reserved[seat] = struct{}{}
			delete(m.selected, seat)
		}
	}
}

func (m *Map) ClearSelection() {
	m.selected = make(seatSet)
}
