package seatmap

import (
	"time"

	"github.com/metinatakli/cinex-web/internal/domain"
)

// BookingWindowDays is how many days after today can still be booked.
const BookingWindowDays = 7

// OfferedDates lists the showing dates a user may pick: today through
// today+BookingWindowDays, inclusive.
func OfferedDates(today time.Time) []time.Time {
	start := domain.Day(today)
	dates := make([]time.Time, 0, BookingWindowDays+1)

	for i := 0; i <= BookingWindowDays; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}

	return dates
}

// Offered reports whether date falls inside the window that starts today.
func Offered(today, date time.Time) bool {
	start := domain.Day(today)
	d := domain.Day(date)

	return !d.Before(start) && !d.After(start.AddDate(0, 0, BookingWindowDays))
}
