package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrInvalidSeatID       = errors.New("invalid seat id")
	ErrSeatUnavailable     = errors.New("seat is already reserved")
	ErrSeatOutOfRange      = errors.New("seat is outside the room")
	ErrSelectionLimit      = errors.New("seat selection limit reached")
	ErrEmptySelection      = errors.New("at least one seat must be selected")
	ErrSubmissionInFlight  = errors.New("a reservation is already being submitted")
	ErrViewClosed          = errors.New("the room view is no longer active")
	ErrUnauthorized        = errors.New("credential rejected by the backend")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrCredentialExpired   = errors.New("credential has expired")
	ErrPaymentDeclined     = errors.New("payment declined")
	ErrBackendRejected     = errors.New("request rejected by the backend")
	ErrBackendUnavailable  = errors.New("backend unavailable")
	ErrReservationConflict = errors.New("some of the selected seats were reserved by another user")
)

// ConflictError reports the seats the backend found already booked while
// processing a reservation.
type ConflictError struct {
	Seats []SeatID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrReservationConflict, strings.Join(SeatStrings(e.Seats), ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrReservationConflict
}
