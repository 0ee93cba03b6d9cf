package domain

import (
	"context"
	"time"
)

// ReservationDraft is built at submission time only and lives for the
// duration of the request.
type ReservationDraft struct {
	RoomID int
	Date   time.Time
	// Seats are ordered row-major.
	Seats []SeatID
	// IdempotencyKey is empty unless idempotency keys are enabled.
	IdempotencyKey string
}

type Reservation struct {
	ID             int
	UserID         int
	RoomID         int
	RoomName       string
	MovieTitle     string
	Date           time.Time
	Seats          []SeatID
	CredentialCode string
	CreatedAt      time.Time
}

type ReservationGateway interface {
	CreateReservation(ctx context.Context, cred Credential, draft ReservationDraft) (*Reservation, error)
}

type ReservationReader interface {
	ListReservations(ctx context.Context, cred Credential) ([]Reservation, error)
	GetReservation(ctx context.Context, cred Credential, id int) (*Reservation, error)
}
