package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/metinatakli/cinex-web/internal/domain"
)

// CreateReservation posts a draft exactly once. A 400 naming conflicting
// seats comes back as *domain.ConflictError.
func (c *Client) CreateReservation(ctx context.Context, cred domain.Credential, draft domain.ReservationDraft) (*domain.Reservation, error) {
	req := createReservationRequest{
		CinemaRoomID:    draft.RoomID,
		ReservationDate: domain.DateKey(draft.Date),
		Seats:           domain.SeatStrings(draft.Seats),
	}

	var header http.Header
	if draft.IdempotencyKey != "" {
		header = http.Header{"Idempotency-Key": []string{draft.IdempotencyKey}}
	}

	var env reservationEnvelope
	err := c.do(ctx, cred, http.MethodPost, "/reservations", req, &env, header)
	if err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	if env.Reservation == nil {
		return nil, fmt.Errorf("create reservation: %w: missing reservation", ErrMalformedResponse)
	}

	return env.Reservation.toDomain()
}

func (c *Client) ListReservations(ctx context.Context, cred domain.Credential) ([]domain.Reservation, error) {
	dtos, err := retryRead(ctx, c, func() ([]reservationDTO, error) {
		var dtos []reservationDTO
		err := c.do(ctx, cred, http.MethodGet, "/reservations/user", nil, &dtos, nil)
		return dtos, err
	})
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	reservations := make([]domain.Reservation, 0, len(dtos))
	for _, dto := range dtos {
		r, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list reservations: %w", err)
		}
		reservations = append(reservations, *r)
	}

	return reservations, nil
}

func (c *Client) GetReservation(ctx context.Context, cred domain.Credential, id int) (*domain.Reservation, error) {
	path := fmt.Sprintf("/reservations/%d", id)

	dto, err := retryRead(ctx, c, func() (reservationDTO, error) {
		var dto reservationDTO
		err := c.do(ctx, cred, http.MethodGet, path, nil, &dto, nil)
		return dto, err
	})
	if err != nil {
		return nil, fmt.Errorf("get reservation %d: %w", id, err)
	}

	return dto.toDomain()
}
