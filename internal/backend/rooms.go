package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cenkalti/backoff/v5"
	"github.com/metinatakli/cinex-web/internal/domain"
)

// GetRoom loads a room descriptor with its per-date availability. Transport
// errors and 5xx answers are retried with exponential backoff; anything else
// is returned at once.
func (c *Client) GetRoom(ctx context.Context, cred domain.Credential, roomID int) (*domain.Room, error) {
	path := fmt.Sprintf("/cinemas/%d", roomID)

	dto, err := retryRead(ctx, c, func() (roomDTO, error) {
		var dto roomDTO
		err := c.do(ctx, cred, http.MethodGet, path, nil, &dto, nil)
		return dto, err
	})
	if err != nil {
		return nil, fmt.Errorf("get room %d: %w", roomID, err)
	}

	err = c.validate(dto)
	if err != nil {
		return nil, fmt.Errorf("get room %d: %w", roomID, err)
	}

	return dto.toDomain(), nil
}

func (c *Client) ListRooms(ctx context.Context, cred domain.Credential) ([]domain.Room, error) {
	dtos, err := retryRead(ctx, c, func() ([]roomDTO, error) {
		var dtos []roomDTO
		err := c.do(ctx, cred, http.MethodGet, "/cinemas", nil, &dtos, nil)
		return dtos, err
	})
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	rooms := make([]domain.Room, 0, len(dtos))
	for _, dto := range dtos {
		if c.validate(dto) != nil {
			c.logger.WarnContext(ctx, "skipping malformed room", "room_id", dto.ID)
			continue
		}
		rooms = append(rooms, *dto.toDomain())
	}

	return rooms, nil
}

func retryRead[T any](ctx context.Context, c *Client, op func() (T, error)) (T, error) {
	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err != nil && !errors.Is(err, domain.ErrBackendUnavailable) {
			return v, backoff.Permanent(err)
		}
		return v, err
	},
		backoff.WithBackOff(c.backOff()),
		backoff.WithMaxTries(c.retries),
	)
}
