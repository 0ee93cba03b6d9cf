package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/cinex-web/internal/domain"
)

var ErrMalformedResponse = errors.New("malformed backend response")

// APIError is a 4xx answer other than 401 and 404.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend rejected request with status %d", e.Status)
	}
	return fmt.Sprintf("backend rejected request with status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return domain.ErrBackendRejected
}

// UserMessage is the backend's own explanation, suitable for display.
func (e *APIError) UserMessage() string {
	return e.Message
}

type errorEnvelope struct {
	Message          string   `json:"message"`
	Error            string   `json:"error"`
	ConflictingSeats []string `json:"conflictingSeats"`
}

func responseError(status int, body []byte) error {
	var env errorEnvelope
	_ = json.Unmarshal(body, &env)

	message := env.Message
	if message == "" {
		message = env.Error
	}

	switch {
	case status == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case status == http.StatusNotFound:
		return domain.ErrRecordNotFound
	case status >= 500:
		return fmt.Errorf("%w: status %d", domain.ErrBackendUnavailable, status)
	case len(env.ConflictingSeats) > 0:
		seats := make([]domain.SeatID, 0, len(env.ConflictingSeats))
		for _, s := range env.ConflictingSeats {
			seat, err := domain.ParseSeatID(s)
			if err != nil {
				continue
			}
			seats = append(seats, seat)
		}
		if len(seats) == 0 {
			return &APIError{Status: status, Message: message}
		}
		domain.SortSeats(seats)
		return &domain.ConflictError{Seats: seats}
	default:
		return &APIError{Status: status, Message: message}
	}
}
