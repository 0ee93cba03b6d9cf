package backend

import (
	"fmt"
	"strings"
	"time"

	"github.com/metinatakli/cinex-web/internal/domain"
)

type roomDTO struct {
	ID               int                 `json:"id" validate:"gt=0"`
	Name             string              `json:"name"`
	MovieTitle       string              `json:"movie_title"`
	MoviePoster      string              `json:"movie_poster"`
	Rows             int                 `json:"rows" validate:"min=1,max=20"`
	Columns          int                 `json:"columns" validate:"min=1,max=20"`
	TotalSeats       int                 `json:"totalSeats" validate:"gte=0"`
	Availability     map[string]int      `json:"availability"`
	ReservedSeatsMap map[string][]string `json:"reservedSeatsMap" validate:"omitempty,dive,keys,show_date,endkeys,dive,seat_id"`
}

func (d roomDTO) toDomain() *domain.Room {
	room := &domain.Room{
		ID:            d.ID,
		Name:          d.Name,
		MovieTitle:    d.MovieTitle,
		MoviePoster:   d.MoviePoster,
		Rows:          d.Rows,
		Columns:       d.Columns,
		TotalSeats:    d.TotalSeats,
		Availability:  make(map[string]int, len(d.Availability)),
		ReservedSeats: make(map[string][]domain.SeatID, len(d.ReservedSeatsMap)),
	}

	if room.TotalSeats == 0 {
		room.TotalSeats = d.Rows * d.Columns
	}

	for date, n := range d.Availability {
		room.Availability[date] = n
	}

	for date, seats := range d.ReservedSeatsMap {
		for _, s := range seats {
			seat, err := domain.ParseSeatID(s)
			if err != nil || !room.Contains(seat) {
				continue
			}
			room.ReservedSeats[date] = append(room.ReservedSeats[date], seat)
		}
	}

	return room
}

type createReservationRequest struct {
	CinemaRoomID    int      `json:"cinemaRoomId"`
	ReservationDate string   `json:"reservationDate"`
	Seats           []string `json:"seats"`
}

type reservationDTO struct {
	ID              int      `json:"id"`
	UserID          int      `json:"userId"`
	CinemaRoomID    int      `json:"cinemaRoomId"`
	CinemaRoomName  string   `json:"cinemaRoomName"`
	MovieTitle      string   `json:"movieTitle"`
	ReservationDate string   `json:"reservationDate"`
	Seats           []string `json:"seats"`
	QRCode          string   `json:"qrCode"`
	CreatedAt       string   `json:"createdAt"`
}

type reservationEnvelope struct {
	Reservation *reservationDTO `json:"reservation"`
}

func (d reservationDTO) toDomain() (*domain.Reservation, error) {
	date, err := parseReservationDate(d.ReservationDate)
	if err != nil {
		return nil, err
	}

	r := &domain.Reservation{
		ID:             d.ID,
		UserID:         d.UserID,
		RoomID:         d.CinemaRoomID,
		RoomName:       d.CinemaRoomName,
		MovieTitle:     d.MovieTitle,
		Date:           date,
		Seats:          make([]domain.SeatID, 0, len(d.Seats)),
		CredentialCode: d.QRCode,
	}

	for _, s := range d.Seats {
		seat, err := domain.ParseSeatID(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		r.Seats = append(r.Seats, seat)
	}
	domain.SortSeats(r.Seats)

	if d.CreatedAt != "" {
		createdAt, err := time.Parse(time.RFC3339, d.CreatedAt)
		if err == nil {
			r.CreatedAt = createdAt
		}
	}

	return r, nil
}

// parseReservationDate accepts both a bare date and a full timestamp.
func parseReservationDate(s string) (time.Time, error) {
	if len(s) > len(domain.DateLayout) && strings.Contains(s, "T") {
		s = s[:len(domain.DateLayout)]
	}

	date, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: reservation date %q", ErrMalformedResponse, s)
	}

	return date, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type userDTO struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (d userDTO) toDomain() domain.User {
	return domain.User{
		ID:       d.ID,
		Username: d.Username,
		Email:    d.Email,
		Role:     d.Role,
	}
}

type authResponse struct {
	Token string  `json:"token" validate:"required"`
	User  userDTO `json:"user"`
}

type verifyResponse struct {
	User userDTO `json:"user"`
}
