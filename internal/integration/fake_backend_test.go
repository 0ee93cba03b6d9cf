package integration_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ticketPNG = []byte("\x89PNG\r\n\x1a\nintegration-ticket")

type fakeUser struct {
	id       int
	username string
	email    string
	password string
}

type fakeRoom struct {
	id       int
	name     string
	movie    string
	rows     int
	columns  int
	reserved map[string][]string
}

type fakeReservation struct {
	id     int
	userID int
	roomID int
	date   string
	seats  []string
}

// fakeBackend is an in-memory stand-in for the reservation REST API.
type fakeBackend struct {
	mu           sync.Mutex
	secret       []byte
	users        map[string]*fakeUser
	rooms        map[int]*fakeRoom
	reservations []fakeReservation
	unavailable  bool
	requests     map[string]int
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{secret: []byte("integration-secret")}
	b.reset()
	return b
}

// reset restores the seed data: one user and one room with seat 0-0 booked
// today.
func (b *fakeBackend) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.users = map[string]*fakeUser{
		TestUsername: {id: TestUserId, username: TestUsername, email: TestUserEmail, password: TestUserPassword},
	}
	b.rooms = map[int]*fakeRoom{
		TestRoomId: {
			id:       TestRoomId,
			name:     TestRoomName,
			movie:    TestMovieTitle,
			rows:     TestRoomRows,
			columns:  TestRoomColumns,
			reserved: map[string][]string{Today: {"0-0"}},
		},
	}
	b.reservations = nil
	b.unavailable = false
	b.requests = map[string]int{}
}

func (b *fakeBackend) setUnavailable(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.unavailable = v
}

func (b *fakeBackend) requestCount(pattern string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.requests[pattern]
}

func (b *fakeBackend) reservedSeats(roomID int, date string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	seats := slices.Clone(b.rooms[roomID].reserved[date])
	slices.Sort(seats)
	return seats
}

func (b *fakeBackend) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", b.count("login", b.login))
	mux.HandleFunc("POST /api/auth/register", b.count("register", b.register))
	mux.HandleFunc("GET /api/auth/verify", b.count("verify", b.authenticated(b.verify)))
	mux.HandleFunc("GET /api/cinemas", b.count("listRooms", b.listRooms))
	mux.HandleFunc("GET /api/cinemas/{id}", b.count("getRoom", b.getRoom))
	mux.HandleFunc("POST /api/reservations", b.count("createReservation", b.authenticated(b.createReservation)))
	mux.HandleFunc("GET /api/reservations/user", b.count("listReservations", b.authenticated(b.listReservations)))
	mux.HandleFunc("GET /api/reservations/{id}", b.count("getReservation", b.authenticated(b.getReservation)))

	return mux
}

type userHandler func(w http.ResponseWriter, r *http.Request, user *fakeUser)

func (b *fakeBackend) count(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests[name]++
		unavailable := b.unavailable
		b.mu.Unlock()

		if unavailable {
			writeFakeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "maintenance"})
			return
		}

		next(w, r)
	}
}

func (b *fakeBackend) authenticated(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			writeFakeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Access token required"})
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return b.secret, nil })
		if err != nil {
			writeFakeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			return
		}

		username, _ := claims["username"].(string)

		b.mu.Lock()
		user := b.users[username]
		b.mu.Unlock()

		if user == nil {
			writeFakeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			return
		}

		next(w, r, user)
	}
}

func (b *fakeBackend) issue(w http.ResponseWriter, status int, user *fakeUser) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.Itoa(user.id),
		"username": user.username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString(b.secret)
	if err != nil {
		writeFakeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}

	writeFakeJSON(w, status, map[string]any{"token": token, "user": userJSON(user)})
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var input struct{ Username, Password string }
	_ = json.NewDecoder(r.Body).Decode(&input)

	b.mu.Lock()
	user := b.users[input.Username]
	b.mu.Unlock()

	if user == nil || user.password != input.Password {
		writeFakeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}

	b.issue(w, http.StatusOK, user)
}

func (b *fakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var input struct{ Username, Password, Email string }
	_ = json.NewDecoder(r.Body).Decode(&input)

	b.mu.Lock()
	if _, ok := b.users[input.Username]; ok {
		b.mu.Unlock()
		writeFakeJSON(w, http.StatusBadRequest, map[string]string{"message": "Username already exists"})
		return
	}

	user := &fakeUser{id: len(b.users) + 1, username: input.Username, email: input.Email, password: input.Password}
	b.users[user.username] = user
	b.mu.Unlock()

	b.issue(w, http.StatusCreated, user)
}

func (b *fakeBackend) verify(w http.ResponseWriter, r *http.Request, user *fakeUser) {
	writeFakeJSON(w, http.StatusOK, map[string]any{"user": userJSON(user)})
}

func (b *fakeBackend) listRooms(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rooms := make([]map[string]any, 0, len(b.rooms))
	for _, room := range b.rooms {
		rooms = append(rooms, b.roomJSON(room))
	}

	writeFakeJSON(w, http.StatusOK, rooms)
}

func (b *fakeBackend) getRoom(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))

	b.mu.Lock()
	defer b.mu.Unlock()

	room, ok := b.rooms[id]
	if !ok {
		writeFakeJSON(w, http.StatusNotFound, map[string]string{"message": "Cinema room not found"})
		return
	}

	writeFakeJSON(w, http.StatusOK, b.roomJSON(room))
}

func (b *fakeBackend) createReservation(w http.ResponseWriter, r *http.Request, user *fakeUser) {
	var input struct {
		CinemaRoomID    int      `json:"cinemaRoomId"`
		ReservationDate string   `json:"reservationDate"`
		Seats           []string `json:"seats"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || len(input.Seats) == 0 {
		writeFakeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid reservation"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	room, ok := b.rooms[input.CinemaRoomID]
	if !ok {
		writeFakeJSON(w, http.StatusNotFound, map[string]string{"message": "Cinema room not found"})
		return
	}

	var conflicting []string
	for _, seat := range input.Seats {
		if slices.Contains(room.reserved[input.ReservationDate], seat) {
			conflicting = append(conflicting, seat)
		}
	}

	if len(conflicting) > 0 {
		writeFakeJSON(w, http.StatusBadRequest, map[string]any{
			"message":          "Some seats are already reserved",
			"conflictingSeats": conflicting,
		})
		return
	}

	room.reserved[input.ReservationDate] = append(room.reserved[input.ReservationDate], input.Seats...)

	res := fakeReservation{
		id:     len(b.reservations) + 1,
		userID: user.id,
		roomID: room.id,
		date:   input.ReservationDate,
		seats:  input.Seats,
	}
	b.reservations = append(b.reservations, res)

	writeFakeJSON(w, http.StatusCreated, map[string]any{"reservation": b.reservationJSON(res)})
}

func (b *fakeBackend) listReservations(w http.ResponseWriter, r *http.Request, user *fakeUser) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := []map[string]any{}
	for _, res := range b.reservations {
		if res.userID == user.id {
			out = append(out, b.reservationJSON(res))
		}
	}

	writeFakeJSON(w, http.StatusOK, out)
}

func (b *fakeBackend) getReservation(w http.ResponseWriter, r *http.Request, user *fakeUser) {
	id, _ := strconv.Atoi(r.PathValue("id"))

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, res := range b.reservations {
		if res.id == id && res.userID == user.id {
			writeFakeJSON(w, http.StatusOK, b.reservationJSON(res))
			return
		}
	}

	writeFakeJSON(w, http.StatusNotFound, map[string]string{"message": "Reservation not found"})
}

func (b *fakeBackend) roomJSON(room *fakeRoom) map[string]any {
	availability := map[string]int{}
	for date, seats := range room.reserved {
		availability[date] = room.rows*room.columns - len(seats)
	}

	return map[string]any{
		"id":               room.id,
		"name":             room.name,
		"movie_title":      room.movie,
		"movie_poster":     TestMoviePoster,
		"rows":             room.rows,
		"columns":          room.columns,
		"totalSeats":       room.rows * room.columns,
		"availability":     availability,
		"reservedSeatsMap": room.reserved,
	}
}

func (b *fakeBackend) reservationJSON(res fakeReservation) map[string]any {
	room := b.rooms[res.roomID]

	return map[string]any{
		"id":              res.id,
		"userId":          res.userID,
		"cinemaRoomId":    res.roomID,
		"cinemaRoomName":  room.name,
		"movieTitle":      room.movie,
		"reservationDate": res.date,
		"seats":           res.seats,
		"qrCode":          "data:image/png;base64," + base64.StdEncoding.EncodeToString(ticketPNG),
		"createdAt":       time.Now().UTC().Format(time.RFC3339),
	}
}

func userJSON(user *fakeUser) map[string]any {
	return map[string]any{
		"id":       user.id,
		"username": user.username,
		"email":    user.email,
		"role":     "user",
	}
}

func writeFakeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(fmt.Sprintf("fake backend: %v", err))
	}
}
