package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/metinatakli/cinex-web/api"
	"github.com/metinatakli/cinex-web/internal/booking"
	"github.com/metinatakli/cinex-web/internal/domain"
	"github.com/metinatakli/cinex-web/internal/mocks"
	"github.com/metinatakli/cinex-web/internal/seatmap"
	"github.com/metinatakli/cinex-web/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// testNow is 2095-03-10 at noon. Offered dates run through 2095-03-17.
var testNow = time.Date(2095, 3, 10, 12, 0, 0, 0, time.UTC)

// testRoom is a 3x4 room with 0-0 booked on the first day and 2-3 the day
// after.
func testRoom() *domain.Room {
	return &domain.Room{
		ID:           7,
		Name:         "Sala 7",
		MovieTitle:   "Metropolis",
		MoviePoster:  "https://example.com/metropolis.jpg",
		Rows:         3,
		Columns:      4,
		TotalSeats:   12,
		Availability: map[string]int{"2095-03-10": 11, "2095-03-11": 11},
		ReservedSeats: map[string][]domain.SeatID{
			"2095-03-10": {{Row: 0, Col: 0}},
			"2095-03-11": {{Row: 2, Col: 3}},
		},
	}
}

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config: Config{
			Env: "test",
			Booking: BookingConfig{
				TicketPrice: decimal.RequireFromString("8.50"),
				MaxSeats:    4,
			},
		},
		logger:         slog.New(slog.DiscardHandler),
		redis:          &mocks.MockRedisClient{},
		validator:      validator.NewValidator(),
		sessionManager: scs.New(),
		rooms:          &mocks.MockRoomLoader{},
		roomLister:     &mocks.MockRoomLoader{},
		reservations:   &mocks.MockReservationGateway{},
		auth:           &mocks.MockAuthGateway{},
		payments:       &mocks.MockPaymentProcessor{},
		views:          booking.NewRegistry(),
		now:            func() time.Time { return testNow },
	}

	app.submitter = booking.NewSubmitter(&mocks.MockReservationGateway{})

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// signedToken returns a backend-style JWT expiring at exp.
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})

	signed, err := token.SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	return signed
}

// setupTestSession attaches a committed session to the request so handlers
// see a stable session token. A non-empty token logs the user in.
func setupTestSession(t *testing.T, app *Application, r *http.Request, token string) *http.Request {
	t.Helper()

	ctx, err := app.sessionManager.Load(r.Context(), "")
	require.NoError(t, err, "Failed to load session")

	app.sessionManager.Put(ctx, SessionKeyGuest.String(), true)

	if token != "" {
		app.sessionManager.Put(ctx, SessionKeyToken.String(), token)
		app.sessionManager.Put(ctx, SessionKeyUserId.String(), 1)
	}

	_, _, err = app.sessionManager.Commit(ctx)
	require.NoError(t, err, "Failed to commit session")

	return r.WithContext(ctx)
}

// openTestView registers a view of testRoom for the request's session.
func openTestView(t *testing.T, app *Application, r *http.Request, selected ...string) *booking.View {
	t.Helper()

	view := booking.NewView(testRoom(), domain.Day(testNow), seatmap.WithMaxSelection(app.config.Booking.MaxSeats))
	for _, s := range selected {
		seat, err := domain.ParseSeatID(s)
		require.NoError(t, err)

		_, err = view.ToggleSeat(seat)
		require.NoError(t, err)
	}

	app.views.Open(app.sessionManager.Token(r.Context()), 7, view)

	return view
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader *bytes.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		if validationResp.Message == tt.wantErrMessage {
			return
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func seatIDs(t *testing.T, ss ...string) []domain.SeatID {
	t.Helper()

	out := make([]domain.SeatID, 0, len(ss))
	for _, s := range ss {
		id, err := domain.ParseSeatID(s)
		require.NoError(t, err)
		out = append(out, id)
	}

	return out
}
