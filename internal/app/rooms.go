package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/metinatakli/cinex-web/api"
	"github.com/metinatakli/cinex-web/internal/booking"
	"github.com/metinatakli/cinex-web/internal/domain"
	"github.com/metinatakli/cinex-web/internal/seatmap"
	appvalidator "github.com/metinatakli/cinex-web/internal/validator"
	"github.com/oapi-codegen/runtime/types"
)

const (
	noticeSeatUnavailable = "This seat is already reserved"
	noticeSelectionLimit  = "You cannot select more seats for this reservation"
)

func (app *Application) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := app.roomLister.ListRooms(r.Context(), app.sessionCredential(r))
	if err != nil {
		app.backendErrorResponse(w, r, err)
		return
	}

	resp := make([]api.RoomSummary, len(rooms))
	for i := range rooms {
		resp[i] = toRoomSummary(&rooms[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// OpenRoom loads the room and starts a fresh view on today's date. Opening a
// room again discards the previous selection.
func (app *Application) OpenRoom(w http.ResponseWriter, r *http.Request, roomID int) {
	logger := app.contextGetLogger(r)

	err := checkID("roomId", roomID)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	room, err := app.rooms.GetRoom(r.Context(), app.sessionCredential(r), roomID)
	if err != nil {
		app.backendErrorResponse(w, r, err)
		return
	}

	view := booking.NewView(room, app.today(), seatmap.WithMaxSelection(app.config.Booking.MaxSeats))
	app.views.Open(app.sessionManager.Token(r.Context()), roomID, view)

	logger.Debug("opened room view", "room_id", roomID)

	app.writeSeatMap(w, r, view.Snapshot(), "")
}

func (app *Application) CloseRoom(w http.ResponseWriter, r *http.Request, roomID int) {
	err := checkID("roomId", roomID)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.views.Close(app.sessionManager.Token(r.Context()), roomID) {
		app.notFoundResponse(w, r)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) SetDate(w http.ResponseWriter, r *http.Request, roomID int) {
	view, ok := app.lookupView(w, r, roomID)
	if !ok {
		return
	}

	var input api.SetDateRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		var parseErr *time.ParseError
		if errors.As(err, &parseErr) {
			app.invalidFieldResponse(w, r, "date", appvalidator.IssueShowDate)
			return
		}

		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	date := input.Date.Time
	if !seatmap.Offered(app.today(), date) {
		app.validationMessageResponse(w, r,
			fmt.Sprintf("date must be between today and %d days from now", seatmap.BookingWindowDays))
		return
	}

	app.writeSeatMap(w, r, view.SetDate(date), "")
}

func (app *Application) ToggleSeat(w http.ResponseWriter, r *http.Request, roomID int, seatID string) {
	view, ok := app.lookupView(w, r, roomID)
	if !ok {
		return
	}

	seat, err := domain.ParseSeatID(seatID)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	snap, err := view.ToggleSeat(seat)
	switch {
	case err == nil:
		app.writeSeatMap(w, r, snap, "")
	case errors.Is(err, domain.ErrSeatUnavailable):
		app.writeSeatMap(w, r, snap, noticeSeatUnavailable)
	case errors.Is(err, domain.ErrSelectionLimit):
		app.writeSeatMap(w, r, snap, noticeSelectionLimit)
	case errors.Is(err, domain.ErrSeatOutOfRange):
		app.badRequestResponse(w, r, fmt.Errorf("seat %s is outside the room", seat))
	case errors.Is(err, domain.ErrSubmissionInFlight):
		app.conflictResponse(w, r, ErrSubmissionInFlight)
	case errors.Is(err, domain.ErrViewClosed):
		app.errorResponse(w, r, http.StatusNotFound, ErrRoomViewNotOpen)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSelection(w http.ResponseWriter, r *http.Request, roomID int) {
	view, ok := app.lookupView(w, r, roomID)
	if !ok {
		return
	}

	snap := view.Snapshot()

	resp := api.SelectionResponse{
		RoomId: snap.Room.ID,
		Date:   types.Date{Time: snap.Date},
		Seats:  toSelectedSeats(snap.Selection),
		Quote:  toQuote(app.quote(len(snap.Selection))),
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// lookupView finds the session's view of the room, writing the error
// response itself when there is none.
func (app *Application) lookupView(w http.ResponseWriter, r *http.Request, roomID int) (*booking.View, bool) {
	err := checkID("roomId", roomID)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	view, ok := app.views.Get(app.sessionManager.Token(r.Context()), roomID)
	if !ok {
		app.errorResponse(w, r, http.StatusNotFound, ErrRoomViewNotOpen)
		return nil, false
	}

	return view, true
}

func (app *Application) today() time.Time {
	return domain.Day(app.now())
}

func (app *Application) quote(seats int) domain.Quote {
	return domain.NewQuote(seats, app.config.Booking.TicketPrice)
}

func (app *Application) writeSeatMap(w http.ResponseWriter, r *http.Request, snap booking.Snapshot, notice string) {
	resp := app.toSeatMapResponse(snap, notice)

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) toSeatMapResponse(snap booking.Snapshot, notice string) api.SeatMapResponse {
	resp := api.SeatMapResponse{
		Room:       toRoomSummary(&snap.Room),
		Date:       types.Date{Time: snap.Date},
		SeatRows:   toSeatRows(snap),
		Selection:  toSelectedSeats(snap.Selection),
		Submitting: snap.InFlight,
	}

	for _, d := range seatmap.OfferedDates(app.today()) {
		resp.OfferedDates = append(resp.OfferedDates, types.Date{Time: d})
	}

	available, ok := snap.Room.Availability[domain.DateKey(snap.Date)]
	if !ok {
		available = snap.Room.Rows*snap.Room.Columns - len(snap.Reserved)
	}
	resp.AvailableSeats = available

	if notice != "" {
		resp.Notice = &notice
	}

	return resp
}

func toSeatRows(snap booking.Snapshot) []api.SeatRow {
	rows := make([]api.SeatRow, snap.Room.Rows)

	for i := range rows {
		rows[i] = api.SeatRow{
			Row:   i,
			Label: string(rune('A' + i)),
			Seats: make([]api.Seat, snap.Room.Columns),
		}

		for j := range rows[i].Seats {
			seat := domain.SeatID{Row: i, Col: j}
			rows[i].Seats[j] = api.Seat{
				Id:     seat.String(),
				Label:  seat.Label(),
				Row:    i,
				Column: j,
				Status: api.SeatStatus(snap.Status(seat)),
			}
		}
	}

	return rows
}

func toRoomSummary(room *domain.Room) api.RoomSummary {
	return api.RoomSummary{
		Id:           room.ID,
		Name:         room.Name,
		MovieTitle:   room.MovieTitle,
		MoviePoster:  room.MoviePoster,
		Rows:         room.Rows,
		Columns:      room.Columns,
		TotalSeats:   room.TotalSeats,
		Availability: room.Availability,
	}
}

func toSelectedSeats(seats []domain.SeatID) []api.SelectedSeat {
	resp := make([]api.SelectedSeat, len(seats))
	for i, s := range seats {
		resp[i] = api.SelectedSeat{Id: s.String(), Label: s.Label()}
	}
	return resp
}

func toQuote(q domain.Quote) api.Quote {
	return api.Quote{
		Seats:     q.Seats,
		UnitPrice: q.UnitPrice,
		Total:     q.Total,
	}
}
