package app

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/cinex-web/api"
	"github.com/metinatakli/cinex-web/internal/booking"
	"github.com/metinatakli/cinex-web/internal/domain"
	appvalidator "github.com/metinatakli/cinex-web/internal/validator"
	"github.com/oapi-codegen/runtime/types"
)

const pngDataPrefix = "data:image/png;base64,"

// SubmitReservation charges the quoted amount for the current selection and
// then asks the backend to book it. The selection cannot change while this
// runs.
func (app *Application) SubmitReservation(w http.ResponseWriter, r *http.Request, roomID int) {
	logger := app.contextGetLogger(r)

	view, ok := app.lookupView(w, r, roomID)
	if !ok {
		return
	}

	var input api.CreateReservationRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	details := domain.PaymentDetails{
		CardNumber: appvalidator.NormalizeCardNumber(input.Payment.CardNumber),
		CardHolder: input.Payment.CardHolder,
		Expiry:     input.Payment.Expiry,
		CVV:        input.Payment.Cvv,
	}

	var charged domain.Quote

	// A reservation that reached the backend runs to completion even if the
	// client goes away; the view discards the answer if it moved on.
	ctx := context.WithoutCancel(r.Context())
	if timeout := app.config.submissionTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	outcome := app.submitter.SubmitAfter(ctx, app.contextGetCredential(r), view,
		func(ctx context.Context, draft domain.ReservationDraft) error {
			charged = app.quote(len(draft.Seats))
			return app.payments.Charge(ctx, details, charged)
		})

	switch o := outcome.(type) {
	case booking.Success:
		logger.Info("reservation created", "reservation_id", o.Reservation.ID, "seats", charged.Seats)

		resp := api.ReservationCreatedResponse{
			Reservation: toReservationResponse(o.Reservation),
			Quote:       toQuote(charged),
			SeatMap:     app.toSeatMapResponse(view.Snapshot(), ""),
		}

		err = app.writeJSON(w, http.StatusCreated, resp, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}

	case booking.Conflict:
		logger.Info("reservation conflict", "seats", domain.SeatStrings(o.Seats))

		resp := api.ReservationConflictResponse{
			Message:          ErrReservationConflict,
			RequestId:        middleware.GetReqID(r.Context()),
			Timestamp:        time.Now(),
			ConflictingSeats: toSelectedSeats(o.Seats),
			SeatMap:          app.toSeatMapResponse(view.Snapshot(), ""),
		}

		err = app.writeJSON(w, http.StatusConflict, resp, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}

	case booking.Failure:
		app.submitFailureResponse(w, r, o)
	}
}

func (app *Application) submitFailureResponse(w http.ResponseWriter, r *http.Request, f booking.Failure) {
	switch {
	case errors.Is(f.Err, domain.ErrEmptySelection), errors.Is(f.Err, domain.ErrPaymentDeclined):
		app.validationMessageResponse(w, r, f.Message)
	case errors.Is(f.Err, domain.ErrSubmissionInFlight):
		app.conflictResponse(w, r, ErrSubmissionInFlight)
	case errors.Is(f.Err, domain.ErrViewClosed):
		app.errorResponse(w, r, http.StatusNotFound, ErrRoomViewNotOpen)
	case f.Unauthorized:
		app.dropCredential(r.Context())
		app.unauthorizedAccessResponse(w, r)
	case f.Retryable:
		app.badGatewayResponse(w, r, f.Err)
	default:
		app.badRequestResponse(w, r, errors.New(f.Message))
	}
}

// ListReservations splits the user's reservations into upcoming ones, soonest
// first, and past ones, most recent first.
func (app *Application) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := app.reservations.ListReservations(r.Context(), app.contextGetCredential(r))
	if err != nil {
		app.backendErrorResponse(w, r, err)
		return
	}

	today := app.today()

	var upcoming, past []domain.Reservation
	for _, res := range reservations {
		if domain.Day(res.Date).Before(today) {
			past = append(past, res)
		} else {
			upcoming = append(upcoming, res)
		}
	}

	slices.SortStableFunc(upcoming, func(a, b domain.Reservation) int {
		return a.Date.Compare(b.Date)
	})
	slices.SortStableFunc(past, func(a, b domain.Reservation) int {
		return b.Date.Compare(a.Date)
	})

	resp := api.ReservationsResponse{
		Upcoming: toReservationResponses(upcoming),
		Past:     toReservationResponses(past),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetReservation(w http.ResponseWriter, r *http.Request, id int) {
	err := checkID("reservationId", id)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reservation, err := app.reservations.GetReservation(r.Context(), app.contextGetCredential(r), id)
	if err != nil {
		app.backendErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toReservationResponse(reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// DownloadReservationArtifact serves the ticket as an attachment: the PNG the
// backend generated when there is one, otherwise a JSON summary of the
// reservation. Tickets of past shows are not served.
func (app *Application) DownloadReservationArtifact(w http.ResponseWriter, r *http.Request, id int) {
	err := checkID("reservationId", id)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reservation, err := app.reservations.GetReservation(r.Context(), app.contextGetCredential(r), id)
	if err != nil {
		app.backendErrorResponse(w, r, err)
		return
	}

	if domain.Day(reservation.Date).Before(app.today()) {
		app.errorResponse(w, r, http.StatusGone, ErrShowDatePassed)
		return
	}

	code := usableCode(reservation.CredentialCode)

	if encoded, ok := strings.CutPrefix(code, pngDataPrefix); ok {
		img, err := base64.StdEncoding.DecodeString(encoded)
		if err == nil {
			w.Header().Set("Content-Type", "image/png")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"reservation-%d.png\"", reservation.ID))
			w.WriteHeader(http.StatusOK)
			w.Write(img)
			return
		}

		app.contextGetLogger(r).Warn("undecodable ticket image", "reservation_id", reservation.ID, "error", err)
		code = ""
	}

	artifact := api.ReservationArtifact{
		Id:              reservation.ID,
		CinemaRoomName:  reservation.RoomName,
		MovieTitle:      reservation.MovieTitle,
		ReservationDate: types.Date{Time: domain.Day(reservation.Date)},
		Seats:           domain.SeatStrings(reservation.Seats),
		Code:            code,
	}

	headers := make(http.Header)
	headers.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"reservation-%d.json\"", reservation.ID))

	err = app.writeJSON(w, http.StatusOK, artifact, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// usableCode returns the backend's ticket code, or "" when it is blank or a
// placeholder.
func usableCode(code string) string {
	code = strings.TrimSpace(code)
	if strings.Contains(code, "undefined") {
		return ""
	}
	return code
}

func toReservationResponses(reservations []domain.Reservation) []api.ReservationResponse {
	resp := make([]api.ReservationResponse, len(reservations))
	for i := range reservations {
		resp[i] = toReservationResponse(&reservations[i])
	}
	return resp
}

func toReservationResponse(res *domain.Reservation) api.ReservationResponse {
	resp := api.ReservationResponse{
		Id:              res.ID,
		RoomId:          res.RoomID,
		RoomName:        res.RoomName,
		MovieTitle:      res.MovieTitle,
		ReservationDate: types.Date{Time: domain.Day(res.Date)},
		Seats:           toSelectedSeats(res.Seats),
		HasArtifact:     usableCode(res.CredentialCode) != "",
	}

	if !res.CreatedAt.IsZero() {
		createdAt := res.CreatedAt
		resp.CreatedAt = &createdAt
	}

	return resp
}
