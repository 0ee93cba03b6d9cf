package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinex-web/api"
	"github.com/metinatakli/cinex-web/internal/backend"
	"github.com/metinatakli/cinex-web/internal/domain"
	appvalidator "github.com/metinatakli/cinex-web/internal/validator"
)

const (
	ErrInternalServer      = "The server encountered a problem and could not process your request"
	ErrNotFound            = "The requested resource not found"
	ErrMethodNotAllowed    = "The method is not supported for this resource"
	ErrUnauthorizedAccess  = "You must be authenticated to access this resource"
	ErrInvalidCredentials  = "Invalid username or password"
	ErrValidationFailed    = "One or more fields are invalid"
	ErrBackendUnavailable  = "The reservation service is temporarily unavailable, please try again"
	ErrRoomViewNotOpen     = "Open the room before selecting seats"
	ErrSubmissionInFlight  = "A reservation for this room is already being submitted"
	ErrReservationConflict = "Some of the selected seats were reserved by another user"
	ErrShowDatePassed      = "The show date has passed, the ticket can no longer be downloaded"
)

func (app *Application) logError(r *http.Request, err error) {
	app.contextGetLogger(r).Error(err.Error())
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorizedAccess)
}

func (app *Application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidCredentials)
}

func (app *Application) conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusConflict, message)
}

// badGatewayResponse reports a backend that could not be reached or answered
// with a server error. The request may be retried as-is.
func (app *Application) badGatewayResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.contextGetLogger(r).Warn("backend unavailable", "error", err)

	app.errorResponse(w, r, http.StatusBadGateway, ErrBackendUnavailable)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrValidationFailed,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, 0, len(verrs)),
	}

	for _, fe := range verrs {
		resp.ValidationErrors = append(resp.ValidationErrors, api.ValidationError{
			Field: fe.Field(),
			Issue: appvalidator.ValidationMessage(fe),
		})
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// invalidParamResponse reports a path parameter the router could not bind.
func (app *Application) invalidParamResponse(w http.ResponseWriter, r *http.Request, err error) {
	var formatErr *api.InvalidParamFormatError
	if errors.As(err, &formatErr) {
		app.badRequestResponse(w, r, fmt.Errorf("%s has an invalid format", formatErr.ParamName))
		return
	}

	app.badRequestResponse(w, r, err)
}

// invalidFieldResponse is a 422 for a single body field the decoder rejected.
func (app *Application) invalidFieldResponse(w http.ResponseWriter, r *http.Request, field, issue string) {
	resp := api.ValidationErrorResponse{
		Message:          ErrValidationFailed,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: []api.ValidationError{{Field: field, Issue: issue}},
	}

	err := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// validationMessageResponse is a 422 without per-field details.
func (app *Application) validationMessageResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusUnprocessableEntity, message)
}

// backendErrorResponse translates an error from a backend call. A rejected
// credential is dropped from the session.
func (app *Application) backendErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var rejection interface{ UserMessage() string }

	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrUnauthorized):
		app.dropCredential(r.Context())
		app.unauthorizedAccessResponse(w, r)
	case errors.Is(err, domain.ErrBackendUnavailable), errors.Is(err, backend.ErrMalformedResponse):
		app.badGatewayResponse(w, r, err)
	case errors.As(err, &rejection) && rejection.UserMessage() != "":
		app.badRequestResponse(w, r, errors.New(rejection.UserMessage()))
	default:
		app.serverErrorResponse(w, r, err)
	}
}
