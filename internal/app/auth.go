package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/cinex-web/api"
	"github.com/metinatakli/cinex-web/internal/domain"
	appvalidator "github.com/metinatakli/cinex-web/internal/validator"
	"github.com/oapi-codegen/runtime/types"
)

func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	if !app.sessionCredential(r).IsZero() {
		resp := api.AlreadyLoggedInResponse{
			Message: "You are already logged in",
		}

		err := app.writeJSON(w, http.StatusOK, resp, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	var input api.LoginRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		logger.Warn("login validation failed")
		app.invalidCredentialsResponse(w, r)
		return
	}

	res, err := app.auth.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrBackendRejected):
			logger.Warn("login rejected by backend", "error", err)
			app.invalidCredentialsResponse(w, r)
		case errors.Is(err, domain.ErrBackendUnavailable):
			app.badGatewayResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.startAuthenticatedSession(w, r, res, http.StatusOK)
}

func (app *Application) Register(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.RegisterRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		if errors.Is(err, types.ErrValidationEmail) {
			app.invalidFieldResponse(w, r, "email", appvalidator.IssueEmail)
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

	res, err := app.auth.Register(r.Context(), input.Username, input.Password, string(input.Email))
	if err != nil {
		var rejection interface{ UserMessage() string }

		switch {
		case errors.As(err, &rejection) && rejection.UserMessage() != "":
			logger.Warn("registration rejected by backend", "error", err)
			app.badRequestResponse(w, r, errors.New(rejection.UserMessage()))
		case errors.Is(err, domain.ErrBackendRejected):
			app.badRequestResponse(w, r, fmt.Errorf("invalid input data"))
		case errors.Is(err, domain.ErrBackendUnavailable):
			app.badGatewayResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.startAuthenticatedSession(w, r, res, http.StatusCreated)
}

func (app *Application) startAuthenticatedSession(w http.ResponseWriter, r *http.Request, res *domain.AuthResult, status int) {
	logger := app.contextGetLogger(r)

	cred, err := domain.ParseCredential(res.Token)
	if err != nil {
		app.serverErrorResponse(w, r, fmt.Errorf("backend issued an unreadable token: %w", err))
		return
	}

	if cred.Expired(app.now()) {
		app.serverErrorResponse(w, r, errors.New("backend issued an expired token"))
		return
	}

	err = app.renewSession(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.storeCredential(r.Context(), res)

	logger.Info("user logged in", "user_id", res.User.ID)

	err = app.writeJSON(w, status, toUserResponse(res.User), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) Logout(w http.ResponseWriter, r *http.Request) {
	token := app.sessionManager.GetString(r.Context(), SessionKeyToken.String())
	if token == "" {
		app.notFoundResponse(w, r)
		return
	}

	sessionId := app.sessionManager.Token(r.Context())

	err := app.sessionManager.Destroy(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.views.CloseSession(sessionId)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	cred := app.contextGetCredential(r)

	user, err := app.auth.Verify(r.Context(), cred)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			app.dropCredential(r.Context())
			app.unauthorizedAccessResponse(w, r)
		case errors.Is(err, domain.ErrBackendUnavailable):
			app.badGatewayResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toUserResponse(*user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toUserResponse(user domain.User) api.UserResponse {
	return api.UserResponse{
		Id:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}
