package app

import (
	"context"
	"net/http"

	"github.com/metinatakli/cinex-web/internal/domain"
)

type sessionKey string

const (
	SessionKeyGuest    = sessionKey("guest")
	SessionKeyToken    = sessionKey("token")
	SessionKeyUserId   = sessionKey("userID")
	SessionKeyUsername = sessionKey("username")
	SessionKeyRole     = sessionKey("role")
)

func (s sessionKey) String() string {
	return string(s)
}

type contextKey string

const (
	credentialContextKey = contextKey("credential")
	loggerContextKey     = contextKey("logger")
)

func (app *Application) contextSetCredential(r *http.Request, cred domain.Credential) *http.Request {
	ctx := context.WithValue(r.Context(), credentialContextKey, cred)
	return r.WithContext(ctx)
}

func (app *Application) contextGetCredential(r *http.Request) domain.Credential {
	cred, ok := r.Context().Value(credentialContextKey).(domain.Credential)
	if !ok {
		panic("missing credential from context")
	}

	return cred
}

// sessionCredential returns the credential stored in the session, or the
// zero credential for guests. Unreadable or expired tokens are removed.
func (app *Application) sessionCredential(r *http.Request) domain.Credential {
	token := app.sessionManager.GetString(r.Context(), SessionKeyToken.String())
	if token == "" {
		return domain.Credential{}
	}

	cred, err := domain.ParseCredential(token)
	if err != nil || cred.Expired(app.now()) {
		app.contextGetLogger(r).Info("dropping unusable credential", "error", err)
		app.dropCredential(r.Context())
		return domain.Credential{}
	}

	return cred
}

func (app *Application) storeCredential(ctx context.Context, res *domain.AuthResult) {
	app.sessionManager.Put(ctx, SessionKeyToken.String(), res.Token)
	app.sessionManager.Put(ctx, SessionKeyUserId.String(), res.User.ID)
	app.sessionManager.Put(ctx, SessionKeyUsername.String(), res.User.Username)
	app.sessionManager.Put(ctx, SessionKeyRole.String(), res.User.Role)
}

// dropCredential forgets the user but keeps the session and its room views.
func (app *Application) dropCredential(ctx context.Context) {
	app.sessionManager.Remove(ctx, SessionKeyToken.String())
	app.sessionManager.Remove(ctx, SessionKeyUserId.String())
	app.sessionManager.Remove(ctx, SessionKeyUsername.String())
	app.sessionManager.Remove(ctx, SessionKeyRole.String())
}

// renewSession issues a new session token after a privilege change and moves
// the open room views to it.
func (app *Application) renewSession(r *http.Request) error {
	oldSessionId := app.sessionManager.Token(r.Context())

	// To help prevent session fixation attacks we should renew the session token after any privilege level change.
	// https://github.com/OWASP/CheatSheetSeries/blob/master/cheatsheets/Session_Management_Cheat_Sheet.md#renew-the-session-id-after-any-privilege-level-change
	err := app.sessionManager.RenewToken(r.Context())
	if err != nil {
		return err
	}

	newSessionId := app.sessionManager.Token(r.Context())

	if oldSessionId != "" {
		moved := app.views.Rekey(oldSessionId, newSessionId)
		app.contextGetLogger(r).Debug("migrated room views", "count", moved)
	}

	return nil
}
