package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credential is the bearer token a user obtained from the backend. It is
// passed explicitly to every collaborator that calls the backend.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// ParseCredential reads the expiry of a backend-issued JWT. The signature is
// not checked here; the backend verifies every token it receives.
func ParseCredential(token string) (Credential, error) {
	claims := jwt.MapClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	cred := Credential{Token: token}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	if exp != nil {
		cred.ExpiresAt = exp.Time
	}

	return cred, nil
}

// IsZero reports whether the credential is absent (anonymous caller).
func (c Credential) IsZero() bool {
	return c.Token == ""
}

// Expired reports whether the token is past its expiry at now. Tokens without
// an exp claim never expire client-side.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type User struct {
	ID       int
	Username string
	Email    string
	Role     string
}

type AuthResult struct {
	Token string
	User  User
}

type AuthGateway interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, username, password, email string) (*AuthResult, error)
	Verify(ctx context.Context, cred Credential) (*User, error)
}
