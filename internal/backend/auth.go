package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/metinatakli/cinex-web/internal/domain"
)

func (c *Client) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	var resp authResponse
	err := c.do(ctx, domain.Credential{}, http.MethodPost, "/auth/login", loginRequest{
		Username: username,
		Password: password,
	}, &resp, nil)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return c.authResult(resp)
}

func (c *Client) Register(ctx context.Context, username, password, email string) (*domain.AuthResult, error) {
	var resp authResponse
	err := c.do(ctx, domain.Credential{}, http.MethodPost, "/auth/register", registerRequest{
		Username: username,
		Password: password,
		Email:    email,
	}, &resp, nil)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	return c.authResult(resp)
}

// Verify asks the backend whether the credential is still accepted.
func (c *Client) Verify(ctx context.Context, cred domain.Credential) (*domain.User, error) {
	var resp verifyResponse
	err := c.do(ctx, cred, http.MethodGet, "/auth/verify", nil, &resp, nil)
	if err != nil {
		return nil, fmt.Errorf("verify credential: %w", err)
	}

	user := resp.User.toDomain()
	return &user, nil
}

func (c *Client) authResult(resp authResponse) (*domain.AuthResult, error) {
	err := c.validate(resp)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{
		Token: resp.Token,
		User:  resp.User.toDomain(),
	}, nil
}
