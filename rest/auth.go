package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/CoderFake/ragchat"
)

// Login authenticates and stores the issued tokens and user.
func (c *Client) Login(ctx context.Context, cred ragchat.Credentials) (ragchat.LoginResult, error) {
	if err := cred.Validate(); err != nil {
		return ragchat.LoginResult{}, err
	}
	var resp loginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   credentialsDTO{Username: cred.Username, Password: cred.Password},
	}, &resp)
	if err != nil {
		return ragchat.LoginResult{}, fmt.Errorf("login: %w", err)
	}

	result := ragchat.LoginResult{
		User: resp.User.user(),
		Tokens: ragchat.Tokens{
			Access:  resp.AccessToken,
			Refresh: resp.RefreshToken,
			Type:    resp.TokenType,
		},
	}
	st := c.store.Get()
	st.AccessToken = result.Tokens.Access
	st.RefreshToken = result.Tokens.Refresh
	user := result.User
	st.User = &user
	if err := c.store.Set(st); err != nil {
		return ragchat.LoginResult{}, fmt.Errorf("store credentials: %w", err)
	}
	c.logger.Info("logged in", "user", user.Username, "role", user.Role)
	return result, nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, r ragchat.Registration) (ragchat.User, error) {
	if err := r.Validate(); err != nil {
		return ragchat.User{}, err
	}
	var resp registerResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body: registrationDTO{
			Username: r.Username,
			Password: r.Password,
			Name:     r.Name,
			Email:    r.Email,
		},
	}, &resp)
	if err != nil {
		return ragchat.User{}, fmt.Errorf("register: %w", err)
	}
	return resp.User.user(), nil
}

// Refresh exchanges a refresh token for a new access token. It does not
// touch the state store.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (ragchat.Tokens, error) {
	var resp refreshResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/refresh",
		body:   refreshRequest{RefreshToken: refreshToken},
	}, &resp)
	if err != nil {
		return ragchat.Tokens{}, err
	}
	return ragchat.Tokens{
		Access:  resp.AccessToken,
		Refresh: resp.RefreshToken,
		Type:    resp.TokenType,
	}, nil
}

// Profile fetches the signed-in user and updates the stored copy.
func (c *Client) Profile(ctx context.Context) (ragchat.User, error) {
	var resp profileResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/profile", auth: true}, &resp); err != nil {
		return ragchat.User{}, fmt.Errorf("profile: %w", err)
	}
	user := resp.User.user()
	st := c.store.Get()
	if st.Authenticated() {
		st.User = &user
		if err := c.store.Set(st); err != nil {
			return user, fmt.Errorf("store profile: %w", err)
		}
	}
	return user, nil
}

// Users lists all accounts. Admin only.
func (c *Client) Users(ctx context.Context) ([]ragchat.User, error) {
	var resp usersResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/users", auth: true}, &resp); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]ragchat.User, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = u.user()
	}
	return users, nil
}

// Logout forgets the stored credentials. The server keeps no session.
func (c *Client) Logout(_ context.Context) error {
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
